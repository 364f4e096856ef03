package agent

import (
	"context"
	"time"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
	"github.com/dropDatabas3/ethos/internal/scoring"
)

// ScoredProduct es un producto del catálogo con su score ético.
type ScoredProduct struct {
	Name   string         `json:"name"`
	Price  float64        `json:"price"`
	Source string         `json:"source"`
	Score  scoring.Result `json:"score"`
}

// SearchResult es el resultado de la búsqueda de productos.
type SearchResult struct {
	Query           string          `json:"query"`
	Budget          float64         `json:"budget,omitempty"`
	TotalAnalyzed   int             `json:"total_options_analyzed"`
	Recommendations []ScoredProduct `json:"recommendations"`
	Mainstream      *ScoredProduct  `json:"mainstream_comparison,omitempty"`
	State           State           `json:"state"`
}

// SearchProducts busca productos y los scorea contra el perfil de valores
// del sujeto (neutral si nunca completó el assessment). Los scores se
// computan por ítem, independientes entre sí; no hay ranking de índice.
// La búsqueda no deriva datos persistibles, por eso no sella nada.
func (a *Agent) SearchProducts(ctx context.Context, subjectID, tokenText, query string, budget float64) (_ *SearchResult, err error) {
	defer observe(consent.OpSearchProducts, time.Now(), &err)
	log := logger.From(ctx).With(
		logger.Component("agent"),
		logger.Op("SearchProducts"),
		logger.SubjectID(subjectID),
	)

	if _, err = a.authorize(ctx, consent.OpSearchProducts, subjectID, tokenText); err != nil {
		return nil, err
	}

	values, onRecord := a.storedValues(ctx, subjectID)
	if !onRecord {
		log.Debug("no values profile on record, scoring with neutral importances")
	}

	analyzed := 0
	var recs []ScoredProduct
	for _, p := range searchCatalog {
		analyzed++
		if budget > 0 && p.Price > budget {
			continue
		}
		recs = append(recs, ScoredProduct{
			Name:   p.Name,
			Price:  p.Price,
			Source: p.Source,
			Score:  scoring.Score(p.Attributes, values, nil),
		})
	}

	mp := mainstreamComparison
	mainstream := &ScoredProduct{
		Name:   mp.Name,
		Price:  mp.Price,
		Source: mp.Source,
		Score:  scoring.Score(mp.Attributes, values, nil),
	}
	analyzed++

	log.Info("product search scored",
		logger.String("query", query),
		logger.Count(len(recs)),
	)
	return &SearchResult{
		Query:           query,
		Budget:          budget,
		TotalAnalyzed:   analyzed,
		Recommendations: recs,
		Mainstream:      mainstream,
		State:           StateExecuted,
	}, nil
}

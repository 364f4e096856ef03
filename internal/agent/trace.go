package agent

import (
	"context"
	"time"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/domain/repository"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
	"github.com/dropDatabas3/ethos/internal/scoring"
)

// TraceResult es el resultado del trazado de cadena de suministro.
type TraceResult struct {
	Trace      SupplyChainTrace `json:"supply_chain_analysis"`
	Score      scoring.Result   `json:"score"`
	SealedData string           `json:"sealed_data"`
	State      State            `json:"state"`
}

// traceAttributes proyecta el trace a los atributos que el motor scorea.
func traceAttributes(t SupplyChainTrace) scoring.ProductAttributes {
	certs := append(append([]string{}, t.LaborCertifications...), t.EnvCertifications...)
	return scoring.ProductAttributes{
		Certifications: certs,
		Origin:         t.ManufacturingLocation,
		SupplyChain: scoring.SupplyChainInfo{
			TransparencyScore: t.TransparencyScore,
			PublicReporting:   true, // supplier code of conduct publicado
			TierVisibility:    []string{"tier1"},
		},
	}
}

// TraceSupplyChain traza la cadena de suministro del producto, la scorea
// contra el perfil del sujeto y sella el análisis derivado.
func (a *Agent) TraceSupplyChain(ctx context.Context, subjectID, tokenText, productURL string) (_ *TraceResult, err error) {
	defer observe(consent.OpTraceSupplyChain, time.Now(), &err)
	log := logger.From(ctx).With(
		logger.Component("agent"),
		logger.Op("TraceSupplyChain"),
		logger.SubjectID(subjectID),
	)

	authz, err := a.authorize(ctx, consent.OpTraceSupplyChain, subjectID, tokenText)
	if err != nil {
		return nil, err
	}

	trace := traceDataset(productURL)
	values, _ := a.storedValues(ctx, subjectID)
	score := scoring.Score(traceAttributes(trace), values, nil)

	sealed, err := a.seal(ctx, authz, repository.RecordKindTrace, trace)
	if err != nil {
		return nil, err
	}

	log.Info("supply chain traced",
		logger.String("product_url", productURL),
		logger.Float("overall_score", score.OverallScore),
	)
	return &TraceResult{
		Trace:      trace,
		Score:      score,
		SealedData: sealed,
		State:      StateSealed,
	}, nil
}

package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/domain/repository"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
	"github.com/dropDatabas3/ethos/internal/scoring"
)

// ValuesAssessment es el resultado de capturar el perfil de valores.
type ValuesAssessment struct {
	Values     scoring.Values `json:"values"`
	Summary    string         `json:"summary"`
	TotalScore int            `json:"total_score"`
	SealedData string         `json:"sealed_data"`
	State      State          `json:"state"`
}

// AssessValues captura el perfil de valores éticos del sujeto.
// Las respuestas llegan ya recolectadas (el prompting interactivo es del
// CLI); cada importancia debe estar en [1,5] o la operación falla con
// InvalidInput — acá nunca se clampea en silencio.
func (a *Agent) AssessValues(ctx context.Context, subjectID, tokenText string, answers scoring.Values) (_ *ValuesAssessment, err error) {
	defer observe(consent.OpAssessValues, time.Now(), &err)
	log := logger.From(ctx).With(
		logger.Component("agent"),
		logger.Op("AssessValues"),
		logger.SubjectID(subjectID),
	)

	authz, err := a.authorize(ctx, consent.OpAssessValues, subjectID, tokenText)
	if err != nil {
		return nil, err
	}

	if vErr := answers.Validate(); vErr != nil {
		return nil, fmt.Errorf("%w: %v", consent.ErrInvalidInput, vErr)
	}

	sealed, err := a.seal(ctx, authz, repository.RecordKindValues, answers)
	if err != nil {
		return nil, err
	}

	log.Info("values assessment captured", logger.Int("total", answers.Total()))
	return &ValuesAssessment{
		Values:     answers,
		Summary:    answers.Summary(),
		TotalScore: answers.Total(),
		SealedData: sealed,
		State:      StateSealed,
	}, nil
}

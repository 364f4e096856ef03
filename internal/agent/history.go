package agent

import (
	"context"
	"time"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/domain/repository"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
)

// DefaultHistoryPeriod es el período analizado cuando el caller no pide otro.
const DefaultHistoryPeriod = "last_6_months"

// HistoryResult es el resultado del análisis de historial.
type HistoryResult struct {
	Analysis   HistoryAnalysis `json:"analysis"`
	SealedData string          `json:"sealed_data"`
	State      State           `json:"state"`
}

// AnalyzeHistory analiza el historial de compras del sujeto para el período
// dado y sella el análisis derivado antes de retornarlo.
func (a *Agent) AnalyzeHistory(ctx context.Context, subjectID, tokenText, period string) (_ *HistoryResult, err error) {
	defer observe(consent.OpAnalyzeHistory, time.Now(), &err)
	log := logger.From(ctx).With(
		logger.Component("agent"),
		logger.Op("AnalyzeHistory"),
		logger.SubjectID(subjectID),
	)

	authz, err := a.authorize(ctx, consent.OpAnalyzeHistory, subjectID, tokenText)
	if err != nil {
		return nil, err
	}

	if period == "" {
		period = DefaultHistoryPeriod
	}
	analysis := historyDataset(period)

	sealed, err := a.seal(ctx, authz, repository.RecordKindHistory, analysis)
	if err != nil {
		return nil, err
	}

	log.Info("purchase history analyzed", logger.String("period", period))
	return &HistoryResult{
		Analysis:   analysis,
		SealedData: sealed,
		State:      StateSealed,
	}, nil
}

package agent

import (
	"context"
	"time"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
)

// ReportResult es el resultado del reporte de consumo ético.
type ReportResult struct {
	Report Report `json:"report"`
	State  State  `json:"state"`
}

// GenerateReport genera el reporte integral del sujeto, combinando el
// dataset enlatado con el perfil de valores si existe uno capturado.
// El reporte se entrega al caller y no se persiste, así que no se sella.
func (a *Agent) GenerateReport(ctx context.Context, subjectID, tokenText string) (_ *ReportResult, err error) {
	defer observe(consent.OpGenerateReport, time.Now(), &err)
	log := logger.From(ctx).With(
		logger.Component("agent"),
		logger.Op("GenerateReport"),
		logger.SubjectID(subjectID),
	)

	if _, err = a.authorize(ctx, consent.OpGenerateReport, subjectID, tokenText); err != nil {
		return nil, err
	}

	report := reportDataset(subjectID)
	report.ReportDate = time.Now().UTC().Format("2006-01-02")

	if values, ok := a.storedValues(ctx, subjectID); ok {
		report.ValuesOnRecord = true
		report.ValuesSummary = values.Summary()
	}

	log.Info("report generated", logger.Bool("values_on_record", report.ValuesOnRecord))
	return &ReportResult{Report: report, State: StateExecuted}, nil
}

// Package handlers contiene los handlers HTTP del API del agente.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dropDatabas3/ethos/internal/agent"
	"github.com/dropDatabas3/ethos/internal/http/dto"
	httperrors "github.com/dropDatabas3/ethos/internal/http/errors"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
)

// AgentHandlers expone las cinco operaciones del orquestador.
type AgentHandlers struct {
	agent *agent.Agent
}

// NewAgentHandlers crea los handlers del agente.
func NewAgentHandlers(a *agent.Agent) *AgentHandlers {
	return &AgentHandlers{agent: a}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("malformed JSON body"))
		return false
	}
	return true
}

// AssessValues maneja POST /v1/agent/values/assess
func (h *AgentHandlers) AssessValues(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessValuesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.agent.AssessValues(r.Context(), req.SubjectID, req.Token, req.Values)
	if err != nil {
		h.writeAgentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*agent.ValuesAssessment
	}{"success", res})
}

// AnalyzeHistory maneja POST /v1/agent/history/analyze
func (h *AgentHandlers) AnalyzeHistory(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeHistoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.agent.AnalyzeHistory(r.Context(), req.SubjectID, req.Token, req.Period)
	if err != nil {
		h.writeAgentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*agent.HistoryResult
	}{"success", res})
}

// SearchProducts maneja POST /v1/agent/products/search
func (h *AgentHandlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchProductsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.agent.SearchProducts(r.Context(), req.SubjectID, req.Token, req.Query, req.Budget)
	if err != nil {
		h.writeAgentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*agent.SearchResult
	}{"success", res})
}

// TraceSupplyChain maneja POST /v1/agent/supplychain/trace
func (h *AgentHandlers) TraceSupplyChain(w http.ResponseWriter, r *http.Request) {
	var req dto.TraceSupplyChainRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.agent.TraceSupplyChain(r.Context(), req.SubjectID, req.Token, req.ProductURL)
	if err != nil {
		h.writeAgentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*agent.TraceResult
	}{"success", res})
}

// GenerateReport maneja POST /v1/agent/report
func (h *AgentHandlers) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.agent.GenerateReport(r.Context(), req.SubjectID, req.Token)
	if err != nil {
		h.writeAgentError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*agent.ReportResult
	}{"success", res})
}

func (h *AgentHandlers) writeAgentError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := httperrors.FromError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.From(r.Context()).Error("operation failed", logger.Err(err))
	}
	httperrors.WriteError(w, appErr)
}

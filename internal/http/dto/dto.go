// Package dto define los shapes de request/response del API del agente.
package dto

import "github.com/dropDatabas3/ethos/internal/scoring"

// Toda operación recibe el sujeto que reclama el caller y el token de
// consentimiento presentado; el gate decide si coinciden.

type AssessValuesRequest struct {
	SubjectID string         `json:"subject_id"`
	Token     string         `json:"token"`
	Values    scoring.Values `json:"values"`
}

type AnalyzeHistoryRequest struct {
	SubjectID string `json:"subject_id"`
	Token     string `json:"token"`
	Period    string `json:"period,omitempty"`
}

type SearchProductsRequest struct {
	SubjectID string  `json:"subject_id"`
	Token     string  `json:"token"`
	Query     string  `json:"query"`
	Budget    float64 `json:"budget,omitempty"`
}

type TraceSupplyChainRequest struct {
	SubjectID  string `json:"subject_id"`
	Token      string `json:"token"`
	ProductURL string `json:"product_url"`
}

type GenerateReportRequest struct {
	SubjectID string `json:"subject_id"`
	Token     string `json:"token"`
}

// Admin: emisión y revocación de consent tokens.

type IssueTokenRequest struct {
	SubjectID string `json:"subject_id"`
	AgentID   string `json:"agent_id,omitempty"`
	Scope     string `json:"scope"`
}

type IssueTokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Scope  string `json:"scope"`
}

type RevokeTokenRequest struct {
	Token string `json:"token"`
}

// StatusResponse es la respuesta mínima {status}.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

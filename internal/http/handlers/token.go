package handlers

import (
	"net/http"

	"github.com/dropDatabas3/ethos/internal/agent"
	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/http/dto"
	httperrors "github.com/dropDatabas3/ethos/internal/http/errors"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
	"github.com/dropDatabas3/ethos/internal/token"
)

// TokenHandlers expone emisión y revocación de consent tokens.
// En un despliegue real la emisión vive en el servicio de identidad; acá se
// expone para desarrollo y para los flujos de demo del CLI.
type TokenHandlers struct {
	tokens *token.Service
}

// NewTokenHandlers crea los handlers de tokens.
func NewTokenHandlers(t *token.Service) *TokenHandlers {
	return &TokenHandlers{tokens: t}
}

// Issue maneja POST /v1/tokens/issue
func (h *TokenHandlers) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SubjectID == "" || req.Scope == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("subject_id and scope are required"))
		return
	}
	if !consent.ValidScopeName(req.Scope) {
		httperrors.WriteError(w, httperrors.ErrInvalidInput.WithDetail("invalid scope name"))
		return
	}
	agentID := req.AgentID
	if agentID == "" {
		agentID = agent.DefaultAgentID
	}

	tk, err := h.tokens.Issue(req.SubjectID, agentID, consent.ConsentScope(req.Scope))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}

	logger.From(r.Context()).Info("token issued",
		logger.SubjectID(req.SubjectID),
		logger.Scope(req.Scope),
	)
	writeJSON(w, http.StatusOK, dto.IssueTokenResponse{
		Status: "success",
		Token:  tk,
		Scope:  req.Scope,
	})
}

// Revoke maneja POST /v1/tokens/revoke. Idempotente.
func (h *TokenHandlers) Revoke(w http.ResponseWriter, r *http.Request) {
	var req dto.RevokeTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Token == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("token is required"))
		return
	}

	if err := h.tokens.Revoke(r.Context(), req.Token); err != nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}

	logger.From(r.Context()).Info("token revoked", logger.TokenID(token.ID(req.Token)))
	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "success", Message: "token revoked"})
}

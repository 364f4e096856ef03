// Package agent implementa el orquestador de operaciones del agente de
// consumo ético. Cada operación sigue la misma máquina de estados:
//
//	Requested → Authorized → Executed → Sealed
//	Requested → Denied (terminal)
//
// La transición a Authorized es exactamente el Consent Gate; su error se
// propaga sin modificar. Sealed solo aplica a operaciones con payload
// persistible; el claro y el sellado se retornan ambos al caller (sellar es
// para almacenamiento, no para ocultar el resultado).
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dropDatabas3/ethos/internal/consent"
	"github.com/dropDatabas3/ethos/internal/domain/repository"
	"github.com/dropDatabas3/ethos/internal/metrics"
	"github.com/dropDatabas3/ethos/internal/observability/logger"
	"github.com/dropDatabas3/ethos/internal/scoring"
	"github.com/dropDatabas3/ethos/internal/vault"
)

// DefaultAgentID identifica este agente en los tokens que consume.
const DefaultAgentID = "ethical_consumption_agent"

// State es el estado terminal alcanzado por una operación.
type State string

const (
	StateRequested  State = "requested"
	StateAuthorized State = "authorized"
	StateExecuted   State = "executed"
	StateSealed     State = "sealed"
	StateDenied     State = "denied"
)

// Deps contiene las dependencias del orquestador.
type Deps struct {
	Gate    *consent.Gate
	Sealer  vault.Sealer
	Records repository.VaultRepository
	AgentID string
}

// Agent orquesta las cinco operaciones consent-gated.
type Agent struct {
	deps Deps
}

// New crea el orquestador.
func New(deps Deps) *Agent {
	if deps.AgentID == "" {
		deps.AgentID = DefaultAgentID
	}
	return &Agent{deps: deps}
}

// authorize resuelve el scope de la operación y pasa por el Consent Gate.
// Toda operación re-valida: no hay cacheo de decisiones entre llamadas.
func (a *Agent) authorize(ctx context.Context, kind consent.OperationKind, subjectID, tokenText string) (*consent.AuthorizedContext, error) {
	scope, err := consent.RequiredScope(kind)
	if err != nil {
		return nil, err
	}
	authz, err := a.deps.Gate.Authorize(ctx, tokenText, scope, subjectID)
	if err != nil {
		var ae *consent.AuthzError
		if errors.As(err, &ae) {
			metrics.ObserveDenial(string(ae.Kind))
		}
		return nil, err
	}
	return authz, nil
}

// seal serializa el payload, lo sella para el sujeto y lo persiste.
// Una falla de sellado es fatal para esta operación y se propaga tal cual.
func (a *Agent) seal(ctx context.Context, authz *consent.AuthorizedContext, kind string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sealed, err := a.deps.Sealer.Seal(authz.SubjectID, string(raw))
	if err != nil {
		return "", err
	}
	_, err = a.deps.Records.Save(ctx, repository.VaultRecord{
		SubjectID: authz.SubjectID,
		Scope:     string(authz.Scope),
		Kind:      kind,
		Sealed:    sealed,
	})
	if err != nil {
		return "", err
	}
	return sealed, nil
}

// storedValues recupera el último perfil de valores sellado del sujeto.
// Si no hay perfil (o no se puede abrir), retorna el perfil cero: el motor
// lo trata como importancias neutrales.
func (a *Agent) storedValues(ctx context.Context, subjectID string) (scoring.Values, bool) {
	rec, err := a.deps.Records.GetLatest(ctx, subjectID, repository.RecordKindValues)
	if err != nil {
		return scoring.Values{}, false
	}
	clear, err := a.deps.Sealer.Open(subjectID, rec.Sealed)
	if err != nil {
		logger.From(ctx).Warn("stored values unreadable",
			logger.SubjectID(subjectID), logger.Err(err))
		return scoring.Values{}, false
	}
	var v scoring.Values
	if err := json.Unmarshal([]byte(clear), &v); err != nil {
		return scoring.Values{}, false
	}
	return v, true
}

// observe registra métricas de la operación. Usar con defer.
func observe(kind consent.OperationKind, start time.Time, err *error) {
	result := "success"
	if e := *err; e != nil {
		if consent.IsConsentDenied(e) || consent.IsSubjectMismatch(e) {
			result = "denied"
		} else {
			result = "error"
		}
	}
	metrics.ObserveOperation(string(kind), result, time.Since(start))
}

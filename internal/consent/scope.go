package consent

import (
	"fmt"
	"regexp"
)

// ConsentScope es una capability nombrada que habilita una categoría de acceso
// a datos. Un token es válido para exactamente un scope y nunca se re-scopea
// después de emitido.
type ConsentScope string

const (
	// ScopeEthicalValues habilita capturar y leer el perfil de valores éticos.
	ScopeEthicalValues ConsentScope = "custom.ethical.values"

	// ScopeVaultReadEmail habilita leer datos de compras derivados de email.
	ScopeVaultReadEmail ConsentScope = "vault.read.email"

	// ScopeVaultReadFinance habilita leer datos financieros del vault.
	ScopeVaultReadFinance ConsentScope = "vault.read.finance"

	// ScopeShoppingPurchase habilita búsquedas y análisis de compra.
	ScopeShoppingPurchase ConsentScope = "agent.shopping.purchase"

	// ScopeSupplyChain habilita el trazado de cadenas de suministro.
	ScopeSupplyChain ConsentScope = "custom.supply.chain"
)

// OperationKind identifica una de las cinco operaciones del agente.
type OperationKind string

const (
	OpAssessValues     OperationKind = "assess_values"
	OpAnalyzeHistory   OperationKind = "analyze_history"
	OpSearchProducts   OperationKind = "search_products"
	OpTraceSupplyChain OperationKind = "trace_supply_chain"
	OpGenerateReport   OperationKind = "generate_report"
)

// requiredScopes es la tabla fija operación → scope.
// El report reutiliza el scope de email porque combina datos de compras;
// finance queda definido para tokens emitidos por otros agentes.
var requiredScopes = map[OperationKind]ConsentScope{
	OpAssessValues:     ScopeEthicalValues,
	OpAnalyzeHistory:   ScopeVaultReadEmail,
	OpSearchProducts:   ScopeShoppingPurchase,
	OpTraceSupplyChain: ScopeSupplyChain,
	OpGenerateReport:   ScopeVaultReadEmail,
}

// RequiredScope retorna el scope que la operación exige.
// Un kind desconocido es un error de programación del caller, no una condición
// de runtime: se reporta como InvalidInput.
func RequiredScope(kind OperationKind) (ConsentScope, error) {
	scope, ok := requiredScopes[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown operation kind %q", ErrInvalidInput, kind)
	}
	return scope, nil
}

// Scope name rules:
// - Lowercase only.
// - Start and end with [a-z0-9].
// - Middle chars may include [a-z0-9:_.-].
// - Length 1..64.
//
// Examples valid: vault.read.email, agent.shopping.purchase, a_b-c.d:scope2
// Examples invalid: ;hack, BAD, bad space, .leader, trailer., "".
var scopeNameRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9:_\.-]{0,62}[a-z0-9])?$`)

// ValidScopeName retorna true si el nombre de scope cumple el patrón permitido.
func ValidScopeName(name string) bool {
	return scopeNameRe.MatchString(name)
}

// Package scoring implementa el motor de scoring ético multi-factor.
//
// Función pura y determinística: (producto, valores del usuario, pesos
// opcionales) → Result. Sin I/O, sin estado.
//
// Cada factor arranca de un baseline de 5.0 y acumula bonos aditivos por
// certificaciones y flags del catálogo fijo. Los bonos nunca superan 10.0;
// no hay clamp inferior porque señales negativas no se modelan (la ausencia
// de señales positivas deja el baseline).
package scoring

import (
	"math"
	"strings"
)

const (
	baseline      = 5.0
	maxScore      = 10.0
	methodologyID = "weighted_multi_factor"

	// Umbrales fijos de explicación (no derivados).
	strengthThreshold = 7.5
	concernThreshold  = 4.0

	// Alineación "high" si el multiplicador supera este valor. Sin histéresis.
	alignmentThreshold = 1.05

	certBonusPerItem = 1.5
)

// Catálogo de bonos. Membresía exacta case-insensitive sobre sets tipados;
// Origin es texto libre y conserva substring match.
var (
	envCertOrganic       = "organic"
	envFlagCarbonNeutral = "carbon neutral"
	envFlagRenewable     = "renewable energy"
	envFlagRecyclable    = "recyclable"
	// "Recyclable Materials" aparece como certificación en datasets reales;
	// cuenta igual que el flag.
	envCertRecyclable = "recyclable materials"

	laborCertFairTrade   = "fair trade"
	laborFlagLivingWage  = "living wage"
	laborFlagWorkerRight = "worker rights"
	laborCertSA8000      = "sa8000"

	transCertBCorp = "b-corp"
)

// contains chequea membresía exacta (case-insensitive, trimmed) en un set.
func contains(set []string, want string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Score calcula el score ético de un producto contra el perfil del usuario.
// Si weights es nil se usan los pesos por defecto; pesos custom se aplican
// tal cual (sin validar que sumen 1).
func Score(p ProductAttributes, values Values, weights Weights) Result {
	if weights == nil {
		weights = DefaultWeights()
	}

	scores := make(map[Factor]float64, len(factorOrder))

	// Environmental
	env := baseline
	if contains(p.Certifications, envCertOrganic) {
		env += 1.5
	}
	if contains(p.EnvironmentalImpact, envFlagCarbonNeutral) {
		env += 1.0
	}
	if contains(p.EnvironmentalImpact, envFlagRenewable) {
		env += 1.0
	}
	if contains(p.EnvironmentalImpact, envFlagRecyclable) || contains(p.Certifications, envCertRecyclable) {
		env += 0.5
	}
	scores[FactorEnvironmental] = math.Min(env, maxScore)

	// Labor practices
	labor := baseline
	if contains(p.Certifications, laborCertFairTrade) {
		labor += 2.0
	}
	if contains(p.LaborPractices, laborFlagLivingWage) {
		labor += 1.5
	}
	if contains(p.LaborPractices, laborFlagWorkerRight) {
		labor += 1.0
	}
	if contains(p.Certifications, laborCertSA8000) {
		labor += 1.0
	}
	scores[FactorLabor] = math.Min(labor, maxScore)

	// Supply chain: sembrado por el transparency_score reportado, no por el
	// baseline.
	supply := p.SupplyChain.TransparencyScore
	origin := strings.ToLower(p.Origin)
	if strings.Contains(origin, "local") || strings.Contains(origin, "domestic") {
		supply += 1.5
	}
	if len(p.SupplyChain.TierVisibility) > 2 {
		supply += 1.0
	}
	scores[FactorSupplyChain] = math.Min(supply, maxScore)

	// Transparency
	trans := baseline
	if p.SupplyChain.PublicReporting {
		trans += 1.5
	}
	if contains(p.Certifications, transCertBCorp) {
		trans += 2.0
	}
	if len(p.Certifications) > 2 {
		trans += 1.0
	}
	scores[FactorTransparency] = math.Min(trans, maxScore)

	// Certifications: bono lineal por cantidad.
	scores[FactorCertifications] = math.Min(float64(len(p.Certifications))*certBonusPerItem, maxScore)

	// Overall ponderado. Factores sin peso aportan cero.
	overall := 0.0
	for _, f := range factorOrder {
		overall += scores[f] * weights[f]
	}

	// Multiplicador por preferencias del usuario: cada factor prioritario
	// (importancia >= 4) aporta 0.1 escalado por su componente.
	multiplier := 1.0
	if importanceOrNeutral(values.Environmental) >= 4 {
		multiplier += 0.1 * (scores[FactorEnvironmental] / maxScore)
	}
	if importanceOrNeutral(values.LaborPractices) >= 4 {
		multiplier += 0.1 * (scores[FactorLabor] / maxScore)
	}
	if importanceOrNeutral(values.Transparency) >= 4 {
		multiplier += 0.1 * (scores[FactorTransparency] / maxScore)
	}

	final := math.Min(overall*multiplier, maxScore)

	// Explicación: umbrales fijos, orden de factores determinístico.
	var strengths, concerns []string
	for _, f := range factorOrder {
		switch {
		case scores[f] >= strengthThreshold:
			strengths = append(strengths, "Strong "+f.displayName()+" practices")
		case scores[f] <= concernThreshold:
			concerns = append(concerns, "Limited "+f.displayName()+" information")
		}
	}

	alignment := "moderate"
	if multiplier > alignmentThreshold {
		alignment = "high"
	}

	rounded := make(map[Factor]float64, len(scores))
	for f, s := range scores {
		rounded[f] = round1(s)
	}

	certs := make([]string, len(p.Certifications))
	copy(certs, p.Certifications)

	return Result{
		OverallScore:        round1(final),
		ComponentScores:     rounded,
		Strengths:           strengths,
		Concerns:            concerns,
		CertificationsFound: certs,
		UserAlignment:       alignment,
		Methodology:         methodologyID,
	}
}

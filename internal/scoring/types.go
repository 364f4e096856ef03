package scoring

import (
	"fmt"
	"strings"
)

// Factor es uno de los cinco componentes del score ético.
type Factor string

const (
	FactorEnvironmental  Factor = "environmental"
	FactorLabor          Factor = "labor"
	FactorSupplyChain    Factor = "supply_chain"
	FactorTransparency   Factor = "transparency"
	FactorCertifications Factor = "certifications"
)

// factorOrder fija el orden de iteración para que el resultado sea
// determinístico (maps de Go no garantizan orden).
var factorOrder = []Factor{
	FactorEnvironmental,
	FactorLabor,
	FactorSupplyChain,
	FactorTransparency,
	FactorCertifications,
}

// displayName convierte el nombre interno del factor a texto legible.
func (f Factor) displayName() string {
	return strings.ReplaceAll(string(f), "_", " ")
}

// Weights mapea factor → peso no negativo.
// Los pesos custom se usan tal cual, sin renormalizar: es política explícita,
// no un descuido (hay test que lo fija).
type Weights map[Factor]float64

// DefaultWeights retorna los pesos por defecto (suman 1.0).
func DefaultWeights() Weights {
	return Weights{
		FactorEnvironmental:  0.25,
		FactorLabor:          0.25,
		FactorSupplyChain:    0.20,
		FactorTransparency:   0.15,
		FactorCertifications: 0.15,
	}
}

// SupplyChainInfo describe la visibilidad de la cadena de suministro.
type SupplyChainInfo struct {
	// TransparencyScore siembra directamente el componente supply_chain.
	TransparencyScore float64  `json:"transparency_score"`
	PublicReporting   bool     `json:"public_reporting"`
	TierVisibility    []string `json:"tier_visibility"`
}

// ProductAttributes son los atributos tipados de un producto a scorear.
// Certificaciones y flags se chequean por membresía exacta case-insensitive
// contra el catálogo fijo; Origin queda como texto libre (substring match).
type ProductAttributes struct {
	Certifications      []string        `json:"certifications"`
	Origin              string          `json:"origin"`
	LaborPractices      []string        `json:"labor_practices"`
	EnvironmentalImpact []string        `json:"environmental_impact"`
	SupplyChain         SupplyChainInfo `json:"supply_chain"`
}

// Values es el perfil de importancias éticas del usuario, cada una en [1,5].
// Un campo en cero significa "no contestado" y se trata como neutral (3)
// al scorear; Validate en cambio exige el rango completo al capturar.
type Values struct {
	Environmental  int `json:"environmental_importance"`
	LaborPractices int `json:"labor_practices_importance"`
	LocalSourcing  int `json:"local_sourcing_preference"`
	AnimalWelfare  int `json:"animal_welfare_importance"`
	Transparency   int `json:"transparency_importance"`
}

// neutralImportance es el default permisivo para importancias no contestadas.
const neutralImportance = 3

func importanceOrNeutral(v int) int {
	if v == 0 {
		return neutralImportance
	}
	return v
}

// Validate exige que las cinco importancias estén en [1,5].
func (v Values) Validate() error {
	checks := []struct {
		name string
		val  int
	}{
		{"environmental_importance", v.Environmental},
		{"labor_practices_importance", v.LaborPractices},
		{"local_sourcing_preference", v.LocalSourcing},
		{"animal_welfare_importance", v.AnimalWelfare},
		{"transparency_importance", v.Transparency},
	}
	for _, c := range checks {
		if c.val < 1 || c.val > 5 {
			return fmt.Errorf("%s must be between 1 and 5, got %d", c.name, c.val)
		}
	}
	return nil
}

// Total suma las cinco importancias.
func (v Values) Total() int {
	return v.Environmental + v.LaborPractices + v.LocalSourcing + v.AnimalWelfare + v.Transparency
}

// Summary genera el resumen legible de prioridades (importancia >= 4).
func (v Values) Summary() string {
	var priorities []string
	if v.Environmental >= 4 {
		priorities = append(priorities, "environmental sustainability")
	}
	if v.LaborPractices >= 4 {
		priorities = append(priorities, "fair labor practices")
	}
	if v.LocalSourcing >= 4 {
		priorities = append(priorities, "local sourcing")
	}
	if v.AnimalWelfare >= 4 {
		priorities = append(priorities, "animal welfare")
	}
	if v.Transparency >= 4 {
		priorities = append(priorities, "supply chain transparency")
	}
	if len(priorities) == 0 {
		return "Balanced approach across all ethical factors"
	}
	return "Your top priorities: " + strings.Join(priorities, ", ")
}

// Result es el resultado del scoring. Efímero: se retorna al caller y no se
// muta después de construido.
type Result struct {
	OverallScore        float64            `json:"overall_score"`
	ComponentScores     map[Factor]float64 `json:"component_scores"`
	Strengths           []string           `json:"strengths"`
	Concerns            []string           `json:"concerns"`
	CertificationsFound []string           `json:"certifications_found"`
	UserAlignment       string             `json:"user_alignment"`
	Methodology         string             `json:"scoring_methodology"`
}

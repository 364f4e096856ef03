package agent

import "github.com/dropDatabas3/ethos/internal/scoring"

// Datasets estáticos que reemplazan las fuentes reales de compras y supply
// chain. En un despliegue real estos vendrían de parsers de email y de
// proveedores de datos; el contrato del orquestador no cambia.

// Product es un candidato del catálogo de búsqueda.
type Product struct {
	Name       string                    `json:"name"`
	Price      float64                   `json:"price"`
	Source     string                    `json:"source"`
	Attributes scoring.ProductAttributes `json:"attributes"`
}

// searchCatalog: candidatos éticos analizados por cada búsqueda.
var searchCatalog = []Product{
	{
		Name:   "Fairphone Headphones",
		Price:  180,
		Source: "fairphone.com",
		Attributes: scoring.ProductAttributes{
			Certifications:      []string{"Fair Trade", "Recyclable Materials"},
			Origin:              "Netherlands",
			LaborPractices:      []string{"living wage", "worker rights"},
			EnvironmentalImpact: []string{"carbon neutral"},
			SupplyChain: scoring.SupplyChainInfo{
				TransparencyScore: 8.5,
				PublicReporting:   true,
				TierVisibility:    []string{"tier1", "tier2", "tier3"},
			},
		},
	},
	{
		Name:   "Patagonia Audio Gear",
		Price:  195,
		Source: "patagonia.com",
		Attributes: scoring.ProductAttributes{
			Certifications:      []string{"B-Corp", "1% for the Planet", "Organic"},
			Origin:              "Local, USA",
			LaborPractices:      []string{"worker rights"},
			EnvironmentalImpact: []string{"carbon neutral", "renewable energy"},
			SupplyChain: scoring.SupplyChainInfo{
				TransparencyScore: 8,
				PublicReporting:   true,
				TierVisibility:    []string{"tier1", "tier2", "tier3"},
			},
		},
	},
}

// mainstreamComparison: la alternativa mainstream contra la que se compara.
var mainstreamComparison = Product{
	Name:   "Sony XM4",
	Price:  199,
	Source: "sony.com",
	Attributes: scoring.ProductAttributes{
		Certifications:      nil,
		Origin:              "Unknown",
		LaborPractices:      nil,
		EnvironmentalImpact: nil,
		SupplyChain: scoring.SupplyChainInfo{
			TransparencyScore: 2,
			PublicReporting:   false,
			TierVisibility:    []string{"tier1"},
		},
	},
}

// HistoryAnalysis es el análisis enlatado de historial de compras.
type HistoryAnalysis struct {
	Period          string             `json:"period"`
	TotalPurchases  int                `json:"total_purchases"`
	EthicalScore    float64            `json:"ethical_score"`
	EcoScore        float64            `json:"eco_score"`
	Improvement     map[string]float64 `json:"improvement_vs_last_period"`
	TopIssues       []string           `json:"top_issues"`
	Recommendations []string           `json:"recommendations"`
}

func historyDataset(period string) HistoryAnalysis {
	return HistoryAnalysis{
		Period:         period,
		TotalPurchases: 47,
		EthicalScore:   6.2,
		EcoScore:       7.1,
		Improvement:    map[string]float64{"ethical": 0.8, "eco": 1.2},
		TopIssues: []string{
			"23% of purchases from companies with poor labor practices",
			"67% of electronics from non-certified suppliers",
			"Opportunity: 15 local alternatives available for frequent purchases",
		},
		Recommendations: []string{
			"Consider B-Corp certified alternatives for your next electronics purchase",
			"Look for Fair Trade certified options in your regular grocery shopping",
			"Explore local farmers markets for produce and packaged goods",
		},
	}
}

// SupplyChainTrace describe la cadena de suministro trazada de un producto.
type SupplyChainTrace struct {
	ProductURL            string   `json:"product_url"`
	Manufacturer          string   `json:"manufacturer"`
	ManufacturingLocation string   `json:"manufacturing_location"`
	RawMaterialsOrigin    []string `json:"raw_materials_origin"`
	LaborCertifications   []string `json:"labor_certifications"`
	EnvCertifications     []string `json:"environmental_certifications"`
	TransparencyScore     float64  `json:"transparency_score"`
	EthicalConcerns       []string `json:"ethical_concerns"`
	PositiveFactors       []string `json:"positive_factors"`
}

func traceDataset(productURL string) SupplyChainTrace {
	return SupplyChainTrace{
		ProductURL:            productURL,
		Manufacturer:          "TechCorp Manufacturing Ltd",
		ManufacturingLocation: "Shenzhen, China",
		RawMaterialsOrigin: []string{
			"Democratic Republic of Congo (cobalt)",
			"Chile (lithium)",
			"Indonesia (nickel)",
		},
		LaborCertifications: []string{"SA8000", "WRAP"},
		EnvCertifications:   []string{"ISO14001"},
		TransparencyScore:   6.5,
		EthicalConcerns: []string{
			"Cobalt sourcing from conflict regions",
			"Limited visibility into Tier 2/3 suppliers",
			"No living wage certification for factory workers",
		},
		PositiveFactors: []string{
			"Third-party labor audits conducted annually",
			"Waste reduction program in manufacturing",
			"Supplier code of conduct published",
		},
	}
}

// Report es el reporte integral de consumo ético.
type Report struct {
	SubjectID       string    `json:"subject_id"`
	ReportDate      string    `json:"report_date"`
	EthicalTrend    []float64 `json:"ethical_score_trend"`
	EcoTrend        []float64 `json:"eco_score_trend"`
	TopAchievements []string  `json:"top_achievements"`
	AreasToImprove  []string  `json:"areas_for_improvement"`
	Personalized    []string  `json:"personalized_recommendations"`
	ValuesSummary   string    `json:"values_summary,omitempty"`
	ValuesOnRecord  bool      `json:"values_on_record"`
}

func reportDataset(subjectID string) Report {
	return Report{
		SubjectID:    subjectID,
		EthicalTrend: []float64{5.4, 5.8, 6.0, 6.2},
		EcoTrend:     []float64{5.9, 6.4, 6.8, 7.1},
		TopAchievements: []string{
			"Increased purchases from B-Corp certified companies by 35%",
			"Reduced carbon footprint from shopping by 18%",
			"Supported 12 local businesses this quarter",
		},
		AreasToImprove: []string{
			"Electronics sourcing - consider refurbished options",
			"Fast fashion purchases - explore sustainable brands",
			"Food packaging - look for zero-waste alternatives",
		},
		Personalized: []string{
			"Based on your environmental priority, consider Patagonia for outdoor gear",
			"For electronics, Fairphone aligns with your transparency values",
			"Local farmers market on Saturdays matches your local sourcing preference",
		},
	}
}

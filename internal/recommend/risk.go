package recommend

import (
	"github.com/Alias1177/Advisor/models"
)

// RiskParams bounds the capital at risk and the minimum acceptable
// probability of profit for a risk profile.
type RiskParams struct {
	MaxRiskPct    float64
	MinProbProfit float64
}

var riskPreferences = map[models.RiskLevel]RiskParams{
	models.RiskConservative: {MaxRiskPct: 0.02, MinProbProfit: 0.70},
	models.RiskModerate:     {MaxRiskPct: 0.05, MinProbProfit: 0.60},
	models.RiskAggressive:   {MaxRiskPct: 0.10, MinProbProfit: 0.50},
	models.RiskSpeculation:  {MaxRiskPct: 0.20, MinProbProfit: 0.40},
}

// ParamsFor returns the policy for the given risk level, defaulting to
// moderate for unrecognized values.
func ParamsFor(level models.RiskLevel) RiskParams {
	if p, ok := riskPreferences[level]; ok {
		return p
	}
	return riskPreferences[models.RiskModerate]
}

package models

type MenuPortion struct {
	Entree            string  `json:"entree"`
	StandardPortionOz int     `json:"standard_portion_oz"`
	ExpectedServings  int     `json:"expected_servings"`
	AvgUnitCostUsd    float64 `json:"avg_unit_cost_usd"`
}

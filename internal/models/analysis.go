package models

type CorrelationResult struct {
	Pair                string  `json:"-" yaml:"-"`
	Predictor           string  `json:"-" yaml:"-"`
	Outcome             string  `json:"-" yaml:"-"`
	PearsonCorrelation  float64 `json:"pearson_correlation" yaml:"pearson_correlation"`
	PearsonPValue       float64 `json:"pearson_p_value" yaml:"pearson_p_value"`
	SpearmanCorrelation float64 `json:"spearman_correlation" yaml:"spearman_correlation"`
	SpearmanPValue      float64 `json:"spearman_p_value" yaml:"spearman_p_value"`
	NSamples            int     `json:"n_samples" yaml:"n_samples"`
}

type RegressionResult struct {
	Target       string             `json:"-" yaml:"-"`
	Coefficients map[string]float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64            `json:"intercept" yaml:"intercept"`
	R2Score      float64            `json:"r2_score" yaml:"r2_score"`
	NSamples     int                `json:"n_samples" yaml:"n_samples"`
}

type SummaryEntry struct {
	Pearson  float64 `json:"pearson" yaml:"pearson"`
	Spearman float64 `json:"spearman" yaml:"spearman"`
	NSamples int     `json:"n_samples" yaml:"n_samples"`
}

type StrongCorrelation struct {
	Pair           string  `json:"pair" yaml:"pair"`
	Pearson        float64 `json:"pearson" yaml:"pearson"`
	Interpretation string  `json:"interpretation" yaml:"interpretation"`
}

type CorrelationSummary struct {
	Correlations       map[string]SummaryEntry `json:"correlations" yaml:"correlations"`
	StrongCorrelations []StrongCorrelation     `json:"strong_correlations" yaml:"strong_correlations"`
}

// AnalysisResult is the payload served to consumers. Map keys are the pair
// key "<predictor>_vs_<outcome>" and the regression target respectively.
type AnalysisResult struct {
	Correlations        map[string]CorrelationResult `json:"correlations" yaml:"correlations"`
	Regressions         map[string]RegressionResult  `json:"regressions" yaml:"regressions"`
	Summary             CorrelationSummary           `json:"summary" yaml:"summary"`
	RestaurantsAnalyzed int                          `json:"restaurants_analyzed" yaml:"restaurants_analyzed"`
}

type AnalysisResponse struct {
	Status  string          `json:"status" yaml:"status"`
	Data    *AnalysisResult `json:"data,omitempty" yaml:"data,omitempty"`
	Message string          `json:"message,omitempty" yaml:"message,omitempty"`
}

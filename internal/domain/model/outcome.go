package model

// Response is one model's fabricated answer to the prompt.
type Response struct {
	ModelID         string   `json:"model_id"`
	Content         string   `json:"content"`
	Highlights      []string `json:"highlights"`
	ModalitySupport []string `json:"modality_support"`
}

// CrossEvaluation is a peer judgment in which the judge model scores the
// target model's response. Judge and target are always distinct.
type CrossEvaluation struct {
	JudgeModelID  string  `json:"judge_model_id"`
	TargetModelID string  `json:"target_model_id"`
	Overall       float64 `json:"overall"`
	Metrics       Metrics `json:"metrics"`
	Rationale     string  `json:"rationale"`
}

// AggregatedScore reduces all peer judgments targeting one model to the
// mean of each dimension plus a weighted overall.
type AggregatedScore struct {
	ModelID     string  `json:"model_id"`
	MeanMetrics Metrics `json:"mean_metrics"`
	Overall     float64 `json:"overall"`
}

// RankingEntry is the arbiter's final placement for one finalist.
// Placement is 1-based and unique within a ranking.
type RankingEntry struct {
	ModelID    string  `json:"model_id"`
	Placement  int     `json:"placement"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Outcome is the complete result of one evaluation run, consumed as a
// whole by the rendering layer. The final ranking keeps its gemini_ranking
// key because the stock catalog designates a Gemini model as arbiter.
type Outcome struct {
	Responses        []Response        `json:"responses"`
	CrossEvaluations []CrossEvaluation `json:"cross_evaluations"`
	Aggregates       []AggregatedScore `json:"aggregates"`
	TopThree         []AggregatedScore `json:"top_three"`
	GeminiRanking    []RankingEntry    `json:"gemini_ranking"`
}

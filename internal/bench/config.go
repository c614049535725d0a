package bench

import (
	"encoding/json"
	"time"
)

// Config holds configuration for the arena bench run
type Config struct {
	BaseURL    string        // Base URL of the service
	NumSims    int           // Number of simulations to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Replays    int           // Number of determinism probes after the main run
	Seed       int64         // Workload seed, 0 picks a time-based one
	OutputFile string        // Output file for the generated workload
	LogFile    string        // Log file for bench output
	Verbose    bool          // Enable verbose logging
}

// Submission is one generated simulation request, the wire shape the
// service accepts on POST /simulations.
type Submission struct {
	RunID    string   `json:"run_id"`
	ModelIDs []string `json:"model_ids"`
	Prompt   Prompt   `json:"prompt"`
}

// Prompt mirrors the service prompt payload.
type Prompt struct {
	Text          string `json:"text"`
	Modality      string `json:"modality"`
	ImageFileName string `json:"image_file_name,omitempty"`
	ImageDataURL  string `json:"image_data_url,omitempty"`
}

// Envelope is the response wrapper around one outcome. The outcome is
// kept raw so replay probes can compare exact bytes.
type Envelope struct {
	SimulationID string          `json:"simulation_id"`
	ElapsedMS    float64         `json:"elapsed_ms"`
	Outcome      json.RawMessage `json:"outcome"`
}

// Outcome is the decoded simulation result.
type Outcome struct {
	Responses        []Response        `json:"responses"`
	CrossEvaluations []CrossEvaluation `json:"cross_evaluations"`
	Aggregates       []AggregatedScore `json:"aggregates"`
	TopThree         []AggregatedScore `json:"top_three"`
	GeminiRanking    []RankingEntry    `json:"gemini_ranking"`
}

// Response is one model's synthesized answer.
type Response struct {
	ModelID    string   `json:"model_id"`
	Content    string   `json:"content"`
	Highlights []string `json:"highlights"`
}

// CrossEvaluation is one judge-target cell of the matrix.
type CrossEvaluation struct {
	JudgeModelID  string  `json:"judge_model_id"`
	TargetModelID string  `json:"target_model_id"`
	Overall       float64 `json:"overall"`
	Metrics       Metrics `json:"metrics"`
	Rationale     string  `json:"rationale"`
}

// Metrics holds the four per-dimension scores.
type Metrics struct {
	Quality   float64 `json:"quality"`
	Clarity   float64 `json:"clarity"`
	Relevance float64 `json:"relevance"`
	Accuracy  float64 `json:"accuracy"`
}

// AggregatedScore is one leaderboard row.
type AggregatedScore struct {
	ModelID     string  `json:"model_id"`
	MeanMetrics Metrics `json:"mean_metrics"`
	Overall     float64 `json:"overall"`
}

// RankingEntry is one arbiter placement.
type RankingEntry struct {
	ModelID    string  `json:"model_id"`
	Placement  int     `json:"placement"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Catalog mirrors the GET /models payload.
type Catalog struct {
	Models  []CatalogModel `json:"models"`
	Arbiter CatalogModel   `json:"arbiter"`
}

// CatalogModel is one catalog entry as listed by the service.
type CatalogModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Result pairs a submission with the envelope it got back. Failed
// submissions carry an empty envelope.
type Result struct {
	Submission Submission
	Envelope   Envelope
	Status     int
}

// Stats holds bench statistics
type Stats struct {
	SimsGenerated    int
	SimsSubmitted    int
	SimsSucceeded    int
	SimsRejected     int
	SimsFailed       int
	CrossEvalsSeen   int
	CheckFailures    int
	ReplaysRun       int
	ReplayMismatches int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

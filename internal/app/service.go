// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/certamen-io/certamen/internal/domain/aggregate"
	"github.com/certamen-io/certamen/internal/domain/arbiter"
	"github.com/certamen-io/certamen/internal/domain/crosseval"
	"github.com/certamen-io/certamen/internal/domain/model"
	"github.com/certamen-io/certamen/internal/domain/registry"
	"github.com/certamen-io/certamen/internal/domain/synthesis"
	"github.com/certamen-io/certamen/pkg/logger"
	"github.com/certamen-io/certamen/pkg/metrics"
)

// defaultArbiterBlend mirrors the arbiter default so the service can
// report its effective configuration.
const defaultArbiterBlend = 0.6

// Service implements the API dependencies for the evaluation arena.
// Every pipeline component is stateless per call, so concurrent
// simulations are independent; the only shared state is the read-only
// catalog and the monitoring counters.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog     *registry.Registry
	synthesizer synthesis.Synthesizer
	evaluator   crosseval.Evaluator
	ranker      arbiter.Ranker

	// Configuration
	weights      crosseval.WeightSet
	arbiterBlend float64

	// State
	started   bool
	startedAt time.Time

	// Monitoring counters
	simulations      atomic.Int64
	invalidSelection atomic.Int64
	invalidPrompt    atomic.Int64
	lastDurationUS   atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry replaces the default embedded catalog.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Service) {
		if reg != nil {
			s.catalog = reg
		}
	}
}

// WithSynthesizer replaces the default template synthesizer.
func WithSynthesizer(syn synthesis.Synthesizer) Option {
	return func(s *Service) {
		if syn != nil {
			s.synthesizer = syn
		}
	}
}

// WithEvaluator replaces the default matrix builder.
func WithEvaluator(ev crosseval.Evaluator) Option {
	return func(s *Service) {
		if ev != nil {
			s.evaluator = ev
		}
	}
}

// WithRanker replaces the default persona ranker.
func WithRanker(r arbiter.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithWeights sets the metric weighting used for overall scores.
// Invalid sets are ignored in favor of the defaults.
func WithWeights(w crosseval.WeightSet) Option {
	return func(s *Service) {
		if err := w.Validate(); err == nil {
			s.weights = w
		}
	}
}

// WithArbiterBlend sets the aggregate share of the arbiter score.
// Values outside [0,1] are ignored.
func WithArbiterBlend(blend float64) Option {
	return func(s *Service) {
		if blend >= 0 && blend <= 1 {
			s.arbiterBlend = blend
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		weights:      crosseval.DefaultWeights(),
		arbiterBlend: defaultArbiterBlend,
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting evaluation service...")

	if s.catalog == nil {
		reg, err := registry.New()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.catalog = reg
	}
	if s.synthesizer == nil {
		s.synthesizer = synthesis.NewTemplateSynthesizer()
	}
	if s.evaluator == nil {
		s.evaluator = crosseval.NewMatrixBuilder(crosseval.WithWeights(s.weights))
	}
	if s.ranker == nil {
		s.ranker = arbiter.NewPersonaRanker(arbiter.WithBlend(s.arbiterBlend))
	}

	s.started = true
	s.startedAt = time.Now()
	metrics.UpdateRegistryModels(s.catalog.Len())

	s.logger.Info(ctx, "evaluation service started",
		logger.Int("models", s.catalog.Len()),
		logger.String("arbiter", s.catalog.Arbiter().ID),
		logger.Float64("arbiterBlend", s.arbiterBlend),
	)

	return nil
}

// Stop shuts the service down. The pipeline holds no resources, so this
// only flips the lifecycle flag.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "evaluation service stopped")
}

// Simulate runs the whole pipeline for one submission: validate, then
// synthesize responses, build the judgment matrix, reduce and rank the
// aggregates, and let the arbiter place the finalists. The computation
// is synchronous and never blocks on I/O; identical requests produce
// identical outcomes. No partial outcome is ever returned.
func (s *Service) Simulate(ctx context.Context, modelIDs []string, prompt model.Prompt) (model.Outcome, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return model.Outcome{}, fmt.Errorf("simulate: %w", err)
	}

	models, err := s.resolveSelection(modelIDs)
	if err != nil {
		s.invalidSelection.Add(1)
		metrics.RecordSimulationRejected("selection")
		return model.Outcome{}, err
	}

	prompt, err = normalizePrompt(prompt)
	if err != nil {
		s.invalidPrompt.Add(1)
		metrics.RecordSimulationRejected("prompt")
		return model.Outcome{}, err
	}

	synthStart := time.Now()
	responses := make([]model.Response, 0, len(models))
	for _, m := range models {
		responses = append(responses, s.synthesizer.Synthesize(m, prompt))
	}
	metrics.RecordStageDuration("synthesis", time.Since(synthStart))
	metrics.RecordResponsesSynthesized(len(responses))

	evalStart := time.Now()
	evals := s.evaluator.Build(models, responses)
	metrics.RecordStageDuration("cross_evaluation", time.Since(evalStart))
	metrics.RecordCrossEvaluations(len(evals))

	aggStart := time.Now()
	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	aggs := aggregate.Reduce(ids, evals)
	ranked := aggregate.Rank(aggs)
	top := aggregate.TopN(aggs, model.TopThreeSize)
	metrics.RecordStageDuration("aggregation", time.Since(aggStart))

	arbStart := time.Now()
	ranking := s.ranker.Rank(s.catalog.Arbiter(), s.buildCandidates(top, responses), prompt)
	metrics.RecordStageDuration("adjudication", time.Since(arbStart))
	for _, e := range ranking {
		metrics.RecordArbiterConfidence(e.Confidence)
	}

	elapsed := time.Since(start)
	s.simulations.Add(1)
	s.lastDurationUS.Store(elapsed.Microseconds())
	metrics.RecordSimulation(elapsed)
	metrics.RecordSelectionSize(len(models))

	s.logger.Debug(ctx, "simulation complete",
		logger.Int("models", len(models)),
		logger.Int("crossEvaluations", len(evals)),
		logger.String("leader", ranking[0].ModelID),
		logger.Duration("elapsed", elapsed),
	)

	return model.Outcome{
		Responses:        responses,
		CrossEvaluations: evals,
		Aggregates:       ranked,
		TopThree:         top,
		GeminiRanking:    ranking,
	}, nil
}

// resolveSelection validates the selection and resolves catalog entries.
// Size bounds, duplicates, unknown ids, and the arbiter itself are all
// selection failures, surfaced before any synthesis work.
func (s *Service) resolveSelection(ids []string) ([]model.Model, error) {
	if len(ids) < model.MinSelection || len(ids) > model.MaxSelection {
		return nil, fmt.Errorf("%w: %d models selected, want %d to %d",
			model.ErrInvalidSelection, len(ids), model.MinSelection, model.MaxSelection)
	}

	seen := make(map[string]bool, len(ids))
	out := make([]model.Model, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %q", model.ErrInvalidSelection, id)
		}
		seen[id] = true

		m, ok := s.catalog.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown id %q", model.ErrInvalidSelection, id)
		}
		if m.Arbiter {
			return nil, fmt.Errorf("%w: %q is the arbiter", model.ErrInvalidSelection, id)
		}
		out = append(out, m)
	}
	return out, nil
}

// normalizePrompt validates the prompt text and coerces unknown
// modalities to text. The image payload is carried through untouched.
func normalizePrompt(p model.Prompt) (model.Prompt, error) {
	if strings.TrimSpace(p.Text) == "" {
		return model.Prompt{}, fmt.Errorf("%w: empty text", model.ErrInvalidPrompt)
	}
	if p.Modality != model.ModalityMultimodal {
		p.Modality = model.ModalityText
	}
	return p, nil
}

// buildCandidates pairs each finalist with its catalog entry and its
// response. An unresolvable id stays in the running with a zero model;
// the ranker falls back to the raw id when naming it.
func (s *Service) buildCandidates(top []model.AggregatedScore, responses []model.Response) []arbiter.Candidate {
	byID := make(map[string]model.Response, len(responses))
	for _, r := range responses {
		byID[r.ModelID] = r
	}

	out := make([]arbiter.Candidate, 0, len(top))
	for _, agg := range top {
		m, _ := s.catalog.Get(agg.ModelID)
		out = append(out, arbiter.Candidate{
			Model:     m,
			Aggregate: agg,
			Response:  byID[agg.ModelID],
		})
	}
	return out
}

// Selectable returns the user-selectable catalog in display order.
func (s *Service) Selectable() []model.Model {
	return s.catalog.Selectable()
}

// Model resolves one catalog entry by id.
func (s *Service) Model(id string) (model.Model, bool) {
	return s.catalog.Get(id)
}

// Arbiter returns the designated meta-evaluator.
func (s *Service) Arbiter() model.Model {
	return s.catalog.Arbiter()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"simulations":       s.simulations.Load(),
		"invalidSelections": s.invalidSelection.Load(),
		"invalidPrompts":    s.invalidPrompt.Load(),
	}

	if s.started {
		stats["modelsRegistered"] = s.catalog.Len()
		stats["selectableModels"] = s.catalog.Len() - 1
		stats["arbiter"] = s.catalog.Arbiter().ID
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["lastSimulationMs"] = float64(s.lastDurationUS.Load()) / 1000.0

		metrics.UpdateRegistryModels(s.catalog.Len())
	}

	return stats
}

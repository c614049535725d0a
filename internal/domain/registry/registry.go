// Package registry loads the static model catalog and answers lookups.
package registry

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/certamen-io/certamen/internal/domain/model"
)

// Metric scale bounds shared by profile baselines.
const (
	minBaseline = 0.0
	maxBaseline = 10.0
)

// catalogEntry mirrors one models.yaml record.
type catalogEntry struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Vendor          string   `yaml:"vendor"`
	Release         string   `yaml:"release"`
	Description     string   `yaml:"description"`
	Capabilities    []string `yaml:"capabilities"`
	ModalitySupport []string `yaml:"modality_support"`
	Arbiter         bool     `yaml:"arbiter"`
	Profile         struct {
		Quality   float64 `yaml:"quality"`
		Clarity   float64 `yaml:"clarity"`
		Relevance float64 `yaml:"relevance"`
		Accuracy  float64 `yaml:"accuracy"`
		Leniency  float64 `yaml:"leniency"`
		Style     string  `yaml:"style"`
	} `yaml:"profile"`
}

// catalogFile is the top-level models.yaml document.
type catalogFile struct {
	Models []catalogEntry `yaml:"models"`
}

// Registry is the immutable model catalog loaded once at startup.
// All lookups are read-only and safe for concurrent use.
type Registry struct {
	raw     []byte
	models  []model.Model
	byID    map[string]model.Model
	arbiter model.Model
}

// New parses and validates the catalog. The embedded catalog is used
// unless WithCatalog overrides it. Construction fails on malformed YAML,
// duplicate or empty ids, profile baselines off the 0-10 scale, anything
// but exactly one arbiter, or fewer selectable models than a minimum
// selection needs.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{raw: catalogYAML}

	for _, opt := range opts {
		opt(r)
	}

	var file catalogFile
	if err := yaml.Unmarshal(r.raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCatalog, err)
	}
	r.raw = nil

	if len(file.Models) == 0 {
		return nil, fmt.Errorf("%w: no models defined", ErrInvalidCatalog)
	}

	r.models = make([]model.Model, 0, len(file.Models))
	r.byID = make(map[string]model.Model, len(file.Models))

	arbiters := 0
	for _, entry := range file.Models {
		m, err := entry.toModel()
		if err != nil {
			return nil, err
		}
		if _, dup := r.byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, m.ID)
		}
		if m.Arbiter {
			arbiters++
			r.arbiter = m
		}
		r.models = append(r.models, m)
		r.byID[m.ID] = m
	}

	if arbiters != 1 {
		return nil, fmt.Errorf("%w: want exactly one arbiter, have %d", ErrInvalidCatalog, arbiters)
	}
	if len(r.models)-1 < model.MinSelection {
		return nil, fmt.Errorf("%w: %d selectable models, need at least %d",
			ErrInvalidCatalog, len(r.models)-1, model.MinSelection)
	}

	return r, nil
}

// toModel converts a catalog record into the domain type, validating as
// it goes.
func (e catalogEntry) toModel() (model.Model, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return model.Model{}, fmt.Errorf("%w: entry with empty id", ErrInvalidCatalog)
	}
	if strings.TrimSpace(e.Name) == "" {
		return model.Model{}, fmt.Errorf("%w: model %q has no name", ErrInvalidCatalog, id)
	}

	baseline := model.Metrics{
		Quality:   e.Profile.Quality,
		Clarity:   e.Profile.Clarity,
		Relevance: e.Profile.Relevance,
		Accuracy:  e.Profile.Accuracy,
	}
	for _, v := range []float64{baseline.Quality, baseline.Clarity, baseline.Relevance, baseline.Accuracy} {
		if v < minBaseline || v > maxBaseline {
			return model.Model{}, fmt.Errorf("%w: model %q baseline %v outside [%v,%v]",
				ErrInvalidCatalog, id, v, minBaseline, maxBaseline)
		}
	}

	return model.Model{
		ID:              id,
		Name:            e.Name,
		Vendor:          e.Vendor,
		Release:         e.Release,
		Description:     e.Description,
		Capabilities:    e.Capabilities,
		ModalitySupport: e.ModalitySupport,
		Arbiter:         e.Arbiter,
		Profile: model.Profile{
			Baseline: baseline,
			Leniency: e.Profile.Leniency,
			Style:    e.Profile.Style,
		},
	}, nil
}

// Selectable returns the user-selectable models in catalog order. The
// arbiter never appears. Callers receive a fresh slice.
func (r *Registry) Selectable() []model.Model {
	out := make([]model.Model, 0, len(r.models)-1)
	for _, m := range r.models {
		if m.Arbiter {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Get resolves a model by id. Absent ids are reported, not fatal;
// callers render a fallback for ids they cannot resolve.
func (r *Registry) Get(id string) (model.Model, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Arbiter returns the designated meta-evaluator.
func (r *Registry) Arbiter() model.Model {
	return r.arbiter
}

// Len returns the total number of catalog entries, arbiter included.
func (r *Registry) Len() int {
	return len(r.models)
}

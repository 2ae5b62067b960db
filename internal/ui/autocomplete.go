package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"roadmap/internal/domain"
)

type AutocompleteOptions struct {
	MinimumInputLength int
	// Delay is how long input must stay unchanged before a search is sent.
	Delay time.Duration
	// Cache keeps results of identical queries for the widget's lifetime.
	Cache bool
}

func DefaultAutocompleteOptions() AutocompleteOptions {
	return AutocompleteOptions{
		MinimumInputLength: 2,
		Delay:              250 * time.Millisecond,
		Cache:              true,
	}
}

// Autocomplete is a location input backed by the city search endpoint. Each
// instance keeps its own cache, result list and selected value.
type Autocomplete struct {
	name     string
	search   SearchFunc
	opts     AutocompleteOptions
	onSelect func(domain.LocationSelection)
	logger   *slog.Logger

	pending latest

	mu    sync.Mutex
	cache map[string][]domain.Candidate
	shown map[string]domain.Candidate
	value string
	label string
}

// NewAutocomplete creates a widget. onSelect, if not nil, is called for every
// selection that carries coordinates.
func NewAutocomplete(name string, search SearchFunc, opts AutocompleteOptions, onSelect func(domain.LocationSelection), logger *slog.Logger) *Autocomplete {
	return &Autocomplete{
		name:     name,
		search:   search,
		opts:     opts,
		onSelect: onSelect,
		logger:   logger.With("component", "autocomplete", "field", name),
		cache:    make(map[string][]domain.Candidate),
		shown:    make(map[string]domain.Candidate),
	}
}

func (a *Autocomplete) Name() string {
	return a.name
}

func (a *Autocomplete) MinimumInputLength() int {
	return a.opts.MinimumInputLength
}

// Query returns the candidates for term once typing has paused for the
// configured delay. A newer Query makes a pending one return ErrSuperseded.
func (a *Autocomplete) Query(ctx context.Context, term string) ([]domain.Candidate, error) {
	if utf8.RuneCountInString(term) < a.opts.MinimumInputLength {
		a.pending.reset()
		return nil, ErrInputTooShort
	}

	ctx, seq := a.pending.begin(ctx)
	defer a.pending.end(seq)

	if results, ok := a.cached(term); ok {
		a.logger.Debug("search cache hit", "term", term)
		return a.publish(seq, results)
	}

	if a.opts.Delay > 0 {
		timer := time.NewTimer(a.opts.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			if !a.pending.current(seq) {
				return nil, ErrSuperseded
			}
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	start := time.Now()
	results, err := a.search(ctx, term)
	if err != nil {
		if !a.pending.current(seq) {
			return nil, ErrSuperseded
		}
		return nil, fmt.Errorf("searching %q: %w", term, err)
	}
	a.logger.Debug("search completed", "term", term, "results", len(results), "duration_ms", time.Since(start).Milliseconds())

	if a.opts.Cache {
		a.mu.Lock()
		a.cache[term] = results
		a.mu.Unlock()
	}
	return a.publish(seq, results)
}

func (a *Autocomplete) cached(term string) ([]domain.Candidate, bool) {
	if !a.opts.Cache {
		return nil, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	results, ok := a.cache[term]
	return results, ok
}

// publish makes results the selectable list, unless a newer query took over.
func (a *Autocomplete) publish(seq uint64, results []domain.Candidate) ([]domain.Candidate, error) {
	ok := a.pending.commit(seq, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.shown = make(map[string]domain.Candidate, len(results))
		for _, c := range results {
			a.shown[c.Key()] = c
		}
	})
	if !ok {
		return nil, ErrSuperseded
	}
	return results, nil
}

// Select picks one of the candidates returned by the last query.
func (a *Autocomplete) Select(key string) (domain.Candidate, error) {
	a.mu.Lock()
	c, ok := a.shown[key]
	a.mu.Unlock()
	if !ok {
		return domain.Candidate{}, fmt.Errorf("%s: %w: %q", a.name, ErrUnknownCandidate, key)
	}
	a.SelectCandidate(c)
	return c, nil
}

// SelectCandidate stores c as the field value and re-centers the map on it
// when it has coordinates.
func (a *Autocomplete) SelectCandidate(c domain.Candidate) {
	a.mu.Lock()
	a.value = c.Value()
	a.label = c.Label
	a.mu.Unlock()

	a.logger.Debug("candidate selected", "label", c.Label, "value", c.Value())

	if sel, ok := c.Selection(); ok && a.onSelect != nil {
		a.onSelect(sel)
	}
}

// Clear empties the selection.
func (a *Autocomplete) Clear() {
	a.pending.reset()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.value = ""
	a.label = ""
}

// Value is the stored endpoint, "lat,lng" for located candidates.
func (a *Autocomplete) Value() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

func (a *Autocomplete) Label() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.label
}

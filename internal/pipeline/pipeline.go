// Package pipeline orchestrates the complete run: parse both sources, merge
// into one timeline, annotate each utterance, and hand the result to the
// serializer or the service layer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/parse"
	"github.com/classpulse/classpulse/internal/relevance"
	"github.com/classpulse/classpulse/internal/rules"
	"github.com/classpulse/classpulse/internal/textnorm"
	"github.com/classpulse/classpulse/internal/timeline"
	"github.com/classpulse/classpulse/internal/worker"
)

// ErrMissingInput indicates a required input source (captions or chat) was
// not supplied. This aborts the whole run.
var ErrMissingInput = errors.New("missing required input")

// Inputs carries the run's input sources. Captions and Chat are required;
// Rules, Reference and Roster are optional and switch their stages on.
// Callers adapt files, buffers or upload streams to these readers.
type Inputs struct {
	Captions  io.Reader
	Chat      io.Reader
	Rules     io.Reader
	Reference io.Reader
	Roster    io.Reader
}

// Pipeline wires the stages together. All dependencies are explicit: the
// normalizer, the optional embedding provider and the worker count come in
// through the constructor, never through package state.
type Pipeline struct {
	normalizer *textnorm.Normalizer
	embedder   relevance.Embedder
	workers    int
	log        zerolog.Logger
}

// New creates a pipeline. embedder may be nil; runs that supply a reference
// document then fail with a configuration error.
func New(cfg *model.Config, embedder relevance.Embedder, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		normalizer: textnorm.New(),
		embedder:   embedder,
		workers:    cfg.Concurrency.AnnotationWorkers,
		log:        log,
	}
}

// Run executes the full pipeline and returns the enriched timeline. A run
// either produces a complete, schema-consistent timeline or fails outright:
// structural noise in the inputs is skipped at line/block granularity by the
// parsers, but collaborator failures and missing required inputs abort.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (*model.Timeline, error) {
	if in.Captions == nil {
		return nil, fmt.Errorf("%w: captions", ErrMissingInput)
	}
	if in.Chat == nil {
		return nil, fmt.Errorf("%w: chat log", ErrMissingInput)
	}

	captions, err := parse.Captions(in.Captions)
	if err != nil {
		return nil, fmt.Errorf("parse captions: %w", err)
	}

	chat, err := parse.ChatLog(in.Chat)
	if err != nil {
		return nil, fmt.Errorf("parse chat log: %w", err)
	}

	entries := timeline.Merge(captions, chat)
	p.log.Debug().Int("captions", len(captions)).Int("chat", len(chat)).Msg("merged timeline")

	var ruleSet *rules.Set
	if in.Rules != nil {
		ruleSet, err = rules.Load(in.Rules, p.normalizer)
		if err != nil {
			return nil, fmt.Errorf("load rule table: %w", err)
		}
		p.log.Debug().Int("rules", ruleSet.Len()).Msg("loaded rule table")
	}

	var scorer *relevance.Scorer
	if in.Reference != nil {
		if p.embedder == nil {
			return nil, errors.New("reference document supplied but no embedding provider configured")
		}
		reference, err := io.ReadAll(in.Reference)
		if err != nil {
			return nil, fmt.Errorf("read reference document: %w", err)
		}
		scorer, err = relevance.NewScorer(ctx, p.embedder, string(reference))
		if err != nil {
			return nil, err
		}
		p.log.Debug().Str("provider", p.embedder.Name()).Msg("embedded reference document")
	}

	if err := p.annotate(ctx, entries, ruleSet, scorer); err != nil {
		return nil, err
	}

	var roster []string
	if in.Roster != nil {
		roster, err = parse.Roster(in.Roster)
		if err != nil {
			return nil, fmt.Errorf("parse roster: %w", err)
		}
	}

	return &model.Timeline{
		Entries:     entries,
		Speakers:    model.CollectSpeakers(entries),
		Roster:      roster,
		Categorized: ruleSet != nil,
		Scored:      scorer != nil,
	}, nil
}

// annotateJob enriches the utterance at a fixed index: normalized text,
// category and relevancy depend only on the utterance's own text plus shared
// immutable state, so jobs are safe to run in parallel.
type annotateJob struct {
	index      int
	entry      *model.Utterance
	normalizer *textnorm.Normalizer
	ruleSet    *rules.Set
	scorer     *relevance.Scorer
}

type annotateResult struct {
	index int
	err   error
}

func (r *annotateResult) GetError() error { return r.err }

func (j *annotateJob) Execute(ctx context.Context) worker.Result {
	j.entry.Normalized = j.normalizer.Normalize(j.entry.Text)

	if j.ruleSet != nil {
		j.entry.Category = j.ruleSet.Categorize(j.entry.Text)
	}

	if j.scorer != nil {
		score, err := j.scorer.Score(ctx, j.entry.Text)
		if err != nil {
			return &annotateResult{index: j.index, err: err}
		}
		j.entry.Relevancy = &score
	}

	return &annotateResult{index: j.index}
}

// annotate fans the per-utterance enrichment out over the worker pool. Each
// job writes only its own timeline slot, so output is deterministic
// regardless of completion order.
func (p *Pipeline) annotate(ctx context.Context, entries []model.Utterance, ruleSet *rules.Set, scorer *relevance.Scorer) error {
	if len(entries) == 0 {
		return nil
	}

	pool := worker.NewPool(p.workers)
	pool.Start()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	for i := range entries {
		pool.Submit(&annotateJob{
			index:      i,
			entry:      &entries[i],
			normalizer: p.normalizer,
			ruleSet:    ruleSet,
			scorer:     scorer,
		})
	}

	for _, result := range pool.Wait() {
		if err := result.GetError(); err != nil {
			return fmt.Errorf("annotate utterance: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// WriteCSV renders the timeline with the optional columns switched on for
// exactly the stages that ran.
func WriteCSV(w io.Writer, tl *model.Timeline) error {
	return timeline.WriteCSV(w, tl.Entries, timeline.WriteOptions{
		IncludeCategory:  tl.Categorized,
		IncludeRelevancy: tl.Scored,
	})
}

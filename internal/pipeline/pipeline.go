// Package pipeline wires the stages together: gate raw records, reduce
// them to canonical comparables, aggregate market statistics, and run
// photo slot selection, then render the result.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkravets/compscan/internal/cache"
	"github.com/mkravets/compscan/internal/extract"
	"github.com/mkravets/compscan/internal/filter"
	"github.com/mkravets/compscan/internal/insight"
	"github.com/mkravets/compscan/internal/llm"
	"github.com/mkravets/compscan/internal/model"
	"github.com/mkravets/compscan/internal/photos"
	"github.com/mkravets/compscan/internal/stats"
	"github.com/mkravets/compscan/internal/status"
	"github.com/mkravets/compscan/internal/worker"
)

// Pipeline is the orchestrator for one process. All stages are pure;
// only the insight client performs I/O.
type Pipeline struct {
	cfg        *model.Config
	aggregator *stats.Aggregator
	scorer     *photos.Scorer
	insights   *insight.Client
	sequencer  *insight.Sequencer
	renderer   *Renderer
	summarizer *llm.Summarizer
}

// NewPipeline builds a pipeline from config.
func NewPipeline(cfg *model.Config) *Pipeline {
	var store cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	pacer := worker.NewPacer(1, 1, cfg.Insight.RequestDelay)

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		cfg:        cfg,
		aggregator: stats.New(cfg.Stats),
		scorer:     photos.NewScorer(cfg.Photos, cfg.Insight.CDNBaseURL),
		insights:   insight.NewClient(cfg.Insight, pacer, store, cfg.Cache.DiskTTL),
		sequencer:  insight.NewSequencer(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
	}
}

// Analyze runs the core pipeline over one raw record set. Records that
// fail the rental gate are counted and dropped before extraction; they
// never reach the aggregator or the report.
func (p *Pipeline) Analyze(ctx context.Context, records []model.RawRecord, subject string) (*model.CMAReport, error) {
	report := &model.CMAReport{
		Subject:         subject,
		GeneratedAt:     time.Now().UTC(),
		RecordsIn:       len(records),
		StatusBreakdown: make(map[model.CanonicalStatus]int),
	}

	for _, rec := range records {
		if filter.Excluded(rec) {
			report.Excluded++
			continue
		}

		comp := extract.BuildComparable(rec)
		comp.Status = status.FromRecord(rec)
		for i, u := range comp.Photos {
			comp.Photos[i] = photos.ResolveURL(u, p.cfg.Insight.CDNBaseURL)
		}

		report.Comparables = append(report.Comparables, comp)
		report.StatusBreakdown[comp.Status]++
	}

	report.Statistics = p.aggregator.All(report.Comparables)

	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// ErrSuperseded is returned by SelectPhotos when a newer invocation
// started while this one was in flight.
var ErrSuperseded = fmt.Errorf("photo selection superseded by a newer invocation")

// SelectPhotos runs slot selection for one property, fetching insight
// metadata when a client is configured. Insight failures degrade to the
// positional default; only supersession and caller cancellation error.
func (p *Pipeline) SelectPhotos(ctx context.Context, comp model.Comparable) (*model.PhotoSelection, error) {
	ctx, commit := p.sequencer.Begin(ctx)

	if err := ctx.Err(); err != nil {
		if !commit() {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	var ins *model.InsightResult
	if p.insights != nil {
		res, err := p.insights.Lookup(ctx, comp.MLSNumber)
		if err != nil {
			// Cancelled: either the caller gave up or a newer
			// invocation took over. Never write back.
			if !commit() {
				return nil, ErrSuperseded
			}
			return nil, err
		}
		ins = res
	}

	candidates := p.scorer.BuildCandidates(comp.Photos, ins)
	selection := p.scorer.Select(candidates)
	if ins == nil || !ins.Available {
		selection.InsightsUnavailable = true
	}

	if !commit() {
		return nil, ErrSuperseded
	}
	return &selection, nil
}

// AnalyzeFile loads a JSON array of raw records and analyzes it.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.CMAReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var records []model.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	return p.Analyze(ctx, records, path)
}

// RenderReport writes the report to the requested outputs and prints
// the stdout summary.
func (p *Pipeline) RenderReport(report *model.CMAReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

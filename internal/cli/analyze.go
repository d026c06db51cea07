package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mkravets/compscan/internal/model"
	"github.com/mkravets/compscan/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	insightBase  string
	cdnBase      string
	requestDelay time.Duration
	noCache      bool
	noFooter     bool
	withPhotos   bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <records.json>",
	Short: "Analyze a comparable-listing export and generate a CMA report",
	Long: `Analyze processes one JSON export of comparable listings:
- Exclude rental and lease records
- Normalize the rest into canonical comparables (price, size, lot,
  address, status)
- Compute per-metric market statistics with derived-metric sanity bounds
- Render a JSON and optional Markdown report

Example:
  compscan analyze comps.json
  compscan analyze comps.json --json report.json --md report.md
  compscan analyze comps.json --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Insight service flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&insightBase, "insight-url", "", "photo-insight service base URL (empty disables lookups)")
	analyzeCmd.Flags().StringVar(&cdnBase, "cdn-url", "", "CDN base URL for relative photo paths")
	analyzeCmd.Flags().DurationVar(&requestDelay, "request-delay", 750*time.Millisecond, "pause between insight lookups")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "compscan/0.3 (+https://github.com/mkravets/compscan)", "HTTP User-Agent")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable insight cache (force fresh lookups)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&withPhotos, "photos", false, "include photo slot selection for the subject listing")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM market summary")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig assembles runtime config from defaults and flags. Shared
// by analyze, photos, and batch.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Insight.UserAgent = userAgent
	cfg.Insight.RequestDelay = requestDelay
	if insightBase != "" {
		cfg.Insight.BaseURL = insightBase
	}
	if cdnBase != "" {
		cfg.Insight.CDNBaseURL = cdnBase
	}
	cfg.Cache.Enabled = !noCache
	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}

	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", file)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	// Create pipeline
	p := pipeline.NewPipeline(cfg)

	report, err := p.AnalyzeFile(ctx, file)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	// The first comparable stands in for the subject listing.
	if withPhotos && len(report.Comparables) > 0 {
		selection, err := p.SelectPhotos(ctx, report.Comparables[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: photo selection failed: %v\n", err)
		} else {
			report.Photos = selection
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Kept %d of %d records (%d rental/lease excluded)\n",
			len(report.Comparables), report.RecordsIn, report.Excluded)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated market summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkravets/compscan/internal/extract"
	"github.com/mkravets/compscan/internal/model"
	"github.com/mkravets/compscan/internal/pipeline"
	"github.com/spf13/cobra"
)

var photosMLS string

// photosCmd represents the photos command
var photosCmd = &cobra.Command{
	Use:   "photos <records.json>",
	Short: "Select report photos for one listing",
	Long: `Photos runs slot selection for a single listing: the best main
(exterior), kitchen, and room photo, using AI photo-insight metadata
when the service is reachable and positional defaults when it is not.

By default the first record in the file is used; pass --mls to pick a
specific listing.

Example:
  compscan photos comps.json
  compscan photos comps.json --mls W5485959
  compscan photos comps.json --insight-url https://insights.example.com/v1`,
	Args: cobra.ExactArgs(1),
	RunE: runPhotos,
}

func init() {
	rootCmd.AddCommand(photosCmd)

	photosCmd.Flags().StringVar(&photosMLS, "mls", "", "MLS number of the listing (default: first record)")

	photosCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	photosCmd.Flags().StringVar(&insightBase, "insight-url", "", "photo-insight service base URL (empty disables lookups)")
	photosCmd.Flags().StringVar(&cdnBase, "cdn-url", "", "CDN base URL for relative photo paths")
	photosCmd.Flags().DurationVar(&requestDelay, "request-delay", 750*time.Millisecond, "pause between insight lookups")
	photosCmd.Flags().StringVar(&userAgent, "ua", "compscan/0.3 (+https://github.com/mkravets/compscan)", "HTTP User-Agent")
	photosCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable insight cache (force fresh lookups)")
}

func runPhotos(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}

	var records []model.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no records in %s", file)
	}

	rec, err := pickRecord(records, photosMLS)
	if err != nil {
		return err
	}
	comp := extract.BuildComparable(rec)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Selecting photos for %s (%d candidates)\n", comp.MLSNumber, len(comp.Photos))
	}

	selection, err := p.SelectPhotos(ctx, comp)
	if err != nil {
		return fmt.Errorf("photo selection failed: %w", err)
	}

	out, err := json.MarshalIndent(selection, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	fmt.Println(string(out))

	if selection.InsightsUnavailable {
		fmt.Fprintln(os.Stderr, "Note: photo insights unavailable, selection fell back to photo order")
	}

	return nil
}

// pickRecord finds the requested listing, or the first one when no MLS
// number is given.
func pickRecord(records []model.RawRecord, mls string) (model.RawRecord, error) {
	if mls == "" {
		return records[0], nil
	}
	for _, rec := range records {
		if s, ok := rec.LookupString("mlsNumber"); ok && s == mls {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("listing %s not found", mls)
}

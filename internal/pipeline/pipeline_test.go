package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkravets/compscan/internal/model"
	"github.com/mkravets/compscan/internal/worker"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Insight.BaseURL = "" // offline: insight lookups degrade
	cfg.Cache.Enabled = false
	return cfg
}

func sampleRecords() []model.RawRecord {
	return []model.RawRecord{
		{
			"mlsNumber": "A100", "status": "Active",
			"listPrice": "450,000", "details": map[string]any{"sqft": "2000"},
		},
		{
			"mlsNumber": "A101", "status": "U", "lastStatus": "Sld",
			"listPrice": "480000", "soldPrice": "470000",
			"details": map[string]any{"sqft": float64(2350)},
		},
		{
			"mlsNumber": "R900", "status": "Active",
			"type": "Lease", "listPrice": "2500",
		},
	}
}

func TestAnalyzeGatesAndClassifies(t *testing.T) {
	p := NewPipeline(testConfig())

	report, err := p.Analyze(context.Background(), sampleRecords(), "482 Oakmont Dr")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.RecordsIn != 3 {
		t.Errorf("RecordsIn = %d, want 3", report.RecordsIn)
	}
	if report.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", report.Excluded)
	}
	if len(report.Comparables) != 2 {
		t.Fatalf("Comparables = %d, want 2", len(report.Comparables))
	}

	if report.StatusBreakdown[model.StatusActive] != 1 ||
		report.StatusBreakdown[model.StatusClosed] != 1 {
		t.Errorf("StatusBreakdown = %v, want 1 active, 1 closed", report.StatusBreakdown)
	}

	lp := report.Statistics["list_price"]
	if lp.Samples != 2 {
		t.Errorf("list_price samples = %d, want 2", lp.Samples)
	}
	if lp.Min != 450000 || lp.Max != 480000 {
		t.Errorf("list_price range = [%v, %v], want [450000, 480000]", lp.Min, lp.Max)
	}

	// Sold-priced comp contributes 470000/2350 = 200 per sqft.
	pps := report.Statistics["price_per_sqft"]
	if pps.Samples != 2 {
		t.Errorf("price_per_sqft samples = %d, want 2", pps.Samples)
	}
	if pps.Max != 225 {
		t.Errorf("price_per_sqft max = %v, want 225", pps.Max)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	p := NewPipeline(testConfig())

	report, err := p.Analyze(context.Background(), nil, "subject")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.Comparables) != 0 {
		t.Errorf("Comparables = %d, want 0", len(report.Comparables))
	}
	if report.Statistics["list_price"].Samples != 0 {
		t.Error("expected zeroed statistics for empty input")
	}
}

func TestSelectPhotosDegradesWithoutInsights(t *testing.T) {
	p := NewPipeline(testConfig())

	comp := model.Comparable{
		MLSNumber: "A100",
		Photos:    []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}

	sel, err := p.SelectPhotos(context.Background(), comp)
	if err != nil {
		t.Fatalf("SelectPhotos: %v", err)
	}
	if !sel.InsightsUnavailable {
		t.Error("expected InsightsUnavailable without a configured base URL")
	}
	if sel.Main.URL != "https://cdn.example.com/a.jpg" {
		t.Errorf("Main = %q, want positional first photo", sel.Main.URL)
	}
	if sel.Main.IsAISelected {
		t.Error("positional fallback must not be marked AI-selected")
	}
}

func TestSelectPhotosCancelled(t *testing.T) {
	p := NewPipeline(testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	comp := model.Comparable{MLSNumber: "A100", Photos: []string{"x.jpg"}}
	if _, err := p.SelectPhotos(ctx, comp); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")

	data, err := json.Marshal(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(testConfig())
	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if len(report.Comparables) != 2 {
		t.Errorf("Comparables = %d, want 2", len(report.Comparables))
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	p := NewPipeline(testConfig())
	if _, err := p.AnalyzeFile(context.Background(), "/nonexistent/records.json"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestAnalyzeFileBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(testConfig())
	if _, err := p.AnalyzeFile(context.Background(), path); err == nil {
		t.Error("expected a decode error")
	}
}

func TestBatcherRunsAllFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		path := filepath.Join(dir, name)
		data, _ := json.Marshal(sampleRecords())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	b := NewBatcher(NewPipeline(testConfig()), 2)
	results, err := b.Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("file %s: %v", r.Path, r.Err)
		}
		if r.Path != paths[i] {
			t.Errorf("results not sorted: got %s at %d", r.Path, i)
		}
	}
}

func TestBatcherBatchLargerThanWorkerBuffers(t *testing.T) {
	// A single worker's internal buffers hold only a handful of jobs;
	// a batch well past that must still run to completion.
	dir := t.TempDir()
	data, err := json.Marshal(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for i := 0; i < 12; i++ {
		path := filepath.Join(dir, fmt.Sprintf("export-%02d.json", i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	b := NewBatcher(NewPipeline(testConfig()), 1)
	results, err := b.Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("results = %d, want %d", len(results), len(paths))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("file %s: %v", r.Path, r.Err)
		}
	}
}

func TestBatcherReportsPerFileErrors(t *testing.T) {
	b := NewBatcher(NewPipeline(testConfig()), 2)
	results, err := b.Run(context.Background(), []string{"/nonexistent/x.json"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Errorf("expected one failed result, got %+v", results)
	}
}

func TestBatcherRefusesOverlap(t *testing.T) {
	b := NewBatcher(NewPipeline(testConfig()), 1)

	release, err := b.guard.TryStart()
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	if _, err := b.Run(context.Background(), nil); err != worker.ErrAlreadyRunning {
		t.Errorf("err = %v, want ErrAlreadyRunning", err)
	}
}

func TestMarkdownReport(t *testing.T) {
	p := NewPipeline(testConfig())
	report, err := p.Analyze(context.Background(), sampleRecords(), "482 Oakmont Dr")
	if err != nil {
		t.Fatal(err)
	}
	report.Photos = &model.PhotoSelection{
		Main:                model.SlotSelection{URL: "https://cdn.example.com/a.jpg"},
		MissingCategories:   []string{"Kitchen"},
		InsightsUnavailable: true,
	}

	md := NewRenderer(true).Markdown(report)

	for _, want := range []string{
		"# Comparable Market Analysis",
		"**Subject:** 482 Oakmont Dr",
		"| List Price |",
		"- active: 1",
		"- closed: 1",
		"**Main:** https://cdn.example.com/a.jpg",
		"Missing categories: Kitchen",
		"insights were unavailable",
		"*Generated by compscan",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownFooterToggle(t *testing.T) {
	report := &model.CMAReport{Subject: "s", Statistics: map[string]model.MarketStatistic{}}
	md := NewRenderer(false).Markdown(report)
	if strings.Contains(md, "Generated by compscan") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	report := &model.CMAReport{Subject: "s", RecordsIn: 2}
	if err := NewRenderer(true).RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded model.CMAReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("written JSON does not parse: %v", err)
	}
	if decoded.Subject != "s" || decoded.RecordsIn != 2 {
		t.Errorf("round trip lost fields: %+v", decoded)
	}
}

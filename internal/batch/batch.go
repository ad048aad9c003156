package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"vizcast/internal/history"
	"vizcast/internal/logging"
	"vizcast/internal/render"
	"vizcast/internal/viz"
)

// Renderer converts one file. Implemented by render.Renderer.
type Renderer interface {
	Render(ctx context.Context, req viz.Request, outputPath string) (render.Artifacts, error)
}

// Recorder persists batch outcomes. Implemented by history.Store.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Result pairs one input with its outcome.
type Result struct {
	Input     string
	Artifacts render.Artifacts
	Err       error
}

// Options configures an orchestrator run.
type Options struct {
	// OutputDir redirects derived output paths. Empty keeps outputs next
	// to their sources.
	OutputDir string
	// Workers bounds concurrent conversions. Values below 1 mean serial.
	Workers int
}

// Orchestrator fans a shared request template out over many input files.
type Orchestrator struct {
	renderer Renderer
	recorder Recorder
	logger   *slog.Logger
}

// NewOrchestrator wires an orchestrator. The recorder may be nil when no
// ledger is configured.
func NewOrchestrator(renderer Renderer, recorder Recorder, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{renderer: renderer, recorder: recorder, logger: logger}
}

// Run converts every input using the shared request template. Per-file
// failures are collected, not propagated; results preserve input order.
func (o *Orchestrator) Run(ctx context.Context, inputs []string, template viz.Request, opts Options) ([]Result, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("batch: no inputs")
	}

	// Saving a cover image is a single-file convenience: with several
	// inputs the files would race for one destination path.
	if len(inputs) > 1 && template.CoverSavePath != "" {
		o.logger.Warn("cover save path ignored in batch mode",
			logging.String("path", template.CoverSavePath),
			logging.Int("inputs", len(inputs)))
		template.CoverSavePath = ""
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("batch: ensure output directory: %w", err)
		}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(inputs))
	group := new(errgroup.Group)
	group.SetLimit(workers)
	for i, input := range inputs {
		group.Go(func() error {
			results[i] = o.runOne(ctx, input, template, opts.OutputDir)
			return nil
		})
	}
	_ = group.Wait()
	return results, nil
}

func (o *Orchestrator) runOne(ctx context.Context, input string, template viz.Request, outputDir string) Result {
	req := template
	req.AudioPath = input
	outputPath := DeriveOutputPath(input, outputDir)

	o.logger.Info("processing",
		logging.String("input", input),
		logging.String("output", outputPath))

	artifacts, err := o.renderer.Render(ctx, req, outputPath)
	result := Result{Input: input, Artifacts: artifacts, Err: err}
	o.record(ctx, result)
	if err != nil {
		o.logger.Error("conversion failed",
			logging.String("input", input),
			logging.Error(err))
	}
	return result
}

func (o *Orchestrator) record(ctx context.Context, result Result) {
	if o.recorder == nil {
		return
	}
	entry := history.Entry{
		Source:    result.Input,
		Output:    result.Artifacts.OutputPath,
		Thumbnail: result.Artifacts.ThumbnailPath,
		Status:    history.StatusCompleted,
	}
	if result.Err != nil {
		entry.Status = history.StatusFailed
		entry.Detail = result.Err.Error()
		entry.Output = ""
		entry.Thumbnail = ""
	}
	if err := o.recorder.Record(ctx, entry); err != nil {
		o.logger.Warn("failed to record conversion history",
			logging.String("input", result.Input),
			logging.Error(err))
	}
}

// DeriveOutputPath computes the video path for an input: the source stem
// with an mp4 extension, optionally redirected into outputDir.
func DeriveOutputPath(input, outputDir string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	name := stem + ".mp4"
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// Summarize counts completed and failed results.
func Summarize(results []Result) (completed, failed int) {
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}
		completed++
	}
	return completed, failed
}

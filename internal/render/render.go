package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vizcast/internal/cover"
	"vizcast/internal/engine"
	"vizcast/internal/filtergraph"
	"vizcast/internal/layout"
	"vizcast/internal/logging"
	"vizcast/internal/palette"
	"vizcast/internal/viz"
)

// Extractor is the cover-art lookup the pipeline consumes.
type Extractor interface {
	Extract(ctx context.Context, audioPath string) (cover.Result, error)
}

// Invoker executes a built graph against the engine.
type Invoker interface {
	Invoke(ctx context.Context, spec filtergraph.Spec, req viz.Request, outputPath, thumbnailPath string) (engine.Outcome, error)
}

// Artifacts lists the files a successful render produced.
type Artifacts struct {
	OutputPath    string
	ThumbnailPath string
	CoverPath     string // set only when the caller requested a cover save
}

// Renderer converts one audio file per Render call.
type Renderer struct {
	extractor Extractor
	builder   *filtergraph.Builder
	invoker   Invoker
	logger    *slog.Logger
}

// NewRenderer wires a renderer from its collaborators.
func NewRenderer(extractor Extractor, invoker Invoker, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renderer{
		extractor: extractor,
		builder:   filtergraph.NewBuilder(),
		invoker:   invoker,
		logger:    logger,
	}
}

// Render runs the full pipeline for one request. Configuration validation
// happens before cover extraction or any engine invocation.
func (r *Renderer) Render(ctx context.Context, req viz.Request, outputPath string) (Artifacts, error) {
	if err := req.Validate(); err != nil {
		return Artifacts{}, fmt.Errorf("validate request: %w", err)
	}

	// Fail-fast checks: nothing expensive or side-effecting may run first.
	scheme, err := palette.Resolve(req.ColorScheme)
	if err != nil {
		return Artifacts{}, fmt.Errorf("resolve color scheme: %w", err)
	}
	region, err := r.resolveRegion(req)
	if err != nil {
		return Artifacts{}, fmt.Errorf("resolve placement: %w", err)
	}
	if info, err := os.Stat(req.AudioPath); err != nil || info.IsDir() {
		return Artifacts{}, fmt.Errorf("audio file not found: %s", req.AudioPath)
	}
	if img := strings.TrimSpace(req.BackgroundImage); img != "" {
		if info, err := os.Stat(img); err != nil || info.IsDir() {
			return Artifacts{}, fmt.Errorf("background image not found: %s", img)
		}
	}

	art := r.extractCover(ctx, req)

	artifacts := Artifacts{OutputPath: outputPath}
	if req.CoverSavePath != "" && art.Found {
		if err := art.Save(req.CoverSavePath); err != nil {
			return Artifacts{}, fmt.Errorf("save cover art: %w", err)
		}
		artifacts.CoverPath = req.CoverSavePath
		r.logger.Info("cover art saved", logging.String("path", req.CoverSavePath))
	}

	spec, err := r.builder.Build(req, art, scheme, region)
	if err != nil {
		return Artifacts{}, fmt.Errorf("build filter graph: %w", err)
	}

	artifacts.ThumbnailPath = thumbnailPath(outputPath, spec.Background)
	outcome, err := r.invoker.Invoke(ctx, spec, req, outputPath, artifacts.ThumbnailPath)
	if err != nil {
		return Artifacts{}, fmt.Errorf("render %s: %w", req.AudioPath, err)
	}
	artifacts.OutputPath = outcome.OutputPath
	artifacts.ThumbnailPath = outcome.ThumbnailPath

	r.logger.Info("conversion complete",
		logging.String("input", req.AudioPath),
		logging.String("output", artifacts.OutputPath),
		logging.String("thumbnail", artifacts.ThumbnailPath),
		logging.String("background", spec.Background.Kind.String()))
	return artifacts, nil
}

// resolveRegion computes the nominal placement. A single vertical spectrum
// keeps its long axis along the anchored edge, so width and height swap
// before resolution.
func (r *Renderer) resolveRegion(req viz.Request) (layout.Placement, error) {
	width, height := req.Width, req.Height
	if req.Kind == viz.KindSpectrum && req.Position.Vertical() {
		width, height = height, width
	}
	return layout.Resolve(req.Position, width, height, req.Margin, req.FrameWidth, req.FrameHeight)
}

// extractCover runs metadata extraction when the request needs it. Read
// failures downgrade to a warning so a damaged tag never blocks conversion.
func (r *Renderer) extractCover(ctx context.Context, req viz.Request) cover.Result {
	needed := req.CoverFromAudio || strings.TrimSpace(req.BackgroundImage) == ""
	if !needed {
		return cover.Result{}
	}
	art, err := r.extractor.Extract(ctx, req.AudioPath)
	if err != nil {
		if errors.Is(err, cover.ErrMetadataRead) {
			r.logger.Warn("cover art unreadable, continuing without it",
				logging.String("input", req.AudioPath),
				logging.Error(err))
			return cover.Result{}
		}
		r.logger.Warn("cover extraction failed, continuing without it",
			logging.String("input", req.AudioPath),
			logging.Error(err))
		return cover.Result{}
	}
	return art
}

// thumbnailPath derives the sibling thumbnail file. PNG sources keep PNG;
// everything else becomes JPEG, which upload targets prefer.
func thumbnailPath(outputPath string, background filtergraph.Background) string {
	ext := ".jpg"
	switch background.Kind {
	case filtergraph.BackgroundImage:
		if strings.EqualFold(filepath.Ext(background.ImagePath), ".png") {
			ext = ".png"
		}
	case filtergraph.BackgroundCover:
		if cover.ExtensionForMIME(background.CoverMIME) == "png" {
			ext = ".png"
		}
	}
	stem := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return stem + ext
}

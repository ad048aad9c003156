package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"vizcast/internal/cover"
	"vizcast/internal/filtergraph"
	"vizcast/internal/logging"
	"vizcast/internal/viz"
)

var (
	// ErrEngineNotFound marks a missing engine binary, a user-actionable
	// environment problem distinct from execution failures.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrEngine marks an engine invocation that started but failed. The
	// wrapped detail carries the engine's diagnostic text verbatim.
	ErrEngine = errors.New("engine execution failed")
)

var (
	commandContext = exec.CommandContext
	lookPath       = exec.LookPath
)

// Outcome reports the artifacts of a successful invocation.
type Outcome struct {
	OutputPath    string
	ThumbnailPath string
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithBinary overrides the default engine binary name.
func WithBinary(binary string) Option {
	return func(inv *Invoker) {
		if binary != "" {
			inv.binary = binary
		}
	}
}

// WithLogger attaches a logger for invocation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(inv *Invoker) {
		if logger != nil {
			inv.logger = logger
		}
	}
}

// WithScratchDir places per-invocation workspaces under dir instead of the
// system temp directory.
func WithScratchDir(dir string) Option {
	return func(inv *Invoker) {
		if dir != "" {
			inv.scratchDir = dir
		}
	}
}

// Invoker runs filter graphs through the engine, one blocking child process
// per call. Invokers hold no per-file state and are safe for concurrent use.
type Invoker struct {
	binary     string
	scratchDir string
	logger     *slog.Logger
}

// NewInvoker constructs an Invoker using defaults.
func NewInvoker(opts ...Option) *Invoker {
	inv := &Invoker{binary: "ffmpeg", scratchDir: os.TempDir(), logger: logging.NewNop()}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Invoke serializes spec, executes the engine, and classifies the outcome.
// No retries happen here; a failure is reported as-is.
func (inv *Invoker) Invoke(ctx context.Context, spec filtergraph.Spec, req viz.Request, outputPath, thumbnailPath string) (Outcome, error) {
	if _, err := lookPath(inv.binary); err != nil {
		return Outcome{}, fmt.Errorf("%w: %q is not on PATH", ErrEngineNotFound, inv.binary)
	}

	workspace, err := os.MkdirTemp(inv.scratchDir, "vizcast-"+uuid.NewString())
	if err != nil {
		return Outcome{}, fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	args, err := inv.arguments(spec, req, workspace, outputPath, thumbnailPath)
	if err != nil {
		return Outcome{}, err
	}

	inv.logger.Debug("invoking engine",
		logging.String("binary", inv.binary),
		logging.String("filter_graph", spec.Serialize()),
		logging.String("output", outputPath))

	var stderr bytes.Buffer
	cmd := commandContext(ctx, inv.binary, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		inv.discardPartial(outputPath, thumbnailPath)
		return Outcome{}, fmt.Errorf("%w: %v: %s", ErrEngine, err, strings.TrimSpace(stderr.String()))
	}

	// Exit code zero alone is not trusted; the declared artifacts must
	// exist and be non-empty.
	for _, artifact := range []string{outputPath, thumbnailPath} {
		if err := verifyArtifact(artifact); err != nil {
			inv.discardPartial(outputPath, thumbnailPath)
			return Outcome{}, fmt.Errorf("%w: %v", ErrEngine, err)
		}
	}
	return Outcome{OutputPath: outputPath, ThumbnailPath: thumbnailPath}, nil
}

// arguments assembles the full engine command line, materializing cover
// bytes into the scoped workspace when the background needs a file.
func (inv *Invoker) arguments(spec filtergraph.Spec, req viz.Request, workspace, outputPath, thumbnailPath string) ([]string, error) {
	args := []string{"-y", "-hide_banner"}

	// Still images loop so the background outlives its single frame;
	// -shortest on the output then bounds the video to the audio length.
	switch spec.Background.Kind {
	case filtergraph.BackgroundImage:
		args = append(args, "-loop", "1", "-i", spec.Background.ImagePath, "-i", req.AudioPath)
	case filtergraph.BackgroundCover:
		coverPath := filepath.Join(workspace, "cover."+cover.ExtensionForMIME(spec.Background.CoverMIME))
		if err := os.WriteFile(coverPath, spec.Background.CoverData, 0o600); err != nil {
			return nil, fmt.Errorf("materialize cover art: %w", err)
		}
		args = append(args, "-loop", "1", "-i", coverPath, "-i", req.AudioPath)
	case filtergraph.BackgroundSolid:
		args = append(args, "-i", req.AudioPath)
	default:
		return nil, fmt.Errorf("%w: unsupported background kind %v", filtergraph.ErrInvalidGraph, spec.Background.Kind)
	}

	args = append(args,
		"-filter_complex", spec.Serialize(),
		"-map", "["+spec.VideoOut+"]",
		"-map", spec.AudioInput,
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		outputPath,
		"-map", "["+spec.ThumbnailOut+"]",
		"-frames:v", "1",
	)
	if strings.EqualFold(filepath.Ext(thumbnailPath), ".jpg") {
		args = append(args, "-q:v", "2")
	}
	args = append(args, thumbnailPath)
	return args, nil
}

// discardPartial removes artifacts a failed invocation may have left behind
// so a failure never masquerades as output.
func (inv *Invoker) discardPartial(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			inv.logger.Warn("failed to remove partial artifact",
				logging.String("path", path),
				logging.Error(err))
		}
	}
}

func verifyArtifact(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("declared artifact %s missing: %v", path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("declared artifact %s has zero size", path)
	}
	return nil
}

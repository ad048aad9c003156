package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"vizcast/internal/batch"
	"vizcast/internal/cover"
	"vizcast/internal/deps"
	"vizcast/internal/engine"
	"vizcast/internal/history"
	"vizcast/internal/logging"
	"vizcast/internal/render"
	"vizcast/internal/viz"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		typeFlag      string
		colorFlag     string
		positionFlag  string
		widthFlag     int
		heightFlag    int
		marginFlag    int
		frameWidth    int
		frameHeight   int
		durationFlag  float64
		imageFlag     string
		coverFlag     bool
		coverOutFlag  string
		outputDirFlag string
		workersFlag   int
	)

	cmd := &cobra.Command{
		Use:   "convert <audio-file|glob>...",
		Short: "Render audio files into visualization videos",
		Long: `Render one or more audio files into mp4 videos with a waveform or
spectrum visualization drawn over a background.

The background is, in order of preference, the image given with --image,
artwork embedded in the audio file, or a solid black canvas. Pass --cover
to prefer embedded artwork over --image.

Arguments may be literal paths or shell-style globs:

  vizcast convert song.mp3
  vizcast convert --type spectrum --color magma album/*.flac
  vizcast convert --position "xy(40,40)" --image backdrop.png track.mp3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			template, err := cfg.Request()
			if err != nil {
				return fmt.Errorf("configured render defaults: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("type") {
				kind, err := viz.ParseKind(typeFlag)
				if err != nil {
					return err
				}
				template.Kind = kind
			}
			if flags.Changed("color") {
				template.ColorScheme = colorFlag
			}
			if flags.Changed("position") {
				position, err := viz.ParsePosition(positionFlag)
				if err != nil {
					return err
				}
				template.Position = position
			}
			if flags.Changed("width") {
				template.Width = widthFlag
			}
			if flags.Changed("height") {
				template.Height = heightFlag
			}
			if flags.Changed("margin") {
				template.Margin = marginFlag
			}
			if flags.Changed("frame-width") {
				template.FrameWidth = frameWidth
			}
			if flags.Changed("frame-height") {
				template.FrameHeight = frameHeight
			}
			if flags.Changed("duration") {
				template.DurationLimit = durationFlag
			}
			template.BackgroundImage = strings.TrimSpace(imageFlag)
			template.CoverFromAudio = coverFlag
			template.CoverSavePath = strings.TrimSpace(coverOutFlag)

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.DefaultRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
			if !deps.AllAvailable(statuses) {
				for _, status := range statuses {
					if !status.Available {
						logger.Error("missing dependency",
							logging.String("name", status.Name),
							logging.String("detail", status.Detail))
					}
				}
				return errors.New("required tools are missing; run `vizcast deps` for details")
			}

			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}

			outputDir := cfg.Output.Dir
			if flags.Changed("output-dir") {
				outputDir = outputDirFlag
			}
			workers := cfg.Engine.Workers
			if flags.Changed("workers") {
				workers = workersFlag
			}

			extractor := cover.NewExtractor(
				cover.WithFFmpeg(cfg.FFmpegBinary()),
				cover.WithFFprobe(cfg.FFprobeBinary()),
				cover.WithLogger(logger),
			)
			invoker := engine.NewInvoker(
				engine.WithBinary(cfg.FFmpegBinary()),
				engine.WithLogger(logger),
			)
			renderer := render.NewRenderer(extractor, invoker, logger)

			var recorder batch.Recorder
			if cfg.Output.HistoryEnabled {
				store, err := history.Open(cmd.Context(), cfg.Output.HistoryPath)
				if err != nil {
					logger.Warn("conversion history unavailable", logging.Error(err))
				} else {
					defer store.Close()
					recorder = store
				}
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orchestrator := batch.NewOrchestrator(renderer, recorder, logger)
			results, err := orchestrator.Run(runCtx, inputs, template, batch.Options{
				OutputDir: outputDir,
				Workers:   workers,
			})
			if err != nil {
				return err
			}

			printConvertSummary(cmd, results)

			completed, failed := batch.Summarize(results)
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, completed+failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Visualization type: wave, spectrum, or both")
	cmd.Flags().StringVarP(&colorFlag, "color", "c", "", "Spectrum color scheme (see `vizcast palettes`)")
	cmd.Flags().StringVarP(&positionFlag, "position", "p", "", "Placement: top, bottom, left, right, center, or xy(x,y)")
	cmd.Flags().IntVar(&widthFlag, "width", 0, "Visualization width in pixels")
	cmd.Flags().IntVar(&heightFlag, "height", 0, "Visualization height in pixels")
	cmd.Flags().IntVar(&marginFlag, "margin", 0, "Distance from the frame edge in pixels")
	cmd.Flags().IntVar(&frameWidth, "frame-width", 0, "Output frame width in pixels")
	cmd.Flags().IntVar(&frameHeight, "frame-height", 0, "Output frame height in pixels")
	cmd.Flags().Float64Var(&durationFlag, "duration", 0, "Cap the rendered duration in seconds")
	cmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Background image file")
	cmd.Flags().BoolVar(&coverFlag, "cover", false, "Prefer artwork embedded in the audio file over --image")
	cmd.Flags().StringVar(&coverOutFlag, "cover-out", "", "Save extracted artwork to this path (single input only)")
	cmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for rendered videos (default: next to sources)")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent conversions")

	return cmd
}

func printConvertSummary(cmd *cobra.Command, results []batch.Result) {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "completed"
		detail := result.Artifacts.OutputPath
		if result.Err != nil {
			status = "failed"
			detail = firstLine(result.Err.Error())
		}
		rows = append(rows, []string{filepath.Base(result.Input), status, detail})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Input", "Status", "Output"}, rows))
}

// expandInputs resolves shell-style globs. Literal arguments must name
// an existing file so a typo'd path fails the whole command up front
// instead of surfacing as a per-file render failure.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	inputs := make([]string, 0, len(args))
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		inputs = append(inputs, path)
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("input file not found: %s", arg)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("input %s is a directory", arg)
			}
			add(arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, match := range matches {
			add(match)
		}
	}
	return inputs, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

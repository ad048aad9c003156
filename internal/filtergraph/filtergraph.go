package filtergraph

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"vizcast/internal/cover"
	"vizcast/internal/layout"
	"vizcast/internal/palette"
	"vizcast/internal/viz"
)

// ErrInvalidGraph marks internally inconsistent builder input or output. It
// indicates a defect in the caller or the builder, not a user mistake.
var ErrInvalidGraph = errors.New("invalid filter graph")

// DefaultCanvasColor is the solid background used when no image source is
// available.
const DefaultCanvasColor = "black"

// BackgroundKind identifies the selected background source.
type BackgroundKind int

const (
	BackgroundSolid BackgroundKind = iota
	BackgroundImage
	BackgroundCover
)

func (k BackgroundKind) String() string {
	switch k {
	case BackgroundSolid:
		return "solid"
	case BackgroundImage:
		return "image"
	case BackgroundCover:
		return "cover"
	default:
		return fmt.Sprintf("background(%d)", int(k))
	}
}

// Background records which source backs the output frame. Cover bytes ride
// along so the invoker can materialize them into its scoped workspace.
type Background struct {
	Kind      BackgroundKind
	ImagePath string // BackgroundImage
	Color     string // BackgroundSolid
	CoverData []byte // BackgroundCover
	CoverMIME string // BackgroundCover
}

// Stage is one named node in the graph. Name doubles as the stage's output
// label; AuxOutputs carries extra labels for fan-out directives.
type Stage struct {
	Name       string
	AuxOutputs []string
	Inputs     []string
	Directive  string
}

// Spec is the ordered, acyclic graph a single conversion executes.
type Spec struct {
	Background   Background
	Stages       []Stage
	AudioInput   string // raw source label of the audio stream
	VideoOut     string // label the video output maps from
	ThumbnailOut string // label the thumbnail output maps from
}

var rawSourcePattern = regexp.MustCompile(`^\d+:[av]$`)

// Builder composes requests into graph specs.
type Builder struct{}

// NewBuilder constructs a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build assembles the graph for one request. The region is the resolved
// nominal placement; for KindBoth the builder partitions it into the
// waveform and spectrum sub-rectangles. Build never touches the filesystem.
func (b *Builder) Build(req viz.Request, art cover.Result, scheme palette.Scheme, region layout.Placement) (Spec, error) {
	if region.Area() <= 0 {
		return Spec{}, fmt.Errorf("%w: zero-area placement %dx%d", ErrInvalidGraph, region.Width, region.Height)
	}

	spec := Spec{Background: selectBackground(req, art)}
	if spec.Background.Kind == BackgroundSolid {
		spec.AudioInput = "0:a"
		spec.Stages = append(spec.Stages, Stage{
			Name:      "bg",
			Directive: fmt.Sprintf("color=c=%s:s=%dx%d:r=25", spec.Background.Color, req.FrameWidth, req.FrameHeight),
		})
	} else {
		spec.AudioInput = "1:a"
		spec.Stages = append(spec.Stages, Stage{
			Name:   "bg",
			Inputs: []string{"0:v"},
			Directive: fmt.Sprintf(
				"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
				req.FrameWidth, req.FrameHeight, req.FrameWidth, req.FrameHeight,
			),
		})
	}

	vertical := req.Position.Vertical()
	composed := ""
	switch req.Kind {
	case viz.KindWaveform:
		spec.Stages = append(spec.Stages,
			waveStage("wave", spec.AudioInput, region),
			overlayStage("comp", "bg", "wave", region),
		)
		composed = "comp"
	case viz.KindSpectrum:
		spec.Stages = append(spec.Stages,
			spectrumStage("spec", spec.AudioInput, scheme, region, vertical),
			overlayStage("comp", "bg", "spec", region),
		)
		composed = "comp"
	case viz.KindBoth:
		waveRect, specRect, err := layout.SplitRegion(region, vertical, req.Margin/2)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
		}
		spec.Stages = append(spec.Stages,
			waveStage("wave", spec.AudioInput, waveRect),
			spectrumStage("spec", spec.AudioInput, scheme, specRect, vertical),
			overlayStage("mix", "bg", "wave", waveRect),
			overlayStage("comp", "mix", "spec", specRect),
		)
		composed = "comp"
	default:
		return Spec{}, fmt.Errorf("%w: unsupported visualization kind %v", ErrInvalidGraph, req.Kind)
	}

	if req.DurationLimit > 0 {
		spec.Stages = append(spec.Stages, Stage{
			Name:      "trimmed",
			Inputs:    []string{composed},
			Directive: fmt.Sprintf("trim=duration=%.3f,setpts=PTS-STARTPTS", req.DurationLimit),
		})
		composed = "trimmed"
	}

	spec.Stages = append(spec.Stages,
		Stage{Name: "vout", AuxOutputs: []string{"thumbsrc"}, Inputs: []string{composed}, Directive: "split=2"},
		Stage{Name: "thumb", Inputs: []string{"thumbsrc"}, Directive: "select='eq(n,0)'"},
	)
	spec.VideoOut = "vout"
	spec.ThumbnailOut = "thumb"

	if err := spec.validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// selectBackground applies the precedence rule: explicit image, then
// extracted cover, then a solid canvas. CoverFromAudio forces the cover
// even when an image is configured.
func selectBackground(req viz.Request, art cover.Result) Background {
	if req.CoverFromAudio && art.Found {
		return Background{Kind: BackgroundCover, CoverData: art.Data, CoverMIME: art.MIMEType}
	}
	if strings.TrimSpace(req.BackgroundImage) != "" {
		return Background{Kind: BackgroundImage, ImagePath: req.BackgroundImage}
	}
	if art.Found {
		return Background{Kind: BackgroundCover, CoverData: art.Data, CoverMIME: art.MIMEType}
	}
	return Background{Kind: BackgroundSolid, Color: DefaultCanvasColor}
}

func waveStage(name, audio string, rect layout.Placement) Stage {
	return Stage{
		Name:   name,
		Inputs: []string{audio},
		Directive: fmt.Sprintf(
			"aformat=channel_layouts=mono,showwaves=s=%dx%d:mode=line:rate=25:colors=white",
			rect.Width, rect.Height,
		),
	}
}

func spectrumStage(name, audio string, scheme palette.Scheme, rect layout.Placement, vertical bool) Stage {
	orientation := 0
	if vertical {
		orientation = 1
	}
	return Stage{
		Name:   name,
		Inputs: []string{audio},
		Directive: fmt.Sprintf(
			"aformat=channel_layouts=mono,showspectrum=s=%dx%d:mode=combined:scale=cbrt:slide=scroll:fscale=lin:win_func=hamming:overlap=0:fps=auto:start=100:stop=10000:orientation=%d:color=%s",
			rect.Width, rect.Height, orientation, scheme.EngineName(),
		),
	}
}

func overlayStage(name, base, over string, rect layout.Placement) Stage {
	return Stage{
		Name:      name,
		Inputs:    []string{base, over},
		Directive: fmt.Sprintf("overlay=x=%d:y=%d", rect.X, rect.Y),
	}
}

// validate enforces the structural invariants: unique stage names, and every
// input referencing either a raw source or an earlier stage's output.
func (s Spec) validate() error {
	defined := make(map[string]bool, len(s.Stages)*2)
	for i, stage := range s.Stages {
		if strings.TrimSpace(stage.Name) == "" {
			return fmt.Errorf("%w: stage %d has no name", ErrInvalidGraph, i)
		}
		for _, input := range stage.Inputs {
			if rawSourcePattern.MatchString(input) {
				continue
			}
			if !defined[input] {
				return fmt.Errorf("%w: stage %q references undefined input %q", ErrInvalidGraph, stage.Name, input)
			}
		}
		for _, label := range append([]string{stage.Name}, stage.AuxOutputs...) {
			if defined[label] {
				return fmt.Errorf("%w: duplicate stage label %q", ErrInvalidGraph, label)
			}
			defined[label] = true
		}
	}
	if !defined[s.VideoOut] {
		return fmt.Errorf("%w: video output label %q undefined", ErrInvalidGraph, s.VideoOut)
	}
	if !defined[s.ThumbnailOut] {
		return fmt.Errorf("%w: thumbnail output label %q undefined", ErrInvalidGraph, s.ThumbnailOut)
	}
	return nil
}

// Serialize renders the graph in the engine's filter_complex syntax.
func (s Spec) Serialize() string {
	var sb strings.Builder
	for i, stage := range s.Stages {
		if i > 0 {
			sb.WriteString(";")
		}
		for _, input := range stage.Inputs {
			fmt.Fprintf(&sb, "[%s]", input)
		}
		sb.WriteString(stage.Directive)
		fmt.Fprintf(&sb, "[%s]", stage.Name)
		for _, aux := range stage.AuxOutputs {
			fmt.Fprintf(&sb, "[%s]", aux)
		}
	}
	return sb.String()
}

// StageNamed returns the stage carrying the given label, if present.
func (s Spec) StageNamed(name string) (Stage, bool) {
	for _, stage := range s.Stages {
		if stage.Name == name {
			return stage, true
		}
	}
	return Stage{}, false
}

package viz

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects which visualization(s) a request renders.
type Kind int

const (
	KindWaveform Kind = iota
	KindSpectrum
	KindBoth
)

// ParseKind maps the user-facing spelling to a Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "wave", "waveform":
		return KindWaveform, nil
	case "spectrum", "spec":
		return KindSpectrum, nil
	case "both":
		return KindBoth, nil
	default:
		return 0, fmt.Errorf("unknown visualization type %q: use 'wave', 'spectrum', or 'both'", value)
	}
}

func (k Kind) String() string {
	switch k {
	case KindWaveform:
		return "waveform"
	case KindSpectrum:
		return "spectrum"
	case KindBoth:
		return "both"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Anchor names the symbolic placement edges plus the explicit-coordinate case.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorCenter
	AnchorCustom
)

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	case AnchorCenter:
		return "center"
	case AnchorCustom:
		return "custom"
	default:
		return fmt.Sprintf("anchor(%d)", int(a))
	}
}

// Position is a placement anchor. X and Y are only meaningful when the
// anchor is AnchorCustom.
type Position struct {
	Anchor Anchor
	X      int
	Y      int
}

// Vertical reports whether the anchored edge runs vertically, which flips
// spectrum orientation and the Both split axis.
func (p Position) Vertical() bool {
	return p.Anchor == AnchorLeft || p.Anchor == AnchorRight
}

// ParsePosition accepts the symbolic names and the explicit 'xy(x,y)' form.
func ParsePosition(value string) (Position, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "top":
		return Position{Anchor: AnchorTop}, nil
	case "bottom":
		return Position{Anchor: AnchorBottom}, nil
	case "left":
		return Position{Anchor: AnchorLeft}, nil
	case "right":
		return Position{Anchor: AnchorRight}, nil
	case "center":
		return Position{Anchor: AnchorCenter}, nil
	}
	if strings.HasPrefix(trimmed, "xy(") && strings.HasSuffix(trimmed, ")") {
		body := trimmed[len("xy(") : len(trimmed)-1]
		parts := strings.Split(body, ",")
		if len(parts) != 2 {
			return Position{}, fmt.Errorf("invalid position %q: use 'xy(x,y)'", value)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || x < 0 {
			return Position{}, fmt.Errorf("invalid x coordinate in position %q", value)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || y < 0 {
			return Position{}, fmt.Errorf("invalid y coordinate in position %q", value)
		}
		return Position{Anchor: AnchorCustom, X: x, Y: y}, nil
	}
	return Position{}, fmt.Errorf("unknown position %q: use 'top', 'bottom', 'left', 'right', 'center', or 'xy(x,y)'", value)
}

// Request carries everything the per-file pipeline needs to render one
// audio file. The CLI layer populates it; the core treats it as immutable.
type Request struct {
	AudioPath       string
	BackgroundImage string // optional explicit image; wins over extracted cover
	CoverFromAudio  bool   // force embedded-art extraction even when an image is set
	CoverSavePath   string // optional: persist extracted cover here

	Kind        Kind
	ColorScheme string
	Position    Position

	Width  int
	Height int
	Margin int

	// DurationLimit bounds the output length in seconds. Zero means the
	// full source duration, left to the engine to infer.
	DurationLimit float64

	FrameWidth  int
	FrameHeight int
}

// Validate rejects requests no pipeline stage could render.
func (r Request) Validate() error {
	if strings.TrimSpace(r.AudioPath) == "" {
		return fmt.Errorf("audio path required")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("visualization dimensions must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.Margin < 0 {
		return fmt.Errorf("margin must be non-negative, got %d", r.Margin)
	}
	if r.DurationLimit < 0 {
		return fmt.Errorf("duration limit must not be negative, got %v", r.DurationLimit)
	}
	if r.FrameWidth <= 0 || r.FrameHeight <= 0 {
		return fmt.Errorf("frame dimensions must be positive, got %dx%d", r.FrameWidth, r.FrameHeight)
	}
	return nil
}

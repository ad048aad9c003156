// Package layout resolves symbolic visualization positions into absolute
// pixel rectangles inside the output frame.
//
// Resolution is pure computation checked eagerly, so an impossible placement
// fails before any engine process is spawned. The package also owns the
// sub-partition rule used when waveform and spectrum share one region.
package layout

import (
	"errors"
	"fmt"

	"vizcast/internal/viz"
)

// ErrOutOfBounds marks placements that do not fit the target frame.
var ErrOutOfBounds = errors.New("placement out of frame bounds")

// Placement is an absolute rectangle inside the output frame.
type Placement struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the first x coordinate past the rectangle.
func (p Placement) Right() int { return p.X + p.Width }

// Bottom returns the first y coordinate past the rectangle.
func (p Placement) Bottom() int { return p.Y + p.Height }

// Area returns the rectangle area in pixels.
func (p Placement) Area() int { return p.Width * p.Height }

// Within reports whether the rectangle is fully contained in a frame of the
// given dimensions.
func (p Placement) Within(frameWidth, frameHeight int) bool {
	return p.X >= 0 && p.Y >= 0 && p.Right() <= frameWidth && p.Bottom() <= frameHeight
}

// Overlaps reports whether two rectangles share any pixels.
func (p Placement) Overlaps(other Placement) bool {
	return p.X < other.Right() && other.X < p.Right() &&
		p.Y < other.Bottom() && other.Y < p.Bottom()
}

// Resolve converts a position plus dimensions and margin into an absolute
// rectangle. Symbolic anchors offset inward by margin; center ignores the
// margin; custom coordinates are used verbatim. The result is validated
// against the frame and fails with ErrOutOfBounds when it does not fit.
func Resolve(pos viz.Position, width, height, margin, frameWidth, frameHeight int) (Placement, error) {
	if width <= 0 || height <= 0 {
		return Placement{}, fmt.Errorf("%w: zero-area placement %dx%d", ErrOutOfBounds, width, height)
	}

	placement := Placement{Width: width, Height: height}
	switch pos.Anchor {
	case viz.AnchorTop:
		placement.X = (frameWidth - width) / 2
		placement.Y = margin
	case viz.AnchorBottom:
		placement.X = (frameWidth - width) / 2
		placement.Y = frameHeight - height - margin
	case viz.AnchorLeft:
		placement.X = margin
		placement.Y = (frameHeight - height) / 2
	case viz.AnchorRight:
		placement.X = frameWidth - width - margin
		placement.Y = (frameHeight - height) / 2
	case viz.AnchorCenter:
		placement.X = (frameWidth - width) / 2
		placement.Y = (frameHeight - height) / 2
	case viz.AnchorCustom:
		placement.X = pos.X
		placement.Y = pos.Y
	default:
		return Placement{}, fmt.Errorf("%w: unsupported anchor %v", ErrOutOfBounds, pos.Anchor)
	}

	if !placement.Within(frameWidth, frameHeight) {
		return Placement{}, fmt.Errorf(
			"%w: %s placement %dx%d+%d+%d exceeds %dx%d frame",
			ErrOutOfBounds, pos.Anchor, placement.Width, placement.Height, placement.X, placement.Y,
			frameWidth, frameHeight,
		)
	}
	return placement, nil
}

// Split partitions the nominal region into two non-overlapping
// sub-rectangles for stacked visualizations. The full region is resolved
// first, then divided equally along the perpendicular axis with a gap of
// margin/2: horizontally-anchored positions stack the halves vertically
// (first on top), left/right place them side by side (first nearer the
// anchored edge). Too-small regions fail with ErrOutOfBounds.
func Split(pos viz.Position, width, height, margin, frameWidth, frameHeight int) (Placement, Placement, error) {
	outer, err := Resolve(pos, width, height, margin, frameWidth, frameHeight)
	if err != nil {
		return Placement{}, Placement{}, err
	}
	return SplitRegion(outer, pos.Vertical(), margin/2)
}

// SplitRegion divides an already-resolved region into two sub-rectangles
// separated by gap pixels, vertically stacked unless vertical is set.
func SplitRegion(outer Placement, vertical bool, gap int) (Placement, Placement, error) {
	if gap < 0 {
		gap = 0
	}
	if vertical {
		firstWidth := (outer.Width - gap) / 2
		secondWidth := outer.Width - gap - firstWidth
		if firstWidth <= 0 || secondWidth <= 0 {
			return Placement{}, Placement{}, fmt.Errorf("%w: region %dx%d too narrow to split with gap %d", ErrOutOfBounds, outer.Width, outer.Height, gap)
		}
		first := Placement{X: outer.X, Y: outer.Y, Width: firstWidth, Height: outer.Height}
		second := Placement{X: outer.X + firstWidth + gap, Y: outer.Y, Width: secondWidth, Height: outer.Height}
		return first, second, nil
	}

	firstHeight := (outer.Height - gap) / 2
	secondHeight := outer.Height - gap - firstHeight
	if firstHeight <= 0 || secondHeight <= 0 {
		return Placement{}, Placement{}, fmt.Errorf("%w: region %dx%d too short to split with gap %d", ErrOutOfBounds, outer.Width, outer.Height, gap)
	}
	first := Placement{X: outer.X, Y: outer.Y, Width: outer.Width, Height: firstHeight}
	second := Placement{X: outer.X, Y: outer.Y + firstHeight + gap, Width: outer.Width, Height: secondHeight}
	return first, second, nil
}

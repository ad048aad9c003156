// Package palette holds the fixed catalog of visualization color schemes.
//
// Scheme names mirror the color tables the rendering engine understands for
// its spectrum filter; each catalog entry also records an ordered color ramp
// so callers can reason about (and test) the intensity mapping without
// consulting the engine.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScheme marks lookups for names outside the catalog.
var ErrUnknownScheme = errors.New("unknown color scheme")

// Stop is a single point on a color ramp. Intensity ascends from 0 (silence)
// to 1 (peak) across a scheme's stops.
type Stop struct {
	Color     string // #rrggbb
	Intensity float64
}

// Scheme is a named, ordered color ramp.
type Scheme struct {
	Name  string
	Stops []Stop
}

// EngineName returns the color table identifier the engine expects.
func (s Scheme) EngineName() string {
	return s.Name
}

func ramp(name string, colors ...string) Scheme {
	stops := make([]Stop, len(colors))
	span := float64(len(colors) - 1)
	for i, color := range colors {
		stops[i] = Stop{Color: color, Intensity: float64(i) / span}
	}
	return Scheme{Name: name, Stops: stops}
}

// catalog is read-only process-wide state, populated once at init.
var catalog = func() map[string]Scheme {
	schemes := []Scheme{
		ramp("rainbow", "#000020", "#0000ff", "#00ffff", "#00ff00", "#ffff00", "#ff0000"),
		ramp("moreland", "#3b4cc0", "#b2ccfb", "#dddddd", "#f6b69b", "#b40426"),
		ramp("nebulae", "#10021a", "#3c1d5e", "#91518c", "#d3a6a1", "#fdf5dc"),
		ramp("fire", "#000000", "#67001f", "#ce1a1a", "#fa8e24", "#ffff9e"),
		ramp("fiery", "#000000", "#7f1010", "#e8491f", "#fbc33a", "#ffffff"),
		ramp("fruit", "#0e0528", "#6f1d6d", "#c73e4c", "#f39237", "#f9e855"),
		ramp("cool", "#000000", "#0e4c63", "#23a5a3", "#8be0d2", "#ffffff"),
		ramp("magma", "#000004", "#51127c", "#b63679", "#fb8861", "#fcfdbf"),
		ramp("green", "#000000", "#003f00", "#1f8a1f", "#7fd27f", "#e5ffe5"),
		ramp("viridis", "#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"),
		ramp("plasma", "#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"),
		ramp("cividis", "#00224e", "#35456c", "#7c7b78", "#bcae6d", "#fee838"),
		ramp("terrain", "#333399", "#00b2b2", "#99eb85", "#ccbe7d", "#ffffff"),
	}
	byName := make(map[string]Scheme, len(schemes))
	for _, scheme := range schemes {
		byName[scheme.Name] = scheme
	}
	return byName
}()

// Resolve returns the catalog scheme for name. The lookup is
// case-insensitive; unknown names fail with ErrUnknownScheme.
func Resolve(name string) (Scheme, error) {
	scheme, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Scheme{}, fmt.Errorf("%w: %q (choose one of: %s)", ErrUnknownScheme, name, strings.Join(Names(), ", "))
	}
	return scheme, nil
}

// Names lists the catalog scheme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

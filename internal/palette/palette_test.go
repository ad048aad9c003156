package palette

import (
	"errors"
	"testing"
)

func TestCatalogCoversAllSchemes(t *testing.T) {
	names := Names()
	if len(names) < 13 {
		t.Fatalf("expected at least 13 schemes, got %d", len(names))
	}
	for _, name := range names {
		scheme, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if len(scheme.Stops) < 2 {
			t.Fatalf("scheme %q has %d stops, want at least 2", name, len(scheme.Stops))
		}
		if scheme.EngineName() != name {
			t.Fatalf("scheme %q reports engine name %q", name, scheme.EngineName())
		}
	}
}

func TestStopsAscendMonotonically(t *testing.T) {
	for _, name := range Names() {
		scheme, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if scheme.Stops[0].Intensity != 0 {
			t.Fatalf("scheme %q first stop intensity = %v, want 0", name, scheme.Stops[0].Intensity)
		}
		last := scheme.Stops[len(scheme.Stops)-1]
		if last.Intensity != 1 {
			t.Fatalf("scheme %q last stop intensity = %v, want 1", name, last.Intensity)
		}
		for i := 1; i < len(scheme.Stops); i++ {
			if scheme.Stops[i].Intensity <= scheme.Stops[i-1].Intensity {
				t.Fatalf("scheme %q stops not strictly ascending at index %d", name, i)
			}
		}
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	scheme, err := Resolve("  VIRIDIS ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if scheme.Name != "viridis" {
		t.Fatalf("unexpected scheme %q", scheme.Name)
	}
}

func TestResolveUnknownScheme(t *testing.T) {
	_, err := Resolve("doesnotexist")
	if !errors.Is(err, ErrUnknownScheme) {
		t.Fatalf("expected ErrUnknownScheme, got %v", err)
	}
}

package batch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"vizcast/internal/history"
	"vizcast/internal/render"
	"vizcast/internal/viz"
)

type stubRenderer struct {
	mu      sync.Mutex
	calls   []string
	failFor map[string]error
	covers  []string
}

func (s *stubRenderer) Render(ctx context.Context, req viz.Request, outputPath string) (render.Artifacts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req.AudioPath)
	if req.CoverSavePath != "" {
		s.covers = append(s.covers, req.CoverSavePath)
	}
	if err := s.failFor[req.AudioPath]; err != nil {
		return render.Artifacts{}, err
	}
	return render.Artifacts{OutputPath: outputPath, ThumbnailPath: outputPath + ".jpg"}, nil
}

type stubRecorder struct {
	mu      sync.Mutex
	entries []history.Entry
}

func (s *stubRecorder) Record(ctx context.Context, entry history.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func template() viz.Request {
	return viz.Request{
		Kind:        viz.KindWaveform,
		ColorScheme: "viridis",
		Position:    viz.Position{Anchor: viz.AnchorBottom},
		Width:       1280,
		Height:      180,
		Margin:      50,
		FrameWidth:  1280,
		FrameHeight: 720,
	}
}

func TestRunConvertsAllInputs(t *testing.T) {
	renderer := &stubRenderer{}
	recorder := &stubRecorder{}
	orch := NewOrchestrator(renderer, recorder, nil)

	inputs := []string{"/music/a.mp3", "/music/b.mp3", "/music/c.mp3"}
	results, err := orch.Run(context.Background(), inputs, template(), Options{Workers: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Results preserve input order regardless of worker scheduling.
	for i, result := range results {
		if result.Input != inputs[i] {
			t.Fatalf("result %d = %q, want %q", i, result.Input, inputs[i])
		}
		if result.Err != nil {
			t.Fatalf("unexpected failure for %q: %v", result.Input, result.Err)
		}
	}
	completed, failed := Summarize(results)
	if completed != 3 || failed != 0 {
		t.Fatalf("summary = (%d, %d), want (3, 0)", completed, failed)
	}
	if len(recorder.entries) != 3 {
		t.Fatalf("expected 3 ledger entries, got %d", len(recorder.entries))
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	renderer := &stubRenderer{failFor: map[string]error{"/music/bad.mp3": errors.New("engine execution failed")}}
	recorder := &stubRecorder{}
	orch := NewOrchestrator(renderer, recorder, nil)

	inputs := []string{"/music/good.mp3", "/music/bad.mp3", "/music/fine.mp3"}
	results, err := orch.Run(context.Background(), inputs, template(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	completed, failed := Summarize(results)
	if completed != 2 || failed != 1 {
		t.Fatalf("summary = (%d, %d), want (2, 1)", completed, failed)
	}
	if results[1].Err == nil {
		t.Fatal("failure should surface in its own result")
	}

	var failedEntries int
	for _, entry := range recorder.entries {
		if entry.Status == history.StatusFailed {
			failedEntries++
			if entry.Detail == "" {
				t.Fatal("failed entry should carry diagnostic detail")
			}
			if entry.Output != "" {
				t.Fatal("failed entry must not claim artifacts")
			}
		}
	}
	if failedEntries != 1 {
		t.Fatalf("expected 1 failed ledger entry, got %d", failedEntries)
	}
}

func TestRunDropsCoverSaveInBatchMode(t *testing.T) {
	renderer := &stubRenderer{}
	orch := NewOrchestrator(renderer, nil, nil)

	shared := template()
	shared.CoverSavePath = "/music/cover.jpg"
	if _, err := orch.Run(context.Background(), []string{"/music/a.mp3", "/music/b.mp3"}, shared, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(renderer.covers) != 0 {
		t.Fatalf("cover save should be dropped for batches, got %v", renderer.covers)
	}

	// A single input keeps the convenience.
	renderer = &stubRenderer{}
	orch = NewOrchestrator(renderer, nil, nil)
	if _, err := orch.Run(context.Background(), []string{"/music/a.mp3"}, shared, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(renderer.covers) != 1 {
		t.Fatalf("single input should keep cover save, got %v", renderer.covers)
	}
}

func TestRunRejectsEmptyInputs(t *testing.T) {
	orch := NewOrchestrator(&stubRenderer{}, nil, nil)
	if _, err := orch.Run(context.Background(), nil, template(), Options{}); err == nil {
		t.Fatal("expected error for empty inputs")
	}
}

func TestDeriveOutputPath(t *testing.T) {
	cases := []struct {
		input, outDir, want string
	}{
		{"/music/song.mp3", "", "/music/song.mp4"},
		{"song.flac", "", "song.mp4"},
		{"/music/song.mp3", "/out", filepath.Join("/out", "song.mp4")},
	}
	for _, tc := range cases {
		if got := DeriveOutputPath(tc.input, tc.outDir); got != tc.want {
			t.Fatalf("DeriveOutputPath(%q, %q) = %q, want %q", tc.input, tc.outDir, got, tc.want)
		}
	}
}

package cover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtensionForMIME(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":   "jpg",
		"image/jpg":    "jpg",
		"IMAGE/PNG":    "png",
		"image/webp":   "webp",
		"unknown/type": "bin",
	}
	for mime, want := range cases {
		if got := ExtensionForMIME(mime); got != want {
			t.Fatalf("ExtensionForMIME(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestMimeForCodec(t *testing.T) {
	cases := []struct {
		codec    string
		attached bool
		mime     string
		copyOK   bool
	}{
		{"png", true, "image/png", true},
		{"mjpeg", true, "image/jpeg", true},
		{"webp", true, "image/webp", true},
		{"png", false, "image/png", false},
		{"h264", true, "image/jpeg", false},
	}
	for _, tc := range cases {
		mime, copyOK := mimeForCodec(tc.codec, tc.attached)
		if mime != tc.mime || copyOK != tc.copyOK {
			t.Fatalf("mimeForCodec(%q, %v) = (%q, %v), want (%q, %v)", tc.codec, tc.attached, mime, copyOK, tc.mime, tc.copyOK)
		}
	}
}

func TestResultSave(t *testing.T) {
	dir := t.TempDir()
	result := Result{Found: true, Data: []byte("fake image"), MIMEType: "image/jpeg"}

	target := filepath.Join(dir, "nested", "cover.jpg")
	if err := result.Save(target); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "fake image" {
		t.Fatalf("unexpected saved content %q", data)
	}
}

func TestResultSaveRejectsNotFound(t *testing.T) {
	if err := (Result{}).Save(filepath.Join(t.TempDir(), "cover.jpg")); err == nil {
		t.Fatal("expected error saving a not-found result")
	}
}

func TestExtractNativeInconclusiveOnJunk(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "not_audio.mp3")
	if err := os.WriteFile(junk, []byte("definitely not an mp3"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	extractor := NewExtractor()
	if _, conclusive := extractor.extractNative(junk); conclusive {
		t.Fatal("junk input should not be conclusive natively")
	}
}

func TestExtractClassifiesUnreadableInput(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "not_audio.mp3")
	if err := os.WriteFile(junk, []byte("definitely not an mp3"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	// A probe binary that cannot exist forces the fallback to fail, which
	// must surface as a metadata read error rather than a silent miss.
	extractor := NewExtractor(WithFFprobe(filepath.Join(dir, "no-such-ffprobe")))
	_, err := extractor.Extract(context.Background(), junk)
	if !errors.Is(err, ErrMetadataRead) {
		t.Fatalf("expected ErrMetadataRead, got %v", err)
	}
}

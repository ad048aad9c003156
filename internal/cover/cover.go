package cover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/simonhull/audiometa"

	"vizcast/internal/logging"
	"vizcast/internal/media/ffprobe"
)

// ErrMetadataRead marks containers that could not be read at all. Callers
// may treat it as "no cover" with a warning.
var ErrMetadataRead = errors.New("metadata read error")

var commandContext = exec.CommandContext

// Result is the outcome of a cover extraction attempt. Found is false when
// the container is readable but carries no picture.
type Result struct {
	Found    bool
	Data     []byte
	MIMEType string
}

// Save writes the extracted bytes to path. Calling Save on a not-found
// result is an error.
func (r Result) Save(path string) error {
	if !r.Found {
		return errors.New("no cover art to save")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure cover directory: %w", err)
	}
	if err := os.WriteFile(path, r.Data, 0o644); err != nil {
		return fmt.Errorf("write cover: %w", err)
	}
	return nil
}

// ExtensionForMIME maps an image MIME type to a file extension.
func ExtensionForMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "bin"
	}
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFFmpeg overrides the ffmpeg binary used for fallback extraction.
func WithFFmpeg(binary string) Option {
	return func(e *Extractor) {
		if binary != "" {
			e.ffmpeg = binary
		}
	}
}

// WithFFprobe overrides the ffprobe binary used for stream probing.
func WithFFprobe(binary string) Option {
	return func(e *Extractor) {
		if binary != "" {
			e.ffprobe = binary
		}
	}
}

// WithLogger attaches a logger for extraction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Extractor reads embedded artwork from audio files.
type Extractor struct {
	ffmpeg  string
	ffprobe string
	logger  *slog.Logger
}

// NewExtractor constructs an Extractor using defaults.
func NewExtractor(opts ...Option) *Extractor {
	extractor := &Extractor{ffmpeg: "ffmpeg", ffprobe: "ffprobe", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(extractor)
	}
	return extractor
}

// Extract searches audioPath for embedded cover art. A readable container
// without art yields Found=false and a nil error; corrupt or unreadable
// input fails with ErrMetadataRead.
func (e *Extractor) Extract(ctx context.Context, audioPath string) (Result, error) {
	if result, conclusive := e.extractNative(audioPath); conclusive {
		return result, nil
	}
	return e.extractViaEngine(ctx, audioPath)
}

// extractNative parses container metadata in-process. The second return is
// false when the format is unsupported or parsing failed, in which case the
// engine fallback decides the final outcome.
func (e *Extractor) extractNative(audioPath string) (Result, bool) {
	file, err := audiometa.Open(audioPath)
	if err != nil {
		e.logger.Debug("native metadata parse failed",
			logging.String("audio", audioPath),
			logging.Error(err))
		return Result{}, false
	}
	defer file.Close()

	artworks, err := file.ExtractArtwork()
	if err != nil {
		e.logger.Debug("native artwork extraction failed",
			logging.String("audio", audioPath),
			logging.Error(err))
		return Result{}, false
	}
	if len(artworks) == 0 {
		return Result{}, true
	}

	chosen := artworks[0]
	for _, artwork := range artworks {
		if artwork.Type == audiometa.ArtworkFrontCover {
			chosen = artwork
			break
		}
	}
	e.logger.Debug("cover art found in container metadata",
		logging.String("audio", audioPath),
		logging.String("mime", chosen.MIMEType),
		logging.Int("bytes", len(chosen.Data)))
	return Result{Found: true, Data: chosen.Data, MIMEType: chosen.MIMEType}, true
}

// extractViaEngine probes for an attached picture and pulls it out with
// ffmpeg. A plain video stream is accepted as a stand-in when the source is
// a video file, matching the behaviour users expect from feeding one in.
func (e *Extractor) extractViaEngine(ctx context.Context, audioPath string) (Result, error) {
	probe, err := ffprobe.Inspect(ctx, e.ffprobe, audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrMetadataRead, audioPath, err)
	}

	stream, attached := probe.AttachedPicture()
	if !attached {
		var ok bool
		stream, ok = probe.FirstVideoStream()
		if !ok {
			return Result{}, nil
		}
	}

	mime, copyCodec := mimeForCodec(stream.CodecName, attached)
	scratch := filepath.Join(os.TempDir(), fmt.Sprintf("vizcast-cover-%s.%s", uuid.NewString(), ExtensionForMIME(mime)))
	defer os.Remove(scratch)

	args := []string{"-y", "-v", "error", "-i", audioPath, "-an", "-map", "0:v:0", "-frames:v", "1"}
	if copyCodec {
		args = append(args, "-c:v", "copy")
	}
	args = append(args, scratch)

	cmd := commandContext(ctx, e.ffmpeg, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return Result{}, fmt.Errorf("%w: extract picture from %s: %v: %s", ErrMetadataRead, audioPath, err, strings.TrimSpace(string(output)))
	}

	data, err := os.ReadFile(scratch)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read extracted picture: %v", ErrMetadataRead, err)
	}
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: extracted picture from %s is empty", ErrMetadataRead, audioPath)
	}
	e.logger.Debug("cover art extracted via engine",
		logging.String("audio", audioPath),
		logging.String("codec", stream.CodecName),
		logging.Bool("attached_pic", attached))
	return Result{Found: true, Data: data, MIMEType: mime}, nil
}

// mimeForCodec decides the output image type for an extracted stream and
// whether the codec can be copied as-is. Video frames are transcoded to
// JPEG.
func mimeForCodec(codec string, attached bool) (string, bool) {
	switch strings.ToLower(codec) {
	case "png":
		return "image/png", attached
	case "webp":
		return "image/webp", attached
	case "mjpeg", "jpeg":
		return "image/jpeg", attached
	default:
		return "image/jpeg", false
	}
}

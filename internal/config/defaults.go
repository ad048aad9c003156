package config

const (
	defaultRenderType    = "wave"
	defaultRenderColor   = "viridis"
	defaultRenderPos     = "bottom"
	defaultRenderWidth   = 1280
	defaultRenderHeight  = 180
	defaultRenderMargin  = 50
	defaultFrameWidth    = 1280
	defaultFrameHeight   = 720
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultEngineWorkers = 2
	defaultHistoryPath   = "~/.local/share/vizcast/history.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Render: Render{
			Type:        defaultRenderType,
			Color:       defaultRenderColor,
			Position:    defaultRenderPos,
			Width:       defaultRenderWidth,
			Height:      defaultRenderHeight,
			Margin:      defaultRenderMargin,
			FrameWidth:  defaultFrameWidth,
			FrameHeight: defaultFrameHeight,
		},
		Engine: Engine{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
			Workers: defaultEngineWorkers,
		},
		Output: Output{
			HistoryEnabled: true,
			HistoryPath:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

import (
	"path/filepath"

	"tubeclip/internal/captions"
)

const (
	defaultConfigPath        = "~/.config/tubeclip/config.toml"
	defaultDatasetRoot       = "~/datasets"
	defaultStateDir          = "~/.local/share/tubeclip"
	defaultLogDir            = "~/.local/share/tubeclip/logs"
	defaultExportDir         = "~/datasets/highlights"
	defaultYtdlpPath         = "yt-dlp"
	defaultCaptionLanguage   = "en"
	defaultHTTPTimeout       = 60
	defaultFFmpegPath        = "ffmpeg"
	defaultFFprobePath       = "ffprobe"
	defaultVideoCodec        = "libx264"
	defaultAudioCodec        = "aac"
	defaultWindowSeconds     = 30
	defaultClipExtension     = "mp4"
	defaultWorkers           = 1
	defaultSampleRate        = 44100
	defaultChannels          = 2
	defaultSegmentSeconds    = 20
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultLogRetentionDays  = 60
	envDatasetRoot           = "TUBECLIP_DATASET_ROOT"
	envYtdlpPath             = "TUBECLIP_YTDLP_PATH"
	envLogLevel              = "TUBECLIP_LOG_LEVEL"
	defaultPodcastCategory   = "podcasts/JRE"
	defaultInterviewCategory = "interviews"
	defaultSpeechCategory    = "custom_tts"
	defaultMusicCategory     = "music"
)

// Default returns a Config populated with repository defaults. Dataset root,
// yt-dlp path and log level are left empty so environment fallbacks can
// apply during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		YouTube: YouTube{
			CaptionLanguage:    defaultCaptionLanguage,
			HTTPTimeoutSeconds: defaultHTTPTimeout,
		},
		FFmpeg: FFmpeg{
			FFmpegPath:  defaultFFmpegPath,
			FFprobePath: defaultFFprobePath,
			VideoCodec:  defaultVideoCodec,
			AudioCodec:  defaultAudioCodec,
		},
		Highlights: Highlights{
			Marker:        captions.LaughterMarker,
			WindowSeconds: defaultWindowSeconds,
			ClipExtension: defaultClipExtension,
			Workers:       defaultWorkers,
		},
		Audio: Audio{
			SampleRate:     defaultSampleRate,
			Channels:       defaultChannels,
			SegmentSeconds: defaultSegmentSeconds,
		},
		Categories: Categories{
			Podcast:   filepath.FromSlash(defaultPodcastCategory),
			Interview: defaultInterviewCategory,
			Speech:    defaultSpeechCategory,
			Music:     defaultMusicCategory,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

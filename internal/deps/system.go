package deps

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"tubeclip/internal/config"
)

// DirStatus reports whether a configured directory is usable.
type DirStatus struct {
	Name   string
	Path   string
	Passed bool
	Detail string
}

// Requirements lists the binaries the configuration points at.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YouTube.YtdlpPath,
			Description: "Required for caption download",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpeg.FFmpegPath,
			Description: "Required for WAV conversion, segmenting and clip rendering",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFmpeg.FFprobePath,
			Description: "Required for duration probing",
		},
	}
}

// CheckWritable verifies that dir exists, is a directory, and is readable and
// writable by the current user.
func CheckWritable(name, dir string) DirStatus {
	status := DirStatus{Name: name, Path: dir}
	if strings.TrimSpace(dir) == "" {
		status.Detail = "not configured"
		return status
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = "does not exist"
			return status
		}
		status.Detail = fmt.Sprintf("stat: %v", err)
		return status
	}
	if !info.IsDir() {
		status.Detail = "is not a directory"
		return status
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions: %v", err)
		return status
	}
	status.Passed = true
	status.Detail = "read/write ok"
	return status
}

// CheckDirectories runs CheckWritable over the configured directories.
func CheckDirectories(cfg *config.Config) []DirStatus {
	return []DirStatus{
		CheckWritable("Dataset root", cfg.Paths.DatasetRoot),
		CheckWritable("State", cfg.Paths.StateDir),
		CheckWritable("Logs", cfg.Paths.LogDir),
		CheckWritable("Export", cfg.Paths.ExportDir),
	}
}

package deps

import (
	"os"
	"path/filepath"
	"testing"

	"tubeclip/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
		{Name: "Optional", Command: "also-not-present", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}

	missing := MissingRequired(results)
	if len(missing) != 2 || missing[0] != "Missing" || missing[1] != "Blank" {
		t.Fatalf("unexpected missing list: %v", missing)
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.YouTube.YtdlpPath = "/opt/yt-dlp"
	cfg.FFmpeg.FFmpegPath = "/opt/ffmpeg"
	cfg.FFmpeg.FFprobePath = "/opt/ffprobe"

	reqs := Requirements(&cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	want := []string{"/opt/yt-dlp", "/opt/ffmpeg", "/opt/ffprobe"}
	for i, req := range reqs {
		if req.Command != want[i] {
			t.Fatalf("requirement %d command = %q, want %q", i, req.Command, want[i])
		}
	}
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()
	if status := CheckWritable("tmp", dir); !status.Passed {
		t.Fatalf("expected writable dir to pass, got %#v", status)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if status := CheckWritable("file", file); status.Passed || status.Detail != "is not a directory" {
		t.Fatalf("expected file to fail, got %#v", status)
	}
	if status := CheckWritable("missing", filepath.Join(dir, "nope")); status.Passed || status.Detail != "does not exist" {
		t.Fatalf("expected missing dir to fail, got %#v", status)
	}
	if status := CheckWritable("blank", ""); status.Passed {
		t.Fatalf("expected blank path to fail, got %#v", status)
	}
}

func TestCheckWritableReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if status := CheckWritable("ro", dir); status.Passed {
		t.Fatalf("expected read-only dir to fail, got %#v", status)
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tubeclip/internal/acquire"
	"tubeclip/internal/captions"
	"tubeclip/internal/clips"
	"tubeclip/internal/highlights"
	"tubeclip/internal/services"
)

func newLaughterCommand(ctx *commandContext) *cobra.Command {
	var opts acquire.LaughterOptions
	var window float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "laughter <url>",
		Short: "Cut a clip around every laughter cue in a video",
		Long: "Download the captions of a YouTube video, find every cue whose text is\n" +
			"the laughter marker, and render a clip of --window seconds on each side.\n" +
			"The video is downloaded first unless --video points at a local copy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Window = windowFlag(cmd, window)
			return ctx.withSession(func(session *acquire.Session) error {
				result, err := session.Laughter(cmd.Context(), args[0], opts)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				printHighlights(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.VideoPath, "video", "", "Local video file to cut (skips the download)")
	cmd.Flags().StringVar(&opts.AudioPath, "audio", "", "Separate audio track muxed into every clip")
	cmd.Flags().StringVar(&opts.ExportDir, "export", "", "Clip directory (default <paths.export_dir>/<video id>)")
	cmd.Flags().Float64Var(&window, "window", 0, "Seconds kept on each side of a cue (default highlights.window_seconds)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	var laughterOnly, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "captions <url|file.srt>",
		Short: "Print the caption entries of a video or SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := strings.TrimSpace(args[0])
			var (
				entries []captions.Entry
				err     error
			)
			if isLocalFile(source) {
				entries, err = captions.ParseFile(source)
				if err != nil {
					return services.Wrap(services.ErrValidation, "captions", "parse file", source, err)
				}
			} else {
				err = ctx.withSession(func(session *acquire.Session) error {
					entries, err = session.Captions(cmd.Context(), source)
					return err
				})
				if err != nil {
					return err
				}
			}
			if laughterOnly {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				entries = captions.FindMarker(entries, cfg.Highlights.Marker)
			}
			if entries == nil {
				entries = []captions.Entry{}
			}
			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			printCaptions(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&laughterOnly, "laughter", false, "Only show entries matching the laughter marker")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newClipsCommand(ctx *commandContext) *cobra.Command {
	var (
		duration   float64
		window     float64
		exportDir  string
		videoPath  string
		audioPath  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "clips <file.srt>",
		Short: "Plan (or render) laughter clips from a local caption file",
		Long: "Compute the clip windows for every laughter cue in a local SRT file.\n" +
			"The source duration comes from --duration or from probing --video.\n" +
			"With --video the clips are also rendered.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(videoPath) == "" && duration <= 0 {
				return services.Wrap(services.ErrValidation, "clips", "plan", "pass --duration or --video", nil)
			}
			if strings.TrimSpace(exportDir) == "" {
				exportDir = cfg.Paths.ExportDir
			}

			var writer highlights.ClipWriter
			if strings.TrimSpace(videoPath) != "" {
				writer = clips.NewWriter(clips.WriterOptions{
					FFmpeg:     cfg.FFmpeg.FFmpegPath,
					VideoCodec: cfg.FFmpeg.VideoCodec,
					AudioCodec: cfg.FFmpeg.AudioCodec,
					Workers:    cfg.Highlights.Workers,
				}, logger)
			}
			pipeline := newPipeline(cfg, nil, writer, logger)
			req := highlights.Request{
				CaptionFile:     args[0],
				VideoPath:       videoPath,
				AudioPath:       audioPath,
				ExportDir:       exportDir,
				Window:          windowFlag(cmd, window),
				DurationSeconds: duration,
			}

			var result highlights.Result
			if writer != nil {
				if err := os.MkdirAll(exportDir, 0o755); err != nil {
					return fmt.Errorf("create export directory: %w", err)
				}
				result, err = pipeline.Run(cmd.Context(), req)
			} else {
				result, err = pipeline.Plan(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printHighlights(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "Source duration in seconds")
	cmd.Flags().Float64Var(&window, "window", 0, "Seconds kept on each side of a cue (default highlights.window_seconds)")
	cmd.Flags().StringVar(&exportDir, "export", "", "Clip directory (default paths.export_dir)")
	cmd.Flags().StringVar(&videoPath, "video", "", "Video file to probe and cut")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Separate audio track muxed into every clip")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// windowFlag returns the --window value only when the flag was given, so an
// explicit 0 is kept apart from the configured default.
func windowFlag(cmd *cobra.Command, value float64) *float64 {
	if !cmd.Flags().Changed("window") {
		return nil
	}
	return &value
}

func isLocalFile(source string) bool {
	if strings.Contains(source, "://") {
		return false
	}
	info, err := os.Stat(source)
	return err == nil && !info.IsDir()
}

func printCaptions(out io.Writer, entries []captions.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No caption entries")
		return
	}
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), entry.Start, entry.End, entry.Text})
	}
	writeTable(out, []string{"#", "Start", "End", "Text"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft})
}

func printHighlights(out io.Writer, result highlights.Result) {
	if len(result.Cues) == 0 {
		fmt.Fprintln(out, "No laughter cues found")
		return
	}
	fmt.Fprintf(out, "%d laughter cue(s), source %.1fs\n", len(result.Cues), result.DurationSeconds)
	rows := make([][]string, 0, len(result.Clips))
	for _, clip := range result.Clips {
		note := ""
		if clip.Empty() {
			note = "empty"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", clip.Index),
			fmt.Sprintf("%.3f", clip.StartSeconds),
			fmt.Sprintf("%.3f", clip.EndSeconds),
			clip.OutputPath,
			note,
		})
	}
	writeTable(out, []string{"#", "Start", "End", "Output", "Note"}, rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft})
	if len(result.Written) > 0 {
		fmt.Fprintf(out, "Wrote %d clip(s)\n", len(result.Written))
	}
}

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tubeclip/internal/acquire"
	"tubeclip/internal/mediapath"
	"tubeclip/internal/services"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var (
		categoryFlag string
		episode      int
		subject      string
		name         string
		speaker      string
		song         string
		audioFlag    bool
		videoFlag    bool
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download audio and/or video into the dataset tree",
		Long: "Download a YouTube video into the directory for its category.\n\n" +
			"Categories: podcast (--episode), interview (--subject --name),\n" +
			"speech (--speaker) and music (--song). Audio is stored as WAV.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := buildCategory(categoryFlag, episode, subject, name, speaker, song)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("audio") && !cmd.Flags().Changed("video") {
				audioFlag = true
			}
			return ctx.withSession(func(session *acquire.Session) error {
				result, err := session.Media(cmd.Context(), args[0], category, audioFlag, videoFlag)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				printMediaResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "podcast", "Dataset category (podcast, interview, speech, music)")
	cmd.Flags().IntVar(&episode, "episode", 0, "Podcast episode number")
	cmd.Flags().StringVar(&subject, "subject", "", "Interview subject")
	cmd.Flags().StringVar(&name, "name", "", "Interviewee name")
	cmd.Flags().StringVar(&speaker, "speaker", "", "Speaker name")
	cmd.Flags().StringVar(&song, "song", "", "Song title")
	cmd.Flags().BoolVar(&audioFlag, "audio", false, "Download audio (default when neither --audio nor --video is given)")
	cmd.Flags().BoolVar(&videoFlag, "video", false, "Download video")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newMusicCommand(ctx *commandContext) *cobra.Command {
	var full, vocals, instrumental, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "music <url> <song>",
		Short: "Download a song's audio parts into the music dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !full && !vocals && !instrumental {
				full = true
			}
			return ctx.withSession(func(session *acquire.Session) error {
				result, err := session.Music(cmd.Context(), args[0], args[1], full, vocals, instrumental)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", result.Info.Title, result.Layout.BaseDir)
				parts := make([]string, 0, len(result.Parts))
				for part := range result.Parts {
					parts = append(parts, part)
				}
				sort.Strings(parts)
				for _, part := range parts {
					fmt.Fprintf(out, "  %-13s %s\n", part+":", result.Parts[part])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Store the full song (default when no part is selected)")
	cmd.Flags().BoolVar(&vocals, "vocals", false, "Store the vocals part")
	cmd.Flags().BoolVar(&instrumental, "instrumental", false, "Store the instrumental part")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newSpeechCommand(ctx *commandContext) *cobra.Command {
	var fileName string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "speech <url> <speaker>",
		Short: "Download speaker audio into the speech dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *acquire.Session) error {
				result, err := session.Speech(cmd.Context(), args[0], args[1], fileName)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				printMediaResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fileName, "file-name", "", "Output file name inside the speaker directory (default audio.wav)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func buildCategory(kindValue string, episode int, subject, name, speaker, song string) (mediapath.Category, error) {
	kind, err := mediapath.ParseKind(kindValue)
	if err != nil {
		return mediapath.Category{}, services.Wrap(services.ErrValidation, "cli", "category", err.Error(), nil)
	}
	require := func(flag, value string) error {
		if strings.TrimSpace(value) == "" {
			return services.Wrap(services.ErrValidation, "cli", "category",
				fmt.Sprintf("--%s is required for %s", flag, kind), nil)
		}
		return nil
	}
	switch kind {
	case mediapath.KindPodcast:
		if episode <= 0 {
			return mediapath.Category{}, services.Wrap(services.ErrValidation, "cli", "category", "--episode must be positive for podcast", nil)
		}
		return mediapath.Podcast(episode), nil
	case mediapath.KindInterview:
		if err := require("subject", subject); err != nil {
			return mediapath.Category{}, err
		}
		if err := require("name", name); err != nil {
			return mediapath.Category{}, err
		}
		return mediapath.Interview(subject, name), nil
	case mediapath.KindSpeech:
		if err := require("speaker", speaker); err != nil {
			return mediapath.Category{}, err
		}
		return mediapath.Speech(speaker), nil
	default:
		if err := require("song", song); err != nil {
			return mediapath.Category{}, err
		}
		return mediapath.Music(song), nil
	}
}

func printMediaResult(out io.Writer, result acquire.MediaResult) {
	title := strings.TrimSpace(result.Info.Title)
	if title == "" {
		title = result.Info.ID
	}
	fmt.Fprintf(out, "%s -> %s\n", title, result.Layout.BaseDir)
	if result.Audio != "" {
		fmt.Fprintf(out, "  audio: %s\n", result.Audio)
	}
	if result.Video != "" {
		fmt.Fprintf(out, "  video: %s\n", result.Video)
	}
}

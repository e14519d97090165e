package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubeclip/internal/acquire"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst.wav>",
		Short: "Convert a local media file to WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *acquire.Session) error {
				out, err := session.Convert(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				return nil
			})
		},
	}
}

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	var seconds int
	var name string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "segment <src> <out-dir>",
		Short: "Split a local audio file into fixed-length WAV clips",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *acquire.Session) error {
				paths, err := session.Segment(cmd.Context(), args[0], args[1], seconds, name)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, paths)
				}
				out := cmd.OutOrStdout()
				for _, path := range paths {
					fmt.Fprintln(out, path)
				}
				fmt.Fprintf(out, "Wrote %d segment(s)\n", len(paths))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&seconds, "seconds", 0, "Segment length in seconds (default audio.segment_seconds)")
	cmd.Flags().StringVar(&name, "name", "", "File name prefix (default derived from the source)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

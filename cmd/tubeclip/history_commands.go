package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tubeclip/internal/history"
	"tubeclip/internal/services"
	"tubeclip/internal/textutil"
)

type historyEntryJSON struct {
	ID           int64  `json:"id"`
	RunID        string `json:"run_id"`
	SourceURL    string `json:"source_url"`
	VideoID      string `json:"video_id,omitempty"`
	Title        string `json:"title,omitempty"`
	Category     string `json:"category,omitempty"`
	Kind         string `json:"kind"`
	OutputPath   string `json:"output_path,omitempty"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var statusFlags []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded downloads and clip runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatuses(statusFlags)
			if err != nil {
				return err
			}
			return withHistory(ctx, func(store *history.Store) error {
				entries, err := store.List(cmd.Context(), limit, statuses...)
				if err != nil {
					return err
				}
				if jsonOutput {
					out := make([]historyEntryJSON, 0, len(entries))
					for _, entry := range entries {
						out = append(out, toHistoryJSON(entry))
					}
					return writeJSON(cmd, out)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No history entries")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderHistoryTable(entries))
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	cmd.Flags().StringSliceVarP(&statusFlags, "status", "s", nil, "Filter by status (running, completed, failed)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(newHistoryClearCommand(ctx))
	cmd.AddCommand(newHistoryStatsCommand(ctx))
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete history entries (all, or only the given statuses)",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatuses(statusFlags)
			if err != nil {
				return err
			}
			return withHistory(ctx, func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entr%s\n", removed, pluralY(removed))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&statusFlags, "status", "s", nil, "Only clear entries with these statuses")
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count history entries by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				counts, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(counts))
				for _, status := range history.AllStatuses() {
					rows = append(rows, []string{textutil.DisplayLabel(string(status)), fmt.Sprintf("%d", counts[status])})
				}
				writeTable(cmd.OutOrStdout(), []string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
				return nil
			})
		},
	}
}

func withHistory(ctx *commandContext, fn func(*history.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func parseStatuses(values []string) ([]history.Status, error) {
	var out []history.Status
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		status, err := history.ParseStatus(value)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "cli", "history", err.Error(), nil)
		}
		out = append(out, status)
	}
	return out, nil
}

func renderHistoryTable(entries []*history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = entry.SourceURL
		}
		detail := entry.OutputPath
		if entry.Status == history.StatusFailed {
			detail = entry.ErrorMessage
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", entry.ID),
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
			textutil.DisplayLabel(string(entry.Kind)),
			textutil.DisplayLabel(string(entry.Status)),
			truncate(title, 40),
			formatElapsed(entry.Elapsed()),
			truncate(detail, 60),
		})
	}
	return renderTable(
		[]string{"ID", "Created", "Kind", "Status", "Title", "Elapsed", "Output / Error"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func toHistoryJSON(entry *history.Entry) historyEntryJSON {
	return historyEntryJSON{
		ID:           entry.ID,
		RunID:        entry.RunID,
		SourceURL:    entry.SourceURL,
		VideoID:      entry.VideoID,
		Title:        entry.Title,
		Category:     entry.Category,
		Kind:         string(entry.Kind),
		OutputPath:   entry.OutputPath,
		Status:       string(entry.Status),
		ErrorMessage: entry.ErrorMessage,
		CreatedAt:    entry.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    entry.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}

func pluralY(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

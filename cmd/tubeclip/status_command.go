package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tubeclip/internal/config"
	"tubeclip/internal/deps"
	"tubeclip/internal/history"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools, directories and history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			lines = append(lines, renderStatusLine("Config file", statusInfo, configPathLabel(ctx), colorize))
			lines = append(lines, renderStatusLine("Marker", statusInfo, fmt.Sprintf("%q, window %gs", cfg.Highlights.Marker, cfg.Highlights.WindowSeconds), colorize))
			lines = append(lines, "")

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Directories", colorize)...)
			lines = append(lines, directoryLines(deps.CheckDirectories(cfg), colorize)...)
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("History", colorize)...)
			lines = append(lines, historyLines(cmd.Context(), cfg, colorize)...)

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func configPathLabel(ctx *commandContext) string {
	if ctx.configPath == "" {
		return "defaults"
	}
	return ctx.configPath
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Path != "" {
				message = fmt.Sprintf("Ready (%s)", dep.Path)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}
		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusWarn, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func directoryLines(dirs []deps.DirStatus, colorize bool) []string {
	lines := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		kind := statusOK
		message := dir.Path
		if !dir.Passed {
			kind = statusWarn
			message = fmt.Sprintf("%s (%s)", dir.Path, dir.Detail)
		}
		lines = append(lines, renderStatusLine(dir.Name, kind, message, colorize))
	}
	return lines
}

func historyLines(ctx context.Context, cfg *config.Config, colorize bool) []string {
	store, err := history.Open(cfg)
	if err != nil {
		return []string{renderStatusLine("Database", statusError, err.Error(), colorize)}
	}
	defer store.Close()
	counts, err := store.Stats(ctx)
	if err != nil {
		return []string{renderStatusLine("Database", statusError, err.Error(), colorize)}
	}
	lines := []string{renderStatusLine("Database", statusOK, store.Path(), colorize)}
	for _, status := range history.AllStatuses() {
		kind := statusInfo
		if status == history.StatusFailed && counts[status] > 0 {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(string(status), kind, fmt.Sprintf("%d", counts[status]), colorize))
	}
	return lines
}

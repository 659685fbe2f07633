// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - One-shot command handlers for the candlechat CLI.
//
// These paths talk to the backend without starting the TUI: a single chat
// question, a single CSV analysis, a status probe, and the model listing.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/candlechat-tui/internal/backend"
	"github.com/jeranaias/candlechat-tui/internal/config"
	"github.com/jeranaias/candlechat-tui/internal/ohlc"
	"github.com/jeranaias/candlechat-tui/internal/session"
	"github.com/jeranaias/candlechat-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan)

	mutedStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	okStyle = lipgloss.NewStyle().
		Foreground(styles.Emerald)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// markdownRenderer renders answers for TTY output. Nil when unavailable.
var markdownRenderer *glamour.TermRenderer

func init() {
	// Honor NO_COLOR and non-TTY stdout before any styled output
	lipgloss.SetColorProfile(GetColorProfile())

	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a response with markdown rendering when appropriate.
// Only renders markdown when stdout is a TTY to avoid corrupting piped output.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Println(response)
	}
}

// newClient builds the backend client from config plus the --backend flag.
func newClient(args Args) *backend.Client {
	cfg := config.Global()
	baseURL := cfg.Backend.URL
	if args.BackendURL != "" {
		baseURL = args.BackendURL
	}
	return backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL: baseURL,
		Timeout: cfg.Timeout(),
	})
}

// =============================================================================
// ASK
// =============================================================================

// HandleAskCommand sends a single question and prints the answer.
func HandleAskCommand(args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		return fmt.Errorf("usage: candlechat ask \"question\"")
	}

	client := newClient(args)
	ctx := context.Background()

	if report := client.CheckHealth(ctx); report.Status != backend.StatusConnected {
		return fmt.Errorf("backend is not reachable (%s)", report.Status)
	}

	answer, err := client.Chat(ctx, question)
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}

	displayResponse(answer)
	return nil
}

// =============================================================================
// ANALYZE
// =============================================================================

// HandleAnalyzeCommand converts a CSV file and prints the backend's analysis.
func HandleAnalyzeCommand(args Args) error {
	if args.File == "" {
		return fmt.Errorf("usage: candlechat analyze <file.csv> [\"question\"]")
	}

	data, err := os.ReadFile(args.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args.File, err)
	}

	records := ohlc.Convert(string(data), nil)
	summary := ohlc.Summarize(records)
	if summary.Count == 0 {
		return fmt.Errorf("%s contains no data rows", args.File)
	}

	if !args.Quiet {
		fmt.Println(mutedStyle.Render(summary.String()))
	}

	payload, err := ohlc.ToJSON(records)
	if err != nil {
		return err
	}

	question := strings.TrimSpace(args.Query)
	if question == "" {
		question = session.DefaultQuestion
	}

	analysis, err := newClient(args).Analyze(context.Background(), question, payload)
	if err != nil {
		return fmt.Errorf("analyze request failed: %w", err)
	}

	displayResponse(analysis)
	return nil
}

// =============================================================================
// STATUS
// =============================================================================

// HandleStatusCommand probes the backend and reports connectivity.
func HandleStatusCommand(args Args) error {
	client := newClient(args)
	report := client.CheckHealth(context.Background())

	fmt.Printf("%s %s\n", infoStyle.Render("Backend:"), client.BaseURL())

	switch report.Status {
	case backend.StatusConnected:
		fmt.Println(okStyle.Render("Status:  connected"))
		if len(report.Models) > 0 {
			fmt.Printf("%s %s\n", infoStyle.Render("Models: "), strings.Join(report.Models, ", "))
		}
		return nil
	default:
		fmt.Println(errorStyle.Render("Status:  " + report.Status.String()))
		if report.Detail != "" {
			fmt.Println(mutedStyle.Render(report.Detail))
		}
		os.Exit(1)
		return nil
	}
}

// =============================================================================
// MODELS
// =============================================================================

// HandleModelsCommand lists the models available behind the backend.
func HandleModelsCommand(args Args) error {
	models, err := newClient(args).ListModels(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(models) == 0 {
		fmt.Println(mutedStyle.Render("No models installed."))
		return nil
	}
	for _, m := range models {
		fmt.Println(m)
	}
	return nil
}

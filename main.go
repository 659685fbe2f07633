// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// candlechat - terminal chat client for a local market-analysis backend.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/candlechat-tui/internal/backend"
	"github.com/jeranaias/candlechat-tui/internal/cli"
	"github.com/jeranaias/candlechat-tui/internal/config"
	"github.com/jeranaias/candlechat-tui/internal/ui/chat"
	"github.com/jeranaias/candlechat-tui/internal/ui/styles"
)

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdAsk:
		err = cli.HandleAskCommand(args)
	case cli.CmdAnalyze:
		err = cli.HandleAnalyzeCommand(args)
	case cli.CmdStatus:
		err = cli.HandleStatusCommand(args)
	case cli.CmdModels:
		err = cli.HandleModelsCommand(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// runTUI starts the interactive chat interface.
func runTUI(args cli.Args) error {
	cfg := config.Global()
	if args.BackendURL != "" {
		cfg.Backend.URL = args.BackendURL
	}

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Timeout(),
	})

	theme := styles.NewTheme()
	m := chat.NewModel(cfg, client, theme)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

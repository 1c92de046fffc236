package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hearthhq/hearth/internal/tui"
	"github.com/hearthhq/hearth/internal/tui/screens"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Sign in and browse the household's documents interactively",
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("browse requires an interactive terminal; use 'hearth download' in scripts")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := newClient(cfg, logger)
	theme := tui.DetectTheme(cfg.Theme)
	styles := tui.NewStyleSet(theme)

	app := tui.NewApp(theme, []tui.Screen{
		screens.NewLogin(styles, client),
		screens.NewDocuments(styles, client, cfg.DownloadDir),
	}, appVersion)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

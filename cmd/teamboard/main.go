package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"teamboard/internal/api"
	"teamboard/internal/config"
	"teamboard/internal/session"
	"teamboard/internal/settings"
	"teamboard/internal/state"
	"teamboard/internal/ui"
	"teamboard/internal/ui/styles"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var apiURLFlag string

var rootCmd = &cobra.Command{
	Use:     "teamboard",
	Short:   "Terminal kanban board for teams, projects and tasks",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&apiURLFlag, "api-url", "", "server base URL (overrides TEAMBOARD_API_URL)")
}

func run() error {
	cfg := config.Load()
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}

	log, err := setupLogging(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	sess, err := session.NewStore()
	if err != nil {
		return fmt.Errorf("initializing session store: %w", err)
	}

	notifier := &ui.ProgramNotifier{}
	client := api.New(cfg.APIURL, cfg.HTTPTimeout, sess, notifier, log)

	auth := state.NewAuthStore(client, sess, notifier)
	teams := state.NewTeamStore(client, notifier)
	projects := state.NewProjectStore(client, notifier)
	tasks := state.NewTaskStore(client, auth, notifier)
	comments := state.NewCommentStore(client, notifier)

	// Local preferences are best effort; the app works without them.
	prefs, err := settings.Open()
	if err != nil {
		log.Warn("settings store unavailable", "error", err)
		prefs = nil
	} else {
		defer prefs.Close()
		if theme, err := prefs.Get(settings.KeyTheme); err == nil && theme != "" {
			styles.SetTheme(theme)
		}
	}

	app := ui.NewApp(auth, teams, projects, tasks, comments, prefs)
	p := tea.NewProgram(app, tea.WithAltScreen())
	notifier.Attach(p)

	client.SetUnauthorizedHandler(func() {
		auth.SessionExpired()
		p.Send(ui.SessionExpired{})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"learntrack/internal/api"
	"learntrack/internal/app"
	"learntrack/internal/credential"
	"learntrack/internal/logging"
	"learntrack/internal/model"
	"learntrack/internal/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// deps bundles everything a command needs after bootstrap.
type deps struct {
	cfg     *model.AppConfig
	log     *zap.SugaredLogger
	client  *api.Client
	session *session.Store
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "learntrack",
		Short:        "Terminal client for tracking personal learning goals",
		Long:         "LearnTrack is a terminal client for a personal learning-goal tracker:\nset goals, break them into tasks, and watch your progress.",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	root.PersistentFlags().String(
		"config", model.DefaultConfigPath(), "path to the config file",
	)
	root.PersistentFlags().String(
		"server", "", "API server base URL (overrides config)",
	)

	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())

	return root
}

// bootstrap loads configuration and wires up the client and session.
func bootstrap(cmd *cobra.Command) (*deps, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.ServerURL = server
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	client := api.NewClient(cfg.ServerURL, timeout, log)
	sess := session.New(client, credential.TokenStore{}, log)

	return &deps{cfg: cfg, log: log, client: client, session: sess}, nil
}

// runTUI starts the full-screen application.
func runTUI(cmd *cobra.Command, _ []string) error {
	d, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer d.log.Sync()

	m := app.New(d.client, d.session, *d.cfg, d.log)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func newLoginCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the API token in the system keyring",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer d.log.Sync()

			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			if username == "" || password == "" {
				return fmt.Errorf("both --username and --password are required")
			}

			if err := d.session.Login(context.Background(), username, password); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", d.session.User().DisplayName())
			return nil
		},
	}
	c.Flags().String("username", "", "account username")
	c.Flags().String("password", "", "account password")
	return c
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored API token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer d.log.Sync()

			d.session.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer d.log.Sync()

			ok, err := d.session.Restore(context.Background())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("not logged in")
			}

			u := d.session.User()
			fmt.Printf("%s (%s)\n", u.Username, u.Email)
			return nil
		},
	}
}

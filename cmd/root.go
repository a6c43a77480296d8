package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"admin-dash/config"
	"admin-dash/data/store"
	"admin-dash/ui"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flags = struct {
		ConfigFile string
		Demo       bool
		Debug      bool
		LogFile    string
	}{}

	root = &cobra.Command{
		Use:   "admin-dash",
		Short: "Terminal admin client for users, sites, vendors and the other records of the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := setupLogging(flags.LogFile, flags.Debug)
			if err != nil {
				return err
			}
			defer closeLog()

			lipgloss.SetColorProfile(termenv.ColorProfile())

			opts := ui.Options{ConfigPath: flags.ConfigFile, LogFile: flags.LogFile}
			if flags.Demo {
				s, err := openDemoStore(cmd.Context())
				if err != nil {
					return err
				}
				defer s.Close()
				opts.Store = s
			}

			p := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen())
			m, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := m.(ui.Model); ok {
				return m.Err()
			}
			return nil
		},
	}
)

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", fmt.Sprintf("configuration file (default $XDG_CONFIG_HOME/%s/%s)", config.DashDir, config.ConfigYamlFileName))
	root.Flags().BoolVar(&flags.Demo, "demo", false, "use a local seeded database instead of the API")
	root.Flags().BoolVar(&flags.Debug, "debug", false, "log at debug level")
	root.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to this file")
}

// setupLogging points the logger at a file. The terminal belongs to the UI.
func setupLogging(path string, debug bool) (func(), error) {
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	if path == "" {
		if !debug {
			return func() {}, nil
		}
		var err error
		path, err = xdg.StateFile(filepath.Join(config.DashDir, "debug.log"))
		if err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return func() { _ = f.Close() }, nil
}

func openDemoStore(ctx context.Context) (*store.Store, error) {
	path, err := xdg.DataFile(filepath.Join(config.DashDir, "demo.db"))
	if err != nil {
		return nil, err
	}
	log.Info("Opening demo store", "path", path)

	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := s.Seed(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func Execute() {
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

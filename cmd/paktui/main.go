package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/assistant"
	"github.com/pakaura/paktui/internal/config"
	"github.com/pakaura/paktui/internal/logging"
	"github.com/pakaura/paktui/internal/session"
	"github.com/pakaura/paktui/internal/update"
)

var (
	configPath string
	apiURL     string
	backend    string
	logLevel   string
	version    string = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "paktui",
	Short: "Terminal client for the task manager and its AI assistant",
	Long: `paktui is a terminal client for the task manager backend.

It signs you in, keeps your task list in step with the server, and carries
a conversation with the AI assistant that can manage tasks on your behalf.

Quick Start:
  paktui                               # connect to http://localhost:8000
  paktui --api-url https://tasks.example.com
  paktui --backend legacy              # use the /api/v1/ai endpoints`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if backend != "" {
		cfg.ChatBackend = config.ChatBackend(backend)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	client, err := api.NewClient(cfg.APIURL, cfg.RequestTimeout, log)
	if err != nil {
		return err
	}
	guard := session.NewGuard(client, log)
	newBackend := func(userID string) assistant.Backend {
		if cfg.ChatBackend == config.BackendLegacy {
			return assistant.NewLegacyBackend(client)
		}
		return assistant.NewAgentBackend(client, userID)
	}

	program := tea.NewProgram(
		update.NewModel(client, guard, newBackend, cfg, log),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("paktui failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config)")
	rootCmd.Flags().StringVar(&backend, "backend", "", "Chat backend: agent or legacy (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

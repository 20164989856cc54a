package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theodi/ndlcore/internal/config"
	logpkg "github.com/theodi/ndlcore/internal/logger"
)

// app carries state resolved once before any subcommand runs.
type app struct {
	configPath string
	env        string
	baseURL    string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ndlcore",
		Short: "Search the NDL Core Corpus of UK open government data",
		Long: `Semantic search over the NDL Core Corpus.

Use "search" from the terminal, or "mcp" to expose the search_ndl_corpus and
get_corpus_schema tools to an AI agent host.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML config (default config/<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.env, "env", "", "Environment name: local, dev, prod (default $ENV or local)")
	rootCmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Search API base URL (overrides config)")

	rootCmd.AddCommand(a.searchCmd())
	rootCmd.AddCommand(a.schemaCmd())
	rootCmd.AddCommand(a.mcpCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func (a *app) setup() error {
	if a.env == "" {
		a.env = config.GetEnv()
	}

	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load(a.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.baseURL != "" {
		a.cfg.API.BaseURL = a.baseURL
		if err := a.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --base-url: %w", err)
		}
	}

	a.logger, err = logpkg.NewLogger(a.env, a.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	return nil
}

// httpClient applies api.timeout_sec; zero leaves requests unbounded.
func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: time.Duration(a.cfg.API.TimeoutSec) * time.Second}
}

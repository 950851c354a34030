package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chrisdamba/outletplanner/internal/logging"
	"github.com/chrisdamba/outletplanner/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	envFile string
	app     *application
)

var rootCmd = &cobra.Command{
	Use:   "outletplanner",
	Short: "Plans staffing, revenue and costs for restaurant outlets",
	Long: `outletplanner is a CLI tool for restaurant operations planning. It estimates staffing
requirements from floor space and service style, projects revenue, builds profit and loss
statements, analyses peak hours and compares what-if scenarios for an outlet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}

		app, err = newApplication(cmd.Context(), cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		err := app.Close()
		_ = app.logger.Sync()
		return err
	},
}

// loadEnvFile exports the variables of a dotenv file. A missing default
// .env file is not an error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./outletplanner.yaml)")
	flags.StringVar(&envFile, "env-file", "", "dotenv file to load before reading config (default is ./.env)")

	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console or json)")
	flags.String("provider", "memory", "Configuration and scenario store (memory or postgres)")
	flags.String("defaults-file", "", "YAML or JSON file overriding default values and constants")
	flags.String("scenarios-file", "", "YAML or JSON file of scenarios to load into the store")
	flags.String("cache", "memory", "Constant cache backend (none, memory or redis)")
	flags.String("output", "none", "Result destination (none, console, json, kafka, postgres, parquet)")
	flags.String("output-path", ".", "Base path for file destinations")
	flags.StringP("format", "f", "table", "Display format (table, json or yaml)")
	flags.String("metrics-textfile", "", "Write Prometheus metrics to this file on exit")

	bindings := map[string]string{
		"log_level":        "log-level",
		"log_format":       "log-format",
		"provider":         "provider",
		"defaults_file":    "defaults-file",
		"scenarios_file":   "scenarios-file",
		"cache.backend":    "cache",
		"output":           "output",
		"output_path":      "output-path",
		"format":           "format",
		"metrics_textfile": "metrics-textfile",
	}
	for key, flag := range bindings {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package cmd implements the CLI commands for donutsmp-bot.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/donutsmp-bot/internal/api/client"
	"github.com/donaldgifford/donutsmp-bot/internal/config"
	"github.com/donaldgifford/donutsmp-bot/internal/donut"
	"github.com/donaldgifford/donutsmp-bot/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "donutsmp-bot",
	Short: "Telegram bot for the DonutSMP Minecraft server",
	Long: "donutsmp-bot answers chat commands about DonutSMP players, leaderboards\n" +
		"and the auction house. It can also run auction searches from the terminal.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initViper)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "config.yaml", "config file path")
	flags.String("log-level", "", "override logging.level (debug, info, warn, error)")
	flags.String("output", "table", "output format (table, json)")
	flags.String("server", "", "ops API URL; when empty, searches run locally")

	for _, name := range []string{"config", "log-level", "output", "server"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(priceCmd())
	rootCmd.AddCommand(versionCmd())
}

func initViper() {
	viper.SetEnvPrefix("DONUTBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if lvl := viper.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func remote() bool {
	return viper.GetString("server") != ""
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func newDonutClient(cfg *config.Config, log *slog.Logger) *donut.RESTClient {
	return donut.NewRESTClient(cfg.Donut.APIKey,
		donut.WithBaseURL(cfg.Donut.BaseURL),
		donut.WithHTTPClient(&http.Client{Timeout: cfg.Donut.Timeout}),
		donut.WithLogger(log),
	)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rinkstats/crosscheck/internal/cmd/output"
	"github.com/rinkstats/crosscheck/internal/config"
	"github.com/rinkstats/crosscheck/pkg/logging"
)

var (
	configFile   string
	outputFormat string
	verbose      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "crosscheck",
	Short: "Hockey statistics reconciliation CLI",
	Long: `Crosscheck reconciles goal and penalty statistics across the
independently produced sources describing the same game: the play-by-play
event stream, the boxscore totals, the detailed scoring report, and the
shift chart.

It designates one source authoritative, aligns events across sources
without shared identifiers, classifies every disagreement by severity,
and explains the statistical scenarios where a naive comparison would be
wrong.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Signal-aware context for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "reconcile",
		Title: "Reconciliation Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "info",
		Title: "Information Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.crosscheck.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml, wide (default by terminal)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	if err := viper.BindPFlag(config.KeyOutput, rootCmd.PersistentFlags().Lookup("output")); err != nil {
		panic(fmt.Sprintf("Failed to bind output flag: %v", err))
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".crosscheck")
	}

	// .env files load before viper env binding so both see them.
	loadEnvFiles()

	viper.SetEnvPrefix("CROSSCHECK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// loadEnvFiles loads .env files from the working directory when present.
// Missing files are not an error.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", name, err)
		}
	}
}

// configureLogging applies the environment configuration, with the
// verbose flag forcing debug level.
func configureLogging() {
	logging.ConfigureFromEnv()
	if verbose || viper.GetBool("verbose") {
		logging.SetDefault(logging.Level(zerolog.DebugLevel))
	}
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	if outputFormat == "" {
		outputFormat = string(output.DetectFormat(""))
	}
	if _, err := output.ParseFormat(outputFormat); err != nil {
		return err
	}
	return nil
}

// formatter returns the formatter selected by flag, config, or terminal
// detection.
func formatter() output.Formatter {
	format := outputFormat
	if format == "" {
		format = config.GetString(config.KeyOutput)
	}
	return output.NewFormatter(output.DetectFormat(format))
}

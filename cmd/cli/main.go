package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"booksearch/internal/books"
	"booksearch/internal/config"
	"booksearch/internal/logger"
	"booksearch/internal/messages"
	"booksearch/internal/metrics"
	"booksearch/internal/search"
	"booksearch/internal/view"
)

var cfgFile string

// errSearchFailed makes the one-shot mode exit non-zero after the error was shown.
var errSearchFailed = errors.New("search failed")

var rootCmd = &cobra.Command{
	Use:   "cli [query...]",
	Short: "Search Google Books from the terminal",
	Long: `cli sends a query to the Google Books volumes API and prints the matching
books as a table.

Example usage:
  cli dune                    # one-shot search
  cli author:herbert --aliases
  cli                         # interactive shell, exit with "exit" or Ctrl-D`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (default is $BOOKSEARCH_CONFIG or booksearch.yaml)")
	f.String("endpoint", "", "volumes endpoint")
	f.Int("max-results", 0, "maxResults sent upstream (1..40)")
	f.Bool("aliases", false, "rewrite author:/title:/publisher: to the upstream field operators")
	f.String("policy", "", "overlapping searches: ignore-stale or last-completed")
	f.BoolP("verbose", "v", false, "debug logging")
	f.Bool("no-color", false, "disable colored output")

	_ = viper.BindPFlag("books.endpoint", f.Lookup("endpoint"))
	_ = viper.BindPFlag("books.max_results", f.Lookup("max-results"))
	_ = viper.BindPFlag("search.field_aliases", f.Lookup("aliases"))
	_ = viper.BindPFlag("search.policy", f.Lookup("policy"))
	_ = viper.BindPFlag("cli.debug", f.Lookup("verbose"))
	_ = viper.BindPFlag("cli.no_color", f.Lookup("no-color"))
}

// loadConfig reads the config file and lays the flags that were given on top.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if viper.IsSet("books.endpoint") {
		cfg.Books.Endpoint = viper.GetString("books.endpoint")
	}
	if viper.IsSet("books.max_results") {
		cfg.Books.MaxResults = viper.GetInt("books.max_results")
	}
	if viper.IsSet("search.field_aliases") {
		cfg.Search.FieldAliases = viper.GetBool("search.field_aliases")
	}
	if viper.IsSet("search.policy") {
		cfg.Search.Policy = viper.GetString("search.policy")
	}
	if viper.IsSet("cli.debug") {
		cfg.CLI.Debug = viper.GetBool("cli.debug")
	}
	if viper.IsSet("cli.no_color") {
		cfg.CLI.NoColor = viper.GetBool("cli.no_color")
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	if cfg.CLI.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	color.NoColor = cfg.CLI.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))
	policy, err := search.ParsePolicy(cfg.Search.Policy)
	if err != nil {
		return err
	}

	msgs := messages.New()
	terminal := view.NewTerminal(os.Stdout, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
	controller := search.NewController(
		search.NewService(books.New(cfg.Books, log), msgs, cfg.Search.FieldAliases),
		terminal.Handles(),
		msgs,
		search.WithPolicy(policy),
	)

	defer func() {
		if err := metrics.Push(cfg.Metrics.PushURL, cfg.Metrics.Job); err != nil {
			log.WithError(err).Warn("metrics push failed")
		}
	}()

	ctx := cmd.Context()
	if len(args) > 0 {
		controller.SubmitQuery(ctx, strings.Join(args, " "))
		controller.Wait()
		if controller.Outcome().State == search.StateError {
			return errSearchFailed
		}
		return nil
	}

	return shell(ctx, controller, terminal, cfg.CLI.HistoryFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSearchFailed) {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		}
		os.Exit(1)
	}
}

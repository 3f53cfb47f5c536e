package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/mediaredact/internal/config"
	"github.com/nao1215/mediaredact/internal/database"
	"github.com/nao1215/mediaredact/internal/i18n"
	applog "github.com/nao1215/mediaredact/internal/log"
	"github.com/nao1215/mediaredact/internal/model"
	"github.com/nao1215/mediaredact/internal/pipeline"
	"github.com/nao1215/mediaredact/internal/privacy"
	"github.com/nao1215/mediaredact/internal/report"
)

// stdinSource names the notification read from standard input.
const stdinSource = "stdin"

// errInputTooLarge is returned when an input exceeds --max-size.
var errInputTooLarge = errors.New("input exceeds maximum size")

// errDuplicateOutputName is returned when two inputs would be written to
// the same file under --output-dir.
var errDuplicateOutputName = errors.New("inputs share an output file name")

// NewRedactCmd creates the redact command.
func NewRedactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redact [file...]",
		Short: "Replace non-public media in HTML notifications with links",
		Long: `Redact rewrites HTML notification bodies read from files or standard input.

Every image hosted on a site that is not public, and every audio and video
element, is replaced by <a href="LINK">View this ... by visiting the
original post.</a>. Content without such media is written back unchanged.

Examples:
  # Redact a single file to standard output
  mediaredact redact --link https://example.org/blog/hello/ mail.html

  # Read from standard input
  cat mail.html | mediaredact redact -l https://example.org/blog/hello/

  # Redact many files into a directory and print a summary
  mediaredact redact -o out/ -s text mails/*.html

  # Use the site registry and log every redaction
  mediaredact redact --db --record -l https://example.org/p/1/ mail.html

  # German placeholder texts from the configuration file
  mediaredact redact --lang de mail.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runRedactCmd,
	}

	cmd.Flags().StringP("link", "l", config.DefaultLink,
		"Post link used as the href of every placeholder")
	cmd.Flags().StringSliceP("kinds", "k", nil,
		"Media kinds to redact, in order (default image,audio,video)")
	cmd.Flags().String("lang", config.DefaultLanguage,
		"Language of the placeholder texts (BCP 47 tag)")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mediaredact in current or home directory)")
	cmd.Flags().Bool("db", false,
		"Also resolve sites through the SQLite registry")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the SQLite registry")
	cmd.Flags().Bool("record", false,
		"Append every notification to the redaction history (requires --db)")

	cmd.Flags().StringP("output-dir", "o", "",
		"Write one redacted file per input into this directory instead of standard output")
	cmd.Flags().StringP("summary", "s", config.SummaryNone,
		"Summary written to standard error: none, text, json or markdown")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of inputs redacted concurrently")
	cmd.Flags().Int64("max-size", config.DefaultMaxInputSize,
		"Maximum size in bytes of a single input")

	return cmd
}

// runRedactCmd executes the redact command.
func runRedactCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runRedact(ctx, cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the
// configuration file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.PostLink, err = flags.GetString("link"); err != nil {
		return nil, err
	}

	kindNames, err := flags.GetStringSlice("kinds")
	if err != nil {
		return nil, err
	}
	if len(kindNames) > 0 {
		if cfg.Kinds, err = config.ParseKinds(kindNames); err != nil {
			return nil, fmt.Errorf("invalid --kinds: %w", err)
		}
	}

	if cfg.Language, err = flags.GetString("lang"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.UseDB, err = flags.GetBool("db"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}
	if cfg.Record, err = flags.GetBool("record"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.Summary, err = flags.GetString("summary"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.MaxInputSize, err = flags.GetInt64("max-size"); err != nil {
		return nil, err
	}

	file, err := loadConfigFile(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyDefaults(file); err != nil {
		return nil, fmt.Errorf("invalid defaults in configuration file: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args
	return cfg, nil
}

// loadConfigFile finds and loads the configuration file.
// An explicitly given path must exist; otherwise a missing file yields an
// empty configuration.
func loadConfigFile(path string) (*config.File, error) {
	found := config.FindConfigFile(path)
	if found == "" {
		if path != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return config.NewFile(), nil
	}

	file, err := config.LoadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	return file, nil
}

// setupLogger creates a structured logger that masks secrets.
func setupLogger(verbose bool, w io.Writer) *slog.Logger {
	return applog.NewSecureLogger(w, verbose)
}

// runRedact reads the inputs, filters them, and writes results and summary.
func runRedact(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	file := cfg.File
	if file == nil {
		file = config.NewFile()
	}

	catalog, err := i18n.NewCatalog(file.Messages)
	if err != nil {
		return fmt.Errorf("invalid messages in configuration file: %w", err)
	}

	sites, err := file.ModelSites()
	if err != nil {
		return fmt.Errorf("invalid sites in configuration file: %w", err)
	}
	resolvers := []privacy.Resolver{privacy.NewRegistry(sites...)}

	filterOpts := []pipeline.FilterOption{
		pipeline.WithKinds(cfg.Kinds...),
		pipeline.WithMessages(catalog.Messages(cfg.Language)),
		pipeline.WithFilterLogger(logger),
	}

	if cfg.UseDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "path", db.Path())

		resolvers = append(resolvers, db)
		if cfg.Record {
			filterOpts = append(filterOpts, pipeline.WithRecorder(db))
		}
	}

	checker := privacy.NewChecker(privacy.Chain(resolvers...), privacy.WithLogger(logger))
	filter := pipeline.NewFilter(checker, filterOpts...)

	notifications, err := readNotifications(cfg, stdin)
	if err != nil {
		return err
	}

	bp := pipeline.NewBatchProcessor(
		filter.Pipeline,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	var mu sync.Mutex
	var writeErrs []error
	var names []string
	if cfg.OutputDir != "" {
		if names, err = outputNames(notifications); err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	err = bp.ProcessBatchWithCallback(ctx, notifications, func(n *model.Notification, index int) {
		if cfg.OutputDir == "" {
			return
		}
		if werr := writeOutputFile(filepath.Join(cfg.OutputDir, names[index]), n); werr != nil {
			mu.Lock()
			writeErrs = append(writeErrs, werr)
			mu.Unlock()
		}
	})
	if err != nil {
		return fmt.Errorf("redaction interrupted: %w", err)
	}
	if len(writeErrs) > 0 {
		return errors.Join(writeErrs...)
	}

	if cfg.OutputDir == "" {
		for _, n := range notifications {
			if _, err := io.WriteString(stdout, n.Content); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}

	if cfg.Summary != config.SummaryNone {
		w, err := report.NewWriter(cfg.Summary, stderr)
		if err != nil {
			return err
		}
		if _, err := w.Write(model.NewSummary(notifications)); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	failed := 0
	for _, n := range notifications {
		if n.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d notification(s) could not be fully filtered", failed, len(notifications))
	}
	return nil
}

// readNotifications reads every input, or standard input when none is given.
func readNotifications(cfg *config.Config, stdin io.Reader) ([]*model.Notification, error) {
	activity := func() *model.Activity {
		return &model.Activity{Type: model.ActivityNewBlogPost, PrimaryLink: cfg.PostLink}
	}

	if len(cfg.Inputs) == 0 {
		content, err := readLimited(stdin, cfg.MaxInputSize)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return []*model.Notification{model.NewNotification(stdinSource, content, activity())}, nil
	}

	notifications := make([]*model.Notification, 0, len(cfg.Inputs))
	for _, path := range cfg.Inputs {
		f, err := os.Open(path) //nolint:gosec // Reading user-specified inputs is the purpose of this command
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		content, err := readLimited(f, cfg.MaxInputSize)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		notifications = append(notifications, model.NewNotification(path, content, activity()))
	}
	return notifications, nil
}

// readLimited reads r completely, failing when it holds more than limit bytes.
func readLimited(r io.Reader, limit int64) (string, error) {
	if limit == math.MaxInt64 {
		data, err := io.ReadAll(r)
		return string(data), err
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w (%d bytes)", errInputTooLarge, limit)
	}
	return string(data), nil
}

// outputName returns the file name source is written to under --output-dir.
func outputName(source string) (string, error) {
	if source == stdinSource {
		return stdinSource + ".html", nil
	}
	name := filepath.Base(source)
	if name == "." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("cannot derive output file name from %q", source)
	}
	return name, nil
}

// outputNames returns the output file name of every notification, in order.
// Names are compared case-insensitively since the output directory may be
// on a case-insensitive file system.
func outputNames(notifications []*model.Notification) ([]string, error) {
	names := make([]string, len(notifications))
	seen := make(map[string]string, len(notifications))
	for i, n := range notifications {
		name, err := outputName(n.Source)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q and %q both write %s", errDuplicateOutputName, prev, n.Source, name)
		}
		seen[key] = n.Source
		names[i] = name
	}
	return names, nil
}

// writeOutputFile writes n.Content to path.
func writeOutputFile(path string, n *model.Notification) error {
	if err := os.WriteFile(path, []byte(n.Content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

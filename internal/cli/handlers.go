package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/BartekS5/gdpetl/internal/config"
	"github.com/BartekS5/gdpetl/internal/etl"
	"github.com/BartekS5/gdpetl/pkg/database"
	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
)

// RunOptions are the flags of the run command.
type RunOptions struct {
	DryRun    bool
	Threshold float64
	URL       string
}

func setup(opts *GlobalOptions) (*config.Config, error) {
	level := logger.INFO
	if opts.Verbose {
		level = logger.DEBUG
	}
	if err := logger.InitLogger(opts.LogFile, level); err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	path, required := opts.ConfigFile, true
	if path == "" {
		path, required = config.DefaultFile, false
	}
	return config.LoadConfig(path, required)
}

func newExtractor(cfg *config.Config) *etl.Extractor {
	return etl.NewExtractor(etl.TableLocator{
		Selector:    cfg.TableSelector,
		HeaderLabel: cfg.HeaderLabel,
		CountryCell: cfg.CountryCell,
		GDPCell:     cfg.GDPCell,
		Placeholder: cfg.Placeholder,
	})
}

func newFetcher(cfg *config.Config) (*etl.HTTPFetcher, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return etl.NewHTTPFetcher(timeout), nil
}

func sqliteOpener(path string) etl.EmbeddedOpener {
	return func(ctx context.Context) (*sql.DB, error) {
		return database.OpenSQLite(ctx, path)
	}
}

func runPipeline(ctx context.Context, cfg *config.Config, runOpts *RunOptions, out io.Writer) error {
	if runOpts.URL != "" {
		cfg.SourceURL = runOpts.URL
	}
	if runOpts.Threshold >= 0 {
		cfg.Threshold = runOpts.Threshold
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	pipeline := etl.NewPipeline(
		fetcher,
		newExtractor(cfg),
		logger.NewProgressLogger(cfg.LogPath),
		sqliteOpener(cfg.SQLitePath),
		etl.Options{
			SourceURL: cfg.SourceURL,
			Columns:   []string{models.ColumnCountry, models.ColumnGDPMillions},
			CSVPath:   cfg.CSVPath,
			TableName: cfg.TableName,
			Threshold: cfg.Threshold,
		},
	)
	pipeline.Out = out
	pipeline.DryRun = runOpts.DryRun

	// The server connection is opened up front and closed by the pipeline
	// right after its write; the deferred Close covers early exits.
	if cfg.ServerEnabled() && !runOpts.DryRun {
		serverDB, err := database.ConnectSQL(ctx, cfg.Dialect(), cfg.SQLConnString)
		if err != nil {
			return err
		}
		defer serverDB.Close()
		pipeline.Server = etl.NewServerLoader(serverDB, cfg.Dialect(), cfg.TableName)
	}

	if cfg.MongoEnabled() && !runOpts.DryRun {
		client, err := database.ConnectMongo(ctx, cfg.MongoConnString)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		pipeline.Mirror = etl.NewMongoLoader(client, cfg.MongoDatabase, cfg.TableName, pipeline.RunID)
	}

	fmt.Fprintf(out, "Starting ETL run %s from %s...\n", pipeline.RunID, cfg.SourceURL)
	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "ETL finished: %d rows in %s.\n", result.Rows, result.Duration.Round(time.Millisecond))
	return nil
}

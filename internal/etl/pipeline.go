package etl

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/google/uuid"
)

// Progress messages written to the progress log between stages.
const (
	MsgStart       = "Preliminaries complete. Initiating ETL process"
	MsgExtracted   = "Data extraction complete. Initiating Transformation process"
	MsgTransformed = "Data transformation complete. Initiating loading process"
	MsgCSVSaved    = "Data saved to CSV file"
	MsgConnected   = "SQL Connection initiated."
	MsgLoaded      = "Data loaded to Database as table. Running the query"
	MsgComplete    = "Process Complete."
)

type Options struct {
	SourceURL string
	Columns   []string
	CSVPath   string
	TableName string
	Threshold float64
}

// EmbeddedOpener opens the embedded store. The pipeline owns the returned
// handle and closes it when Run returns.
type EmbeddedOpener func(ctx context.Context) (*sql.DB, error)

type Pipeline struct {
	Fetcher      Fetcher
	Extractor    *Extractor
	Transformer  *Transformer
	Progress     *logger.ProgressLogger
	OpenEmbedded EmbeddedOpener
	// Server is optional; when nil the server write is skipped.
	Server *ServerLoader
	// Mirror is optional; when nil no document copy is written.
	Mirror  Loader
	Options Options
	Out     io.Writer
	DryRun  bool
	RunID   string
}

type Result struct {
	RunID    string
	Rows     int
	Table    *models.Table
	Query    *QueryResult
	Duration time.Duration
}

func NewPipeline(fetcher Fetcher, extractor *Extractor, progress *logger.ProgressLogger, opener EmbeddedOpener, opts Options) *Pipeline {
	return &Pipeline{
		Fetcher:      fetcher,
		Extractor:    extractor,
		Transformer:  NewTransformer(),
		Progress:     progress,
		OpenEmbedded: opener,
		Options:      opts,
		RunID:        uuid.NewString(),
	}
}

// Run executes every stage once, in order, stopping at the first error.
// The progress log then ends with the last stage that completed.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: p.RunID}
	logger.Infof("Starting pipeline %s. Source: %s, DryRun: %v", p.RunID, p.Options.SourceURL, p.DryRun)

	if err := p.Progress.Log(MsgStart); err != nil {
		return result, err
	}

	// 1. Extract
	markup, err := p.Fetcher.Fetch(ctx, p.Options.SourceURL)
	if err != nil {
		logger.Errorf("Extraction failed: %v", err)
		return result, err
	}
	tbl, err := p.Extractor.Extract(markup, p.Options.Columns)
	if err != nil {
		logger.Errorf("Extraction failed: %v", err)
		return result, err
	}
	result.Table = tbl
	result.Rows = tbl.Len()
	if err := p.Progress.Log(MsgExtracted); err != nil {
		return result, err
	}

	// 2. Transform
	if err := p.Transformer.Transform(tbl); err != nil {
		logger.Errorf("Transformation failed: %v", err)
		return result, err
	}
	if err := p.Progress.Log(MsgTransformed); err != nil {
		return result, err
	}

	if p.DryRun {
		logger.Infof("[DRY RUN] Would load %d records to %s and table %s",
			tbl.Len(), p.Options.CSVPath, p.Options.TableName)
		result.Duration = time.Since(start)
		return result, nil
	}

	// 3. Load: flat file
	if err := NewCSVLoader(p.Options.CSVPath).Load(ctx, tbl); err != nil {
		logger.Errorf("CSV load failed: %v", err)
		return result, err
	}
	if err := p.Progress.Log(MsgCSVSaved); err != nil {
		return result, err
	}

	// 4. Load: embedded store, kept open for the query stage
	embedded, err := p.OpenEmbedded(ctx)
	if err != nil {
		logger.Errorf("Embedded connection failed: %v", err)
		return result, err
	}
	defer embedded.Close()
	if err := p.Progress.Log(MsgConnected); err != nil {
		return result, err
	}

	if err := NewSQLiteLoader(embedded, p.Options.TableName).Load(ctx, tbl); err != nil {
		logger.Errorf("Embedded load failed: %v", err)
		return result, err
	}

	// 5. Load: server store, closed as soon as the write is done
	if err := p.loadServer(ctx, tbl); err != nil {
		logger.Errorf("Server load failed: %v", err)
		return result, err
	}

	if p.Mirror != nil {
		if err := p.Mirror.Load(ctx, tbl); err != nil {
			logger.Errorf("Mirror load failed: %v", err)
			return result, err
		}
	}
	if err := p.Progress.Log(MsgLoaded); err != nil {
		return result, err
	}

	// 6. Query
	runner := NewQueryRunner(embedded, p.Out)
	qr, err := runner.RunThreshold(ctx, p.Options.TableName, p.Options.Threshold)
	if err != nil {
		logger.Errorf("Query failed: %v", err)
		return result, err
	}
	result.Query = qr
	if err := p.Progress.Log(MsgComplete); err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	logger.Infof("Pipeline %s finished successfully in %s. Rows: %d", p.RunID, result.Duration, result.Rows)
	return result, nil
}

func (p *Pipeline) loadServer(ctx context.Context, tbl *models.Table) error {
	if p.Server == nil {
		logger.Warnf("No server connection configured, skipping server load")
		return nil
	}

	loadErr := p.Server.Load(ctx, tbl)
	closeErr := p.Server.Close()
	if loadErr != nil {
		return loadErr
	}
	if closeErr != nil {
		return fmt.Errorf("close server connection: %w", closeErr)
	}
	return nil
}

// Package pipeline sequences rasterization, extraction and persistence for
// each document, isolating per-document failures from the run.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/AzadNikarthil/rollscan/internal/cache"
	"github.com/AzadNikarthil/rollscan/internal/domain"
	"github.com/AzadNikarthil/rollscan/internal/extract"
	"github.com/AzadNikarthil/rollscan/internal/observability"
	"github.com/AzadNikarthil/rollscan/internal/ocr"
)

// Rasterizer turns one document into an ordered sequence of page images.
type Rasterizer interface {
	Convert(ctx context.Context, pdfPath, workDir string) ([]domain.PageImage, error)
}

// VoterStore is the persistence gateway: an idempotent bulk write keyed on
// the voter identifier.
type VoterStore interface {
	UpsertVoters(ctx context.Context, records []domain.VoterRecord, batchSize int) (int64, error)
}

// Options holds orchestration settings.
type Options struct {
	ArchiveDir  string
	TempRoot    string
	BatchSize   int
	Language    string
	DPI         int
	PageTimeout time.Duration
}

// Pipeline processes documents sequentially against a single store handle.
type Pipeline struct {
	log       *observability.Logger
	raster    Rasterizer
	engine    ocr.Engine
	contextEx *extract.ContextExtractor
	cards     *extract.CardExtractor
	store     VoterStore
	processed cache.Client // may be nil
	opts      Options
}

// New creates a pipeline. The processed-document cache is optional; pass nil
// to rely solely on the store's upsert for idempotency.
func New(
	log *observability.Logger,
	raster Rasterizer,
	engine ocr.Engine,
	contextEx *extract.ContextExtractor,
	cards *extract.CardExtractor,
	store VoterStore,
	processed cache.Client,
	opts Options,
) *Pipeline {
	if opts.TempRoot == "" {
		opts.TempRoot = os.TempDir()
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 100
	}
	return &Pipeline{
		log:       log,
		raster:    raster,
		engine:    engine,
		contextEx: contextEx,
		cards:     cards,
		store:     store,
		processed: processed,
		opts:      opts,
	}
}

// DocumentResult is the outcome of one document's run through the pipeline.
type DocumentResult struct {
	Path    string
	Status  domain.DocumentStatus
	Skipped bool
	Records int64
	Err     error
}

// RunSummary aggregates a whole run.
type RunSummary struct {
	RunID     string
	Processed int
	Skipped   int
	Failed    int
	Records   int64
	Duration  time.Duration
}

// Run processes the documents one at a time. A document's failure never
// aborts the run. onDocument, if non-nil, is invoked after each document.
func (p *Pipeline) Run(ctx context.Context, paths []string, onDocument func(DocumentResult)) RunSummary {
	runID := uuid.New().String()
	log := p.log.WithRun(runID)
	start := time.Now()

	summary := RunSummary{RunID: runID}
	log.Info().Int("documents", len(paths)).Msg("starting pipeline run")

	for _, path := range paths {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("run canceled")
			break
		}

		res := p.ProcessDocument(ctx, path)
		switch {
		case res.Skipped:
			summary.Skipped++
		case res.Status == domain.StatusFailed:
			summary.Failed++
		default:
			summary.Processed++
			summary.Records += res.Records
		}
		if onDocument != nil {
			onDocument(res)
		}
	}

	summary.Duration = time.Since(start)
	log.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int64("records", summary.Records).
		Dur("duration", summary.Duration).
		Msg("pipeline run finished")
	return summary
}

// ProcessDocument walks one document through the state machine. On success
// the source file is relocated to the archive dir; on failure it is left in
// place for a future retry. Temporary raster artifacts are released either
// way.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) DocumentResult {
	log := p.log.WithDocument(path)
	res := DocumentResult{Path: path, Status: domain.StatusPending}

	digest, err := fileDigest(path)
	if err != nil {
		log.Error().Err(err).Msg("cannot read document")
		res.Status = domain.StatusFailed
		res.Err = domain.IOError("read document", err)
		return res
	}

	if p.alreadyProcessed(ctx, digest) {
		log.Info().Msg("document digest already processed, skipping")
		res.Skipped = true
		res.Status = domain.StatusArchived
		return res
	}

	workDir, err := os.MkdirTemp(p.opts.TempRoot, "rollscan-*")
	if err != nil {
		log.Error().Err(err).Msg("cannot create working directory")
		res.Status = domain.StatusFailed
		res.Err = domain.IOError("create working directory", err)
		return res
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			log.Warn().Err(rmErr).Msg("failed to remove working directory")
		}
	}()

	pages, err := p.raster.Convert(ctx, path, workDir)
	if err != nil {
		log.Error().Err(err).Msg("rasterization failed")
		res.Status = domain.StatusFailed
		res.Err = err
		return res
	}
	res.Status = domain.StatusRasterized
	log.Info().Int("pages", len(pages)).Msg("document rasterized")

	ctxRec := p.extractContext(ctx, log, pages[0])
	res.Status = domain.StatusContextExtracted

	records, err := p.extractRecords(ctx, log, pages, ctxRec, filepath.Base(path))
	if err != nil {
		log.Error().Err(err).Msg("card extraction aborted")
		res.Status = domain.StatusFailed
		res.Err = err
		return res
	}
	res.Status = domain.StatusCardsExtracted
	log.Info().Int("records", len(records)).Msg("cards extracted")

	inserted, err := p.store.UpsertVoters(ctx, records, p.opts.BatchSize)
	if err != nil {
		log.Error().Err(err).Msg("persistence failed, document left for retry")
		res.Status = domain.StatusFailed
		res.Err = err
		return res
	}
	res.Status = domain.StatusPersisted
	res.Records = inserted

	if err := p.archive(path); err != nil {
		log.Error().Err(err).Msg("archiving failed")
		res.Status = domain.StatusFailed
		res.Err = err
		return res
	}
	res.Status = domain.StatusArchived
	p.markProcessed(ctx, digest)

	log.Info().Int64("inserted", inserted).Msg("document archived")
	return res
}

// extractContext recognizes page 1 and runs the label scan. Recognition
// failure degrades to an all-absent context record: the document still
// proceeds to card extraction.
func (p *Pipeline) extractContext(ctx context.Context, log *observability.Logger, page domain.PageImage) domain.ContextRecord {
	text := ""
	data, err := os.ReadFile(page.ImagePath)
	if err != nil {
		log.Warn().Err(err).Msg("cannot read page 1 image, context will be empty")
	} else {
		res, err := p.engine.Recognize(ctx, ocr.Input{
			ID:       "page-1",
			Image:    data,
			Language: p.opts.Language,
			DPI:      p.opts.DPI,
		})
		if err != nil {
			log.Warn().Err(err).Msg("page 1 recognition failed, context will be empty")
		} else {
			text = res.PlainText
		}
	}
	return p.contextEx.Extract(text)
}

// extractRecords walks pages 3 onward through the card extractor. Documents
// shorter than three pages legitimately yield zero records.
func (p *Pipeline) extractRecords(ctx context.Context, log *observability.Logger, pages []domain.PageImage, ctxRec domain.ContextRecord, sourceFile string) ([]domain.VoterRecord, error) {
	if len(pages) < 3 {
		log.Warn().Int("pages", len(pages)).Msg("document has no content pages, no cards expected")
		return nil, nil
	}

	var records []domain.VoterRecord
	for _, page := range pages[2:] {
		pageCtx := ctx
		cancel := func() {}
		if p.opts.PageTimeout > 0 {
			pageCtx, cancel = context.WithTimeout(ctx, p.opts.PageTimeout)
		}

		cands, err := p.cards.ExtractPage(pageCtx, page)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A single unreadable page degrades the document, it does not
			// fail it: remaining pages may still parse.
			log.Warn().Err(err).Int("page", page.PageNumber).Msg("page skipped")
			continue
		}

		for _, cand := range cands {
			records = append(records, extract.Assemble(cand, ctxRec, sourceFile))
		}
	}
	return records, nil
}

// archive relocates the source file into the archive directory.
func (p *Pipeline) archive(path string) error {
	if err := os.MkdirAll(p.opts.ArchiveDir, 0o755); err != nil {
		return domain.IOError("create archive directory", err)
	}
	dest := filepath.Join(p.opts.ArchiveDir, filepath.Base(path))
	if err := moveFile(path, dest); err != nil {
		return domain.IOError("move document to archive", err)
	}
	return nil
}

func (p *Pipeline) alreadyProcessed(ctx context.Context, digest string) bool {
	if p.processed == nil {
		return false
	}
	_, err := p.processed.Get(ctx, digest)
	return err == nil
}

func (p *Pipeline) markProcessed(ctx context.Context, digest string) {
	if p.processed == nil {
		return
	}
	if err := p.processed.Set(ctx, digest, []byte(time.Now().UTC().Format(time.RFC3339)), 0); err != nil {
		p.log.Warn().Err(err).Msg("failed to record processed digest")
	}
}

// fileDigest returns the hex SHA-256 of the file contents.
func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// moveFile renames, falling back to copy-and-remove across filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("copy to archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

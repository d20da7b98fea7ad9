package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/AzadNikarthil/rollscan/internal/extract"
	"github.com/AzadNikarthil/rollscan/internal/ocr"
	"github.com/AzadNikarthil/rollscan/internal/pipeline"
	"github.com/AzadNikarthil/rollscan/internal/raster"
	"github.com/AzadNikarthil/rollscan/internal/storage"
)

var (
	processInputDir   string
	processArchiveDir string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every roll PDF under the input directory",
	Long: `Recursively discovers PDF files under the input directory and runs each
through the extraction pipeline. Successfully processed documents are moved to
the archive directory; failed documents stay in place for a later retry.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processInputDir, "input", "", "directory containing roll PDFs (required)")
	processCmd.Flags().StringVar(&processArchiveDir, "archive", "", "directory for processed PDFs (required)")
	processCmd.MarkFlagRequired("input")
	processCmd.MarkFlagRequired("archive")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	store, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	processed, err := newCache(cfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer processed.Close()

	paths, err := discoverPDFs(processInputDir)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}
	if len(paths) == 0 {
		log.Warn().Str("input", processInputDir).Msg("no PDF files found")
		return nil
	}
	log.Info().Int("documents", len(paths)).Str("input", processInputDir).Msg("documents discovered")

	engine := ocr.NewTesseractEngine()
	converter := raster.NewConverter(cfg.Raster.DPI, cfg.Raster.Workers)
	contextEx := extract.NewContextExtractor(log)
	cards := extract.NewCardExtractor(
		extract.Geometry{
			Rows:     cfg.Grid.Rows,
			Cols:     cfg.Grid.Cols,
			HeaderPx: cfg.Grid.HeaderPx,
			FooterPx: cfg.Grid.FooterPx,
		},
		engine,
		extract.NewCardParser(cfg.Grid.MinCardRunes),
		cfg.OCR.Language,
		cfg.Raster.DPI,
		log,
	)

	p := pipeline.New(log, converter, engine, contextEx, cards, store, processed, pipeline.Options{
		ArchiveDir:  processArchiveDir,
		TempRoot:    cfg.Pipeline.TempRoot,
		BatchSize:   cfg.Pipeline.BatchSize,
		Language:    cfg.OCR.Language,
		DPI:         cfg.Raster.DPI,
		PageTimeout: cfg.OCR.PageTimeout,
	})

	bar := progressbar.Default(int64(len(paths)), "processing")
	summary := p.Run(ctx, paths, func(res pipeline.DocumentResult) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	fmt.Println()
	color.Green("processed: %d documents (%d records inserted)", summary.Processed, summary.Records)
	if summary.Skipped > 0 {
		color.Yellow("skipped:   %d documents (already processed)", summary.Skipped)
	}
	if summary.Failed > 0 {
		color.Red("failed:    %d documents (left in place for retry)", summary.Failed)
	}
	return nil
}

// Package raster converts PDF documents into page-ordered image sequences.
package raster

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/sync/errgroup"

	"github.com/AzadNikarthil/rollscan/internal/domain"
)

// Converter renders PDF pages to lossless PNG images using go-fitz.
type Converter struct {
	dpi     int
	workers int
}

// NewConverter creates a converter rendering at the given DPI with a bounded
// page worker pool.
func NewConverter(dpi, workers int) *Converter {
	if workers < 1 {
		workers = 1
	}
	return &Converter{dpi: dpi, workers: workers}
}

// Convert rasterizes every page of the document at pdfPath into workDir and
// returns the pages in page-index order. The caller owns workDir and its
// cleanup. Any failure is a ConversionError: the document cannot be processed.
func (c *Converter) Convert(ctx context.Context, pdfPath, workDir string) ([]domain.PageImage, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, domain.ConversionError("open document", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, domain.ConversionError("document has no pages", nil)
	}

	pages := make([]domain.PageImage, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i := 0; i < pageCount; i++ {
		pageIdx := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			// fitz serializes rendering internally; the pool still buys
			// parallel PNG encoding and file IO.
			img, err := doc.ImageDPI(pageIdx, float64(c.dpi))
			if err != nil {
				return domain.ConversionError(fmt.Sprintf("render page %d", pageIdx+1), err)
			}

			outPath := filepath.Join(workDir, fmt.Sprintf("page_%03d.png", pageIdx+1))
			f, err := os.Create(outPath)
			if err != nil {
				return domain.IOError(fmt.Sprintf("create output for page %d", pageIdx+1), err)
			}

			if err := png.Encode(f, img); err != nil {
				f.Close()
				return domain.ConversionError(fmt.Sprintf("encode page %d", pageIdx+1), err)
			}
			if err := f.Close(); err != nil {
				return domain.IOError(fmt.Sprintf("close output for page %d", pageIdx+1), err)
			}

			bounds := img.Bounds()
			pages[pageIdx] = domain.PageImage{
				PageNumber: pageIdx + 1,
				ImagePath:  outPath,
				Width:      bounds.Dx(),
				Height:     bounds.Dy(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if domain.KindOf(err) != "" {
			return nil, err
		}
		return nil, domain.ConversionError("rasterize document", err)
	}

	return pages, nil
}

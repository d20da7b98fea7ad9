package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/AzadNikarthil/rollscan/internal/domain"
	"github.com/AzadNikarthil/rollscan/internal/observability"
	"github.com/AzadNikarthil/rollscan/internal/ocr"
)

// CardExtractor partitions content pages into grid cells, recognizes each
// cell image and parses it into voter card candidates.
type CardExtractor struct {
	geom     Geometry
	engine   ocr.Engine
	parser   *CardParser
	language string
	dpi      int
	log      *observability.Logger
}

// NewCardExtractor creates a card extractor with an injected grid geometry.
func NewCardExtractor(geom Geometry, engine ocr.Engine, parser *CardParser, language string, dpi int, log *observability.Logger) *CardExtractor {
	return &CardExtractor{
		geom:     geom,
		engine:   engine,
		parser:   parser,
		language: language,
		dpi:      dpi,
		log:      log,
	}
}

// ExtractPage yields the promoted candidates of one content page in row-major
// cell order. Per-cell recognition failures and rejected cards are logged and
// skipped; only a page the extractor cannot read at all is an error, and the
// caller decides whether that fails the document.
func (x *CardExtractor) ExtractPage(ctx context.Context, page domain.PageImage) ([]*domain.VoterCardCandidate, error) {
	f, err := os.Open(page.ImagePath)
	if err != nil {
		return nil, domain.IOError(fmt.Sprintf("open page %d image", page.PageNumber), err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return nil, domain.ExtractionError(fmt.Sprintf("decode page %d image", page.PageNumber), err)
	}

	cells := x.geom.Cells(page.Width, page.Height, page.PageNumber)
	if cells == nil {
		x.log.Warn().Int("page", page.PageNumber).
			Int("width", page.Width).Int("height", page.Height).
			Msg("grid margins leave no card area on page")
		return nil, nil
	}

	var candidates []*domain.VoterCardCandidate
	for _, cell := range cells {
		if err := ctx.Err(); err != nil {
			return candidates, err
		}

		cellPNG, err := cropPNG(img, cell.Bounds)
		if err != nil {
			x.log.Warn().Err(err).Int("page", page.PageNumber).Int("serial", cell.Serial).
				Msg("failed to crop card cell")
			continue
		}

		res, err := x.engine.Recognize(ctx, ocr.Input{
			ID:       fmt.Sprintf("p%d-s%d", page.PageNumber, cell.Serial),
			Image:    cellPNG,
			Language: x.language,
			DPI:      x.dpi,
		})
		if err != nil {
			x.log.Warn().Err(err).Int("page", page.PageNumber).Int("serial", cell.Serial).
				Msg("card recognition failed")
			continue
		}

		cand, err := x.parser.Parse(res.PlainText, cell.Serial)
		if err != nil {
			x.log.Debug().Int("page", page.PageNumber).Int("serial", cell.Serial).
				Msg("card rejected: no identifier or name")
			continue
		}
		if cand == nil {
			continue // empty slot
		}

		x.log.Debug().Int("serial", cand.Serial).Str("epic_id", cand.EpicID).
			Msg("extracted voter card")
		candidates = append(candidates, cand)
	}

	return candidates, nil
}

// cropPNG extracts the cell region and re-encodes it for the OCR engine.
func cropPNG(img image.Image, bounds image.Rectangle) ([]byte, error) {
	rect := bounds.Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("cell outside page bounds")
	}
	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image does not support sub-image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, sub.SubImage(rect)); err != nil {
		return nil, fmt.Errorf("encode cell: %w", err)
	}
	return buf.Bytes(), nil
}

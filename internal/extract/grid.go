package extract

import (
	"image"

	"github.com/AzadNikarthil/rollscan/internal/domain"
)

// Geometry describes the fixed card grid on content pages. Header and footer
// bands are excluded from the vertical extent before the grid is divided.
type Geometry struct {
	Rows     int
	Cols     int
	HeaderPx int
	FooterPx int
}

// firstContentPage is the page on which voter cards begin. Pages 1 and 2
// carry the metadata form and the precinct map.
const firstContentPage = 3

// Cells partitions a page of the given pixel size into row-major grid cells.
// pageNumber must be >= 3. Serial numbering resumes across pages assuming a
// constant grid size on every content page; a source whose later pages use a
// different grid gets wrong serials, which is cosmetic, not identity.
func (g Geometry) Cells(width, height, pageNumber int) []domain.GridCell {
	gridHeight := height - g.HeaderPx - g.FooterPx
	cellWidth := width / g.Cols
	cellHeight := gridHeight / g.Rows
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil
	}

	base := (pageNumber-firstContentPage)*g.Rows*g.Cols + 1

	cells := make([]domain.GridCell, 0, g.Rows*g.Cols)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			left := col * cellWidth
			top := g.HeaderPx + row*cellHeight
			cells = append(cells, domain.GridCell{
				Row:    row,
				Col:    col,
				Bounds: image.Rect(left, top, left+cellWidth, top+cellHeight),
				Serial: base + row*g.Cols + col,
			})
		}
	}
	return cells
}

package document

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Panel composition merges groups of frames into single page images laid
// out on a two-column grid. The canvas is sized from the page's physical
// dimensions at 300 DPI so composed pages keep print-grade resolution.
const (
	panelDPI      = 300
	panelColumns  = 2
	panelMarginPx = 60
	panelGutterPx = 40
)

// ComposePanels partitions images into groups of perPage and composes each
// multi-image group onto one canvas. Groups of exactly one image pass
// through untouched. perPage below 2 disables composition entirely.
func ComposePanels(images []image.Image, perPage int, size PageSize, bg color.Color) []image.Image {
	if perPage < 2 {
		return images
	}
	out := make([]image.Image, 0, (len(images)+perPage-1)/perPage)
	for start := 0; start < len(images); start += perPage {
		end := start + perPage
		if end > len(images) {
			end = len(images)
		}
		group := images[start:end]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, composeGroup(group, size, bg))
	}
	return out
}

// composeGroup lays panels on the grid: row i/2, column i mod 2. Each panel
// is aspect-fit into its cell and centered, padded by the background color.
func composeGroup(group []image.Image, size PageSize, bg color.Color) image.Image {
	canvasW := int(size.W / mmPerInch * panelDPI)
	canvasH := int(size.H / mmPerInch * panelDPI)
	rows := (len(group) + panelColumns - 1) / panelColumns

	cellW := (canvasW - 2*panelMarginPx - (panelColumns-1)*panelGutterPx) / panelColumns
	cellH := (canvasH - 2*panelMarginPx - (rows-1)*panelGutterPx) / rows

	canvas := imaging.New(canvasW, canvasH, bg)
	for i, img := range group {
		row := i / panelColumns
		col := i % panelColumns
		fitted := imaging.Fit(img, cellW, cellH, imaging.Lanczos)
		x := panelMarginPx + col*(cellW+panelGutterPx) + (cellW-fitted.Bounds().Dx())/2
		y := panelMarginPx + row*(cellH+panelGutterPx) + (cellH-fitted.Bounds().Dy())/2
		canvas = imaging.Paste(canvas, fitted, image.Pt(x, y))
	}
	return canvas
}

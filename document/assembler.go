// Package document assembles canonical frames into a paginated PDF
// artifact, one page per image or per composed panel group.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"flipbook/frame"
	"flipbook/models"
	"flipbook/preset"
)

const (
	marginMM             = 10.0
	pageNumFontPt        = 9.0
	defaultQuality       = 85
	defaultPanelsPerPage = 2
)

// Assemble builds the document artifact from canonical frames, in order.
// Every page is sized per the resolved format; each image is scaled to the
// largest fit inside the margins and centered on both axes. Any page
// failure aborts the whole document.
func Assemble(frames []frame.Frame, opts models.Options, p preset.Preset) (*models.EncodedArtifact, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to assemble")
	}

	quality := opts.EmbedQuality
	if quality < 1 || quality > 100 {
		quality = defaultQuality
	}

	// Page size is resolved from the first original frame, before any panel
	// composition changes aspect ratios.
	size := ResolvePageSize(opts.PageFormat, frames[0].Image)

	images := make([]image.Image, len(frames))
	for i, f := range frames {
		images[i] = f.Image
	}
	// Requesting one panel per page still means panel mode; it just gets the
	// default group size.
	perPage := opts.PanelsPerPage
	if perPage == 1 {
		perPage = defaultPanelsPerPage
	}
	if perPage >= 2 {
		images = ComposePanels(images, perPage, size, color.White)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: size.W, Ht: size.H},
	})
	pdf.SetCompression(true)
	pdf.SetTitle("Image Flipbook", true)
	pdf.SetAuthor("flipbook", true)
	pdf.SetSubject("Generated image collection", true)
	pdf.SetKeywords("flipbook images collection", true)
	pdf.SetCreator("flipbook", true)
	pdf.SetCreationDate(time.Now())
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", pageNumFontPt)

	for i, img := range images {
		if err := addPage(pdf, img, i, size, quality, opts); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}

	return &models.EncodedArtifact{
		Kind:   models.KindDocument,
		Data:   buf.Bytes(),
		Size:   buf.Len(),
		Frames: len(images),
		Settings: models.Settings{
			Tier:       p.Tier,
			Colors:     p.Colors,
			Width:      opts.Width,
			Height:     opts.Height,
			PageFormat: opts.PageFormat,
			Quality:    quality,
		},
	}, nil
}

func addPage(pdf *fpdf.Fpdf, img image.Image, index int, size PageSize, quality int, opts models.Options) error {
	embed, px, err := encodeForEmbed(img, size, quality, opts.Optimize)
	if err != nil {
		return err
	}

	pdf.AddPage()
	name := fmt.Sprintf("page-%d", index)
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(embed))
	if pdf.Err() {
		return pdf.Error()
	}

	w, h := fitRect(float64(px.X), float64(px.Y), size.W-2*marginMM, size.H-2*marginMM)
	x := (size.W - w) / 2
	y := (size.H - h) / 2
	pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
	if pdf.Err() {
		return pdf.Error()
	}

	if opts.PageNumbers {
		label := strconv.Itoa(index + 1)
		lw := pdf.GetStringWidth(label)
		pdf.Text((size.W-lw)/2, size.H-marginMM/2, label)
	}
	return nil
}

// encodeForEmbed re-encodes one page image as JPEG at the requested quality,
// optionally downscaled first to the page's effective pixel resolution at a
// DPI stepped from that quality. Returns the bytes and the final pixel size.
func encodeForEmbed(img image.Image, size PageSize, quality int, optimize bool) ([]byte, image.Point, error) {
	if optimize {
		dpi := dpiForQuality(quality)
		maxW := int(size.W / mmPerInch * float64(dpi))
		maxH := int(size.H / mmPerInch * float64(dpi))
		b := img.Bounds()
		if b.Dx() > maxW || b.Dy() > maxH {
			img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("embed encode: %w", err)
	}
	return buf.Bytes(), img.Bounds().Size(), nil
}

func dpiForQuality(q int) int {
	switch {
	case q >= 90:
		return 300
	case q >= 70:
		return 200
	default:
		return 150
	}
}

// fitRect scales (w, h) to the largest rectangle inside (maxW, maxH) that
// preserves the aspect ratio.
func fitRect(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	r := math.Min(maxW/w, maxH/h)
	return w * r, h * r
}

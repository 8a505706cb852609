package pdf

import (
	"bytes"
	"os"
	"path/filepath"

	"certificates-backend/internal/domains/certificate/render"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
)

// Factory builds one-shot fpdf canvases for certificate rendering. When the
// configured TTF files exist they are embedded as UTF-8 fonts; otherwise the
// canvas falls back to the built-in Helvetica with codepage translation,
// which covers Portuguese accents.
type Factory struct {
	FontDir     string
	RegularFont string // e.g. Merriweather-Regular.ttf
	BoldFont    string // e.g. Merriweather-Bold.ttf
}

// NewCanvas creates a blank landscape A4 page with no header or footer.
func (f Factory) NewCanvas() render.Canvas {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	c := &canvas{doc: doc, translate: func(s string) string { return s }}

	regular := filepath.Join(f.FontDir, f.RegularFont)
	bold := filepath.Join(f.FontDir, f.BoldFont)
	if fileExists(regular) && fileExists(bold) {
		doc.AddUTF8Font(familyRegular, "", regular)
		doc.AddUTF8Font(familyBold, "", bold)
		c.embedded = true
	} else {
		c.translate = doc.UnicodeTranslatorFromDescriptor("")
	}
	return c
}

const (
	familyRegular = "CertRegular"
	familyBold    = "CertBold"
)

type canvas struct {
	doc       *fpdf.Fpdf
	embedded  bool
	translate func(string) string
}

func (c *canvas) DrawImage(name string, data []byte, x, y, w, h float64) {
	imageType := sniffImageType(data)
	if imageType == "" {
		log.Warn().Str("image", name).Msg("unsupported image format, skipping")
		return
	}
	opts := fpdf.ImageOptions{ImageType: imageType}
	c.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	c.doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

func (c *canvas) SetFont(family string, size float64) {
	name := "Helvetica"
	style := ""
	switch {
	case c.embedded && family == render.FontBold:
		name = familyBold
	case c.embedded:
		name = familyRegular
	case family == render.FontBold:
		style = "B"
	}
	c.doc.SetFont(name, style, size)
}

func (c *canvas) SetTextColor(r, g, b int) { c.doc.SetTextColor(r, g, b) }

func (c *canvas) TextWidth(text string) float64 {
	return c.doc.GetStringWidth(c.text(text))
}

func (c *canvas) WriteLine(h float64, text string) {
	c.doc.CellFormat(0, h, c.text(text), "", 1, "C", false, 0, "")
}

func (c *canvas) Spacer(h float64) {
	c.doc.CellFormat(0, h, "", "", 1, "C", false, 0, "")
}

func (c *canvas) Y() float64     { return c.doc.GetY() }
func (c *canvas) SetY(y float64) { c.doc.SetY(y) }

func (c *canvas) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *canvas) text(s string) string {
	if c.embedded {
		return s
	}
	return c.translate(s)
}

func sniffImageType(data []byte) string {
	switch {
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("\x89PNG")):
		return "PNG"
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "JPG"
	default:
		return ""
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

package render

// Canvas abstracts the fixed-page document a certificate is drawn on,
// line by line from top to bottom. Implemented by the fpdf adapter in
// internal/infrastructure/pdf; tests use an in-memory fake.
type Canvas interface {
	// DrawImage places an image decoded from data at the given position.
	// Implementations must not fail the whole document on a bad image.
	DrawImage(name string, data []byte, x, y, w, h float64)

	// SetFont selects family ("regular" or "bold") and size in points.
	SetFont(family string, size float64)

	SetTextColor(r, g, b int)

	// TextWidth measures text at the currently selected font and size.
	TextWidth(text string) float64

	// WriteLine writes one horizontally centered line of the given height
	// and moves the cursor to the next line.
	WriteLine(h float64, text string)

	// Spacer advances the cursor by an empty line of the given height.
	Spacer(h float64)

	Y() float64
	// SetY moves the cursor; negative values are measured from the page bottom.
	SetY(y float64)

	// Output renders the finished page to bytes.
	Output() ([]byte, error)
}

// Font family keys understood by Canvas implementations.
const (
	FontRegular = "regular"
	FontBold    = "bold"
)

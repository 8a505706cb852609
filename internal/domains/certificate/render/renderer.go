package render

import (
	"fmt"
	"math"
	"time"
)

// Page geometry for a landscape A4 certificate, in millimeters.
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	maxNameWidth = 287.0
	baseNameSize = 30.0
)

// Document carries everything needed to draw one certificate. The renderer
// never touches storage; the background image comes in as bytes and may be
// nil, in which case the certificate is drawn on a blank page.
type Document struct {
	Name       string
	Role       string
	Hours      string
	WithHours  bool
	EventName  string
	DateStart  time.Time
	DateEnd    time.Time
	Hash       string
	Background []byte
}

// Options holds the fixed phrases and identity of the issuing organization.
type Options struct {
	Locale        Locale
	Title         string
	IssuerLine    string
	DefaultRole   string
	SignerName    string
	SignerRole    string
	ValidationURL string
	// SignatureImage is an optional PNG stamped over the signature line.
	SignatureImage []byte
}

// DefaultOptions returns the phrases used by the hosted instance.
func DefaultOptions() Options {
	return Options{
		Locale:        LocalePTBR,
		Title:         "CERTIFICADO",
		IssuerLine:    "O grupo organizador do evento certifica que",
		DefaultRole:   "ouvinte",
		SignerName:    "",
		SignerRole:    "",
		ValidationURL: "",
	}
}

type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// RolePhrase builds the fragment naming the subject's role. The default role
// reads as plain participation and adds nothing.
func (r *Renderer) RolePhrase(role string) string {
	if role == "" || role == r.opts.DefaultRole {
		return ""
	}
	if r.opts.Locale == LocaleEN {
		return " as " + role
	}
	return " como " + role
}

// Render draws one certificate onto the canvas and returns the final bytes.
func (r *Renderer) Render(c Canvas, doc Document) ([]byte, error) {
	c.SetTextColor(0, 0, 0)
	if doc.Background != nil {
		c.DrawImage("background", doc.Background, 0, 0, pageWidth, pageHeight)
	}

	// Header
	c.SetY(15)
	c.SetFont(FontRegular, 35)
	c.WriteLine(10, r.opts.Title)

	c.SetFont(FontRegular, 13)
	c.Spacer(5)
	c.WriteLine(5, r.opts.IssuerLine)
	c.Spacer(5)

	// Participant name, abbreviated and shrunk as needed
	c.SetFont(FontRegular, baseNameSize)
	name, size := FitName(doc.Name, maxNameWidth, baseNameSize, func(text string, size float64) float64 {
		c.SetFont(FontRegular, size)
		return c.TextWidth(text)
	})
	c.SetFont(FontRegular, size)
	c.WriteLine(10, name)
	c.Spacer(5)

	// Participation phrase
	c.SetFont(FontRegular, 13)
	if r.opts.Locale == LocaleEN {
		c.WriteLine(5, fmt.Sprintf("participated%s in the event", r.RolePhrase(doc.Role)))
	} else {
		c.WriteLine(5, fmt.Sprintf("participou%s do evento", r.RolePhrase(doc.Role)))
	}
	c.Spacer(5)

	// Event name, bold, shrunk by character count on long names
	c.SetFont(FontBold, eventNameSize(doc.EventName))
	c.WriteLine(10, doc.EventName)
	c.Spacer(5)

	// Date range and credit hours
	c.SetFont(FontRegular, 13)
	c.WriteLine(5, r.timePhrase(doc))
	c.Spacer(15)

	// Signature block
	if r.opts.SignerName != "" {
		if r.opts.SignatureImage != nil {
			y := c.Y()
			c.DrawImage("signature", r.opts.SignatureImage, 131, y-5, 35, 16)
		}
		c.WriteLine(5, "______________________")
		c.WriteLine(10, r.opts.SignerName)
		c.SetFont(FontRegular, 11)
		c.WriteLine(5, r.opts.SignerRole)
	}

	// Validation footer pinned to the page bottom
	c.SetY(-16.5)
	c.SetFont(FontRegular, 8.8)
	c.WriteLine(5, r.validationPhrase(doc.Hash))

	return c.Output()
}

func (r *Renderer) timePhrase(doc Document) string {
	date := FormatDateRange(doc.DateStart, doc.DateEnd, r.opts.Locale)
	if !doc.WithHours || doc.Hours == "" {
		return date + "."
	}
	if r.opts.Locale == LocaleEN {
		return fmt.Sprintf("%s (Credit hours: %s).", date, doc.Hours)
	}
	return fmt.Sprintf("%s (Carga horária: %s).", date, doc.Hours)
}

func (r *Renderer) validationPhrase(hash string) string {
	if r.opts.Locale == LocaleEN {
		return fmt.Sprintf("The validity of this document can be checked at %s. The hash code for validation is: %s",
			r.opts.ValidationURL, hash)
	}
	return fmt.Sprintf("A validade deste documento pode ser checada em %s. O código de validação é: %s",
		r.opts.ValidationURL, hash)
}

// eventNameSize caps the event title at 20pt and shrinks proportionally to
// the character count once the title passes 62 characters.
func eventNameSize(name string) float64 {
	n := len([]rune(name))
	if n == 0 {
		return 20
	}
	return math.Min(20, math.Floor(62*20/float64(n)))
}

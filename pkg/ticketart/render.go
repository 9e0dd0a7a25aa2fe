// Package ticketart renders the downloadable PNG for a sold ticket.
package ticketart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 700
	Height = 400
	qrSize = 150
)

var (
	gold  = color.RGBA{0xFF, 0xD7, 0x00, 0xFF}
	white = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	light = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	muted = color.RGBA{0xBD, 0xBD, 0xBD, 0xFF}
)

// Card holds everything printed on a ticket
type Card struct {
	TicketID     string
	TicketNumber string
	SchemeID     string
	FullName     string
	Mobile       string
	State        string
	AmountPaid   float64
	PaymentID    string
	PurchaseDate time.Time
	// QRContent defaults to a payment reference URL built from TicketID.
	QRContent string
}

// Location used for printed purchase times.
var Location = loadLocation("Asia/Kolkata")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// Render draws the ticket card and returns it PNG-encoded.
func Render(card Card) ([]byte, error) {
	if card.TicketNumber == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	content := card.QRContent
	if content == "" {
		content = "https://pay.example.com/" + card.TicketID
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code, err = barcode.Scale(code, qrSize, qrSize)
	if err != nil {
		return nil, fmt.Errorf("scale qr: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(canvas)

	drawCentered(canvas, "LOTTERY TICKET", 60, 3, white)
	drawCentered(canvas, card.TicketNumber, 125, 4, gold)

	drawText(canvas, "Name: "+card.FullName, 40, 180, 2, light)
	drawText(canvas, "Mobile: "+card.Mobile, 40, 210, 2, light)
	drawText(canvas, "State: "+card.State, 40, 240, 2, light)

	draw.Draw(canvas, image.Rect(520, 120, 520+qrSize, 120+qrSize), code, image.Point{}, draw.Src)

	for x := 40; x < Width-40; x++ {
		canvas.Set(x, 280, gold)
	}

	purchased := card.PurchaseDate.In(Location)
	drawText(canvas, fmt.Sprintf("Amount Paid: Rs.%g", card.AmountPaid), 40, 310, 1, muted)
	drawText(canvas, "Scheme ID: "+card.SchemeID, 370, 310, 1, muted)
	drawText(canvas, "Payment ID: "+card.PaymentID, 40, 340, 1, muted)
	drawText(canvas, "Purchase Time: "+purchased.Format("03:04 PM"), 370, 340, 1, muted)
	drawText(canvas, "Purchase Date: "+purchased.Format("2/1/2006"), 40, 370, 1, muted)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// fillGradient paints a diagonal #434343 to #000000 gradient.
func fillGradient(img *image.RGBA) {
	span := float64(Width + Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			v := uint8(0x43 * (1 - float64(x+y)/span))
			img.SetRGBA(x, y, color.RGBA{v, v, v, 0xFF})
		}
	}
}

func textWidth(s string, scale int) int {
	face := basicfont.Face7x13
	return font.MeasureString(face, s).Ceil() * scale
}

func drawCentered(dst *image.RGBA, s string, baseline, scale int, c color.Color) {
	drawText(dst, s, (Width-textWidth(s, scale))/2, baseline, scale, c)
}

// drawText writes s with its baseline at y. The bitmap face is enlarged by an integer scale.
func drawText(dst *image.RGBA, s string, x, y, scale int, c color.Color) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	if w == 0 {
		return
	}
	h := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(s)

	top := y - ascent*scale
	target := image.Rect(x, top, x+w*scale, top+h*scale)
	draw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Over, nil)
}

package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

// A4 landscape, in mm.
const (
	pdfPageWidth  = 297.0
	pdfPageHeight = 210.0
	pdfMargin     = 15.0
	pdfHeader     = 12.0
	pdfQRSize     = 28.0
	pdfFont       = "Helvetica"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	palette styles.Palette
	title   string
	link    string
}

// WithPDFPalette sets the colors. Defaults to the modern palette.
func WithPDFPalette(p styles.Palette) PDFOption { return func(r *pdfRenderer) { r.palette = p } }

// WithPDFTitle sets the heading and document title.
func WithPDFTitle(t string) PDFOption { return func(r *pdfRenderer) { r.title = t } }

// WithPDFLink stamps a QR code pointing at url in the page corner.
func WithPDFLink(url string) PDFOption { return func(r *pdfRenderer) { r.link = url } }

// RenderPDF draws the plan on an A4 landscape page, scaled to fit, followed
// by a room schedule page.
func RenderPDF(res grid.Result, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{palette: styles.For(styles.Modern), title: "Floor plan"}
	for _, opt := range opts {
		opt(&r)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(r.title, true)
	pdf.SetCreator("dreamhouse", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	drawPlanPage(pdf, tr, res, r)
	if r.link != "" {
		if err := stampQR(pdf, r.link); err != nil {
			return nil, err
		}
	}

	pdf.AddPage()
	drawSchedulePage(pdf, tr, res, r)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

func drawPlanPage(pdf *fpdf.Fpdf, tr func(string) string, res grid.Result, r pdfRenderer) {
	pdf.SetFont(pdfFont, "B", 14)
	pdf.SetXY(pdfMargin, pdfMargin)
	pdf.CellFormat(pdfPageWidth-2*pdfMargin, pdfHeader, tr(r.title), "", 0, "L", false, 0, "")

	drawW := pdfPageWidth - 2*pdfMargin
	drawH := pdfPageHeight - 2*pdfMargin - pdfHeader - 5
	scale := 1.0
	if res.Width > 0 && res.Height > 0 {
		scale = math.Min(drawW/res.Width, drawH/res.Height)
	}
	offX := pdfMargin + (drawW-res.Width*scale)/2
	offY := pdfMargin + pdfHeader + 5

	setDraw(pdf, r.palette.Wall)
	pdf.SetLineWidth(0.2)
	pdf.Rect(offX, offY, res.Width*scale, res.Height*scale, "D")

	for _, room := range res.Rooms {
		x, y := offX+room.Rect.X*scale, offY+room.Rect.Y*scale
		w, h := math.Max(0, room.Rect.Width*scale), math.Max(0, room.Rect.Height*scale)
		setFill(pdf, r.palette.Cell)
		setDraw(pdf, r.palette.Wall)
		pdf.SetLineWidth(0.5)
		pdf.RoundedRect(x, y, w, h, cellRadius*scale, "1234", "FD")

		inset := innerInset * scale
		setFill(pdf, r.palette.Primary)
		pdf.RoundedRect(x+inset, y+inset, math.Max(0, w-2*inset), math.Max(0, h-2*inset), innerRadius*scale, "1234", "F")

		setText(pdf, r.palette.Text)
		pdf.SetFont(pdfFont, "B", 10)
		pdf.SetXY(x+labelOffsetX*scale, y+inset+1)
		pdf.CellFormat(math.Max(0, w-2*inset), 5, tr(room.Label), "", 0, "L", false, 0, "")
		setText(pdf, r.palette.Muted)
		pdf.SetFont(pdfFont, "", 8)
		pdf.SetXY(x+labelOffsetX*scale, y+inset+6)
		pdf.CellFormat(math.Max(0, w-2*inset), 4, tr(room.IDText), "", 0, "L", false, 0, "")
	}

	for _, ex := range res.Extras {
		x, y := offX+ex.Rect.X*scale, offY+ex.Rect.Y*scale
		w, h := ex.Rect.Width*scale, ex.Rect.Height*scale
		setFill(pdf, r.palette.ExtraFill(ex.Extra.Type))
		setDraw(pdf, r.palette.Wall)
		pdf.SetLineWidth(0.3)
		pdf.RoundedRect(x, y, w, h, extraRadius*scale, "1234", "FD")
		setText(pdf, r.palette.Text)
		pdf.SetFont(pdfFont, "", 9)
		pdf.SetXY(x, y)
		pdf.CellFormat(w, h, tr(ex.Label), "", 0, "C", false, 0, "")
	}
}

func drawSchedulePage(pdf *fpdf.Fpdf, tr func(string) string, res grid.Result, r pdfRenderer) {
	pdf.SetFont(pdfFont, "B", 14)
	pdf.SetXY(pdfMargin, pdfMargin)
	setText(pdf, r.palette.Text)
	pdf.CellFormat(pdfPageWidth-2*pdfMargin, pdfHeader, tr(r.title+": room schedule"), "", 1, "L", false, 0, "")

	cols := []struct {
		title string
		width float64
		align string
	}{
		{"#", 12, "R"},
		{"ID", 40, "L"},
		{"Type", 50, "L"},
		{"Width", 30, "R"},
		{"Depth", 30, "R"},
		{"Area", 30, "R"},
		{"Column", 25, "R"},
		{"Row", 25, "R"},
	}

	pdf.SetX(pdfMargin)
	pdf.SetFont(pdfFont, "B", 10)
	setFill(pdf, r.palette.Ground)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 10)
	for i, room := range res.Rooms {
		fp := room.Room.Footprint()
		cells := []string{
			fmt.Sprintf("%d", i+1),
			tr(room.IDText),
			tr(room.Label),
			fmt.Sprintf("%.1f", fp.Width),
			fmt.Sprintf("%.1f", fp.Depth),
			fmt.Sprintf("%.1f", fp.Area()),
			fmt.Sprintf("%d", room.Column+1),
			fmt.Sprintf("%d", room.Row+1),
		}
		pdf.SetX(pdfMargin)
		for j, c := range cols {
			pdf.CellFormat(c.width, 6, cells[j], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(res.Extras) > 0 {
		pdf.Ln(4)
		pdf.SetX(pdfMargin)
		pdf.SetFont(pdfFont, "B", 10)
		pdf.CellFormat(60, 7, "Extras", "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		for _, ex := range res.Extras {
			pdf.SetX(pdfMargin)
			setFill(pdf, r.palette.ExtraFill(ex.Extra.Type))
			pdf.CellFormat(6, 6, "", "1", 0, "L", true, 0, "")
			pdf.CellFormat(60, 6, " "+tr(ex.Label), "", 1, "L", false, 0, "")
		}
	}
}

func stampQR(pdf *fpdf.Fpdf, link string) error {
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "encode qr code")
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr-link", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr-link", pdfPageWidth-pdfMargin-pdfQRSize, pdfMargin-4, pdfQRSize, pdfQRSize, false, opts, 0, link)
	return nil
}

func setFill(pdf *fpdf.Fpdf, hex string) {
	r, g, b, _ := styles.ParseHex(hex)
	pdf.SetFillColor(r, g, b)
}

func setDraw(pdf *fpdf.Fpdf, hex string) {
	r, g, b, _ := styles.ParseHex(hex)
	pdf.SetDrawColor(r, g, b)
}

func setText(pdf *fpdf.Fpdf, hex string) {
	r, g, b, _ := styles.ParseHex(hex)
	pdf.SetTextColor(r, g, b)
}

package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/quotemint/quotegen/internal/domain"
)

// asciiCurrency replaces the configured currency symbol in PDF output when no
// UTF-8 font is configured. The built-in core fonts cannot encode "₹".
const asciiCurrency = "Rs. "

// RenderPDF renders the quotation as an A4 PDF document.
// Implements ports.QuotationRenderer.
func (r *Renderer) RenderPDF(record *domain.QuotationRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("render: record is nil")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quotation "+record.QuotationNumber, false)

	font, text, currency := r.pdfFont(pdf)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("loading PDF fonts: %w", err)
	}

	money := func(s string) string {
		if currency != r.currency {
			// Amounts carry the configured symbol; swap in the
			// ASCII marker for the core-font fallback.
			s = currency + s[len(r.currency):]
		}
		return text(s)
	}

	pdf.AddPage()

	pdf.SetFont(font, "B", 18)
	pdf.Cell(0, 10, "Quotation")
	pdf.Ln(10)

	pdf.SetFont(font, "", 10)
	pdf.Cell(0, 5, "Quotation No: "+record.QuotationNumber)
	pdf.Ln(5)
	pdf.Cell(0, 5, "Customer ID: "+record.CustomerID)
	pdf.Ln(5)
	pdf.Cell(0, 5, "Date: "+record.Date.Format(dateLayout))
	pdf.Ln(8)

	pdf.SetFont(font, "B", 11)
	pdf.Cell(0, 6, text(record.Client))
	pdf.Ln(6)

	pdf.SetFont(font, "", 10)
	for _, line := range []string{record.Company, record.Address, record.Phone} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 5, text(line))
		pdf.Ln(5)
	}

	pdf.Ln(4)
	pdf.SetFillColor(44, 62, 80)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(font, "B", 10)
	pdf.CellFormat(10, 7, "#", "", 0, "L", true, 0, "")
	pdf.CellFormat(80, 7, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "", 1, "R", true, 0, "")

	pdf.SetTextColor(34, 34, 34)
	pdf.SetFont(font, "", 10)
	for i, item := range record.Items {
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", i+1), "B", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, text(truncate(item.Name, 48)), "B", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Quantity), "B", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, money(r.money(item.UnitPrice)), "B", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, money(r.money(item.Total)), "B", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont(font, "", 10)
	pdf.CellFormat(150, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, money(r.money(record.ItemTotal)), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 6, "GST (18%)", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, money(r.money(record.Tax)), "", 1, "R", false, 0, "")

	pdf.SetFont(font, "B", 11)
	pdf.CellFormat(150, 8, "Grand Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, money(r.money(record.GrandTotal)), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF output: %w", err)
	}

	return buf.Bytes(), nil
}

// pdfFont registers the configured UTF-8 fonts when available. Returns the
// font family, the text translator for that family, and the currency marker.
// The core-font fallback needs its text translated to cp1252.
func (r *Renderer) pdfFont(pdf *gofpdf.Fpdf) (family string, text func(string) string, currency string) {
	if r.fontPath == "" {
		return "Helvetica", pdf.UnicodeTranslatorFromDescriptor(""), asciiCurrency
	}

	pdf.AddUTF8Font("Document", "", r.fontPath)

	boldPath := r.boldFontPath
	if boldPath == "" {
		boldPath = r.fontPath
	}
	pdf.AddUTF8Font("Document", "B", boldPath)

	return "Document", func(s string) string { return s }, r.currency
}

// truncate shortens item names so a line never overflows its table cell.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}

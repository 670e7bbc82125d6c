package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotemint/quotegen/internal/domain"
)

// documentTemplate is the quotation preview document. Monetary values arrive
// preformatted so the template stays free of formatting logic.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Quotation {{.QuotationNumber}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; margin: 40px; color: #222; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #2c3e50; padding-bottom: 12px; }
  .header h1 { margin: 0; color: #2c3e50; }
  .meta { text-align: right; font-size: 14px; }
  .party { margin-top: 24px; font-size: 14px; line-height: 1.5; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th { background: #2c3e50; color: #fff; padding: 8px; text-align: left; }
  td { border-bottom: 1px solid #ddd; padding: 8px; }
  td.amount, th.amount { text-align: right; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; font-size: 14px; }
  .totals td { padding: 4px 8px; }
  .totals .grand { font-weight: bold; border-top: 2px solid #2c3e50; }
</style>
</head>
<body>
<div class="header">
  <h1>Quotation</h1>
  <div class="meta">
    <div>Quotation No: {{.QuotationNumber}}</div>
    <div>Customer ID: {{.CustomerID}}</div>
    <div>Date: {{.Date}}</div>
  </div>
</div>
<div class="party">
  <strong>{{.Client}}</strong><br>
  {{- if .Company}}
  {{.Company}}<br>
  {{- end}}
  {{- if .Address}}
  {{.Address}}<br>
  {{- end}}
  {{- if .Phone}}
  {{.Phone}}
  {{- end}}
</div>
<table>
  <thead>
    <tr>
      <th>#</th>
      <th>Item</th>
      <th class="amount">Quantity</th>
      <th class="amount">Unit Price</th>
      <th class="amount">Total</th>
    </tr>
  </thead>
  <tbody>
    {{- range .Items}}
    <tr>
      <td>{{.Index}}</td>
      <td>{{.Name}}</td>
      <td class="amount">{{.Quantity}}</td>
      <td class="amount">{{.UnitPrice}}</td>
      <td class="amount">{{.Total}}</td>
    </tr>
    {{- end}}
  </tbody>
</table>
<table class="totals">
  <tr><td>Subtotal</td><td class="amount">{{.ItemTotal}}</td></tr>
  <tr><td>GST (18%)</td><td class="amount">{{.Tax}}</td></tr>
  <tr class="grand"><td>Grand Total</td><td class="amount">{{.GrandTotal}}</td></tr>
</table>
</body>
</html>
`

var documentTmpl = template.Must(template.New("quotation").Parse(documentTemplate))

// dateLayout renders generation dates as DD-MM-YYYY.
const dateLayout = "02-01-2006"

// documentView is the template's view model.
type documentView struct {
	Client          string
	Company         string
	Address         string
	Phone           string
	Date            string
	QuotationNumber string
	CustomerID      string
	Items           []documentItemView
	ItemTotal       string
	Tax             string
	GrandTotal      string
}

type documentItemView struct {
	Index     int
	Name      string
	Quantity  int64
	UnitPrice string
	Total     string
}

// RenderHTML renders the quotation as a standalone HTML document.
// Implements ports.QuotationRenderer.
func (r *Renderer) RenderHTML(record *domain.QuotationRecord) (string, error) {
	if record == nil {
		return "", fmt.Errorf("render: record is nil")
	}

	var b strings.Builder
	if err := documentTmpl.Execute(&b, r.viewOf(record)); err != nil {
		return "", fmt.Errorf("rendering quotation document: %w", err)
	}

	return b.String(), nil
}

// viewOf builds the template view model from a canonical record.
func (r *Renderer) viewOf(record *domain.QuotationRecord) documentView {
	items := make([]documentItemView, 0, len(record.Items))
	for i, item := range record.Items {
		items = append(items, documentItemView{
			Index:     i + 1,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: r.money(item.UnitPrice),
			Total:     r.money(item.Total),
		})
	}

	return documentView{
		Client:          record.Client,
		Company:         record.Company,
		Address:         record.Address,
		Phone:           record.Phone,
		Date:            record.Date.Format(dateLayout),
		QuotationNumber: record.QuotationNumber,
		CustomerID:      record.CustomerID,
		Items:           items,
		ItemTotal:       r.money(record.ItemTotal),
		Tax:             r.money(record.Tax),
		GrandTotal:      r.money(record.GrandTotal),
	}
}

// money formats an amount with the configured currency symbol and two
// decimal places.
func (r *Renderer) money(amount decimal.Decimal) string {
	return r.currency + amount.StringFixed(2)
}

// Package domain contains core business entities and rules.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GSTRate is the fixed Goods and Services Tax rate applied to the item total.
// The rate is a business constant, never inferred from oracle output.
var GSTRate = decimal.NewFromFloat(0.18)

// totalTolerance is the maximum difference allowed between an oracle-supplied
// line total and quantity*unit_price before the supplied value is discarded.
var totalTolerance = decimal.NewFromFloat(0.01)

// LineItem is a single priced line of a quotation.
type LineItem struct {
	// Name describes the quoted item.
	Name string

	// Quantity is the number of units. Always positive.
	Quantity int64

	// UnitPrice is the price per unit. Never negative.
	UnitPrice decimal.Decimal

	// Total is the reconciled line total, Quantity * UnitPrice within
	// rounding tolerance.
	Total decimal.Decimal
}

// QuotationRecord is the canonical, arithmetically consistent quotation
// produced by reconciliation. It is constructed fresh per request, handed to
// the renderer, and discarded; nothing persists it.
type QuotationRecord struct {
	// Client is the client's full name. Required.
	Client string

	// Company, Address and Phone are optional contact details.
	// They are always present on the record, possibly empty.
	Company string
	Address string
	Phone   string

	// Items is the ordered list of line items. At least one.
	Items []LineItem

	// ItemTotal is the exact sum of all line totals.
	ItemTotal decimal.Decimal

	// Tax is GSTRate applied to ItemTotal, rounded to 2 decimals.
	Tax decimal.Decimal

	// GrandTotal is ItemTotal + Tax, rounded to 2 decimals.
	GrandTotal decimal.Decimal

	// Date is the generation timestamp.
	Date time.Time

	// QuotationNumber and CustomerID are assigned once at reconciliation
	// and never reused within a process lifetime.
	QuotationNumber string
	CustomerID      string
}

// LineItemDraft is an unvalidated line item as decoded from an oracle reply.
// Numeric fields are pointers so that absence is distinguishable from zero.
type LineItemDraft struct {
	Name      string   `json:"item_name"`
	Quantity  *float64 `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
	Total     *float64 `json:"total"`
}

// QuotationDraft is the untrusted quotation payload extracted from an oracle
// reply. Every field is advisory until it passes through Reconcile.
type QuotationDraft struct {
	Client  string `json:"client"`
	Company string `json:"company"`

	// CompanyName is a legacy alias; some oracle replies use "company_name"
	// even though the prompt asks for "company". Reconcile prefers Company
	// and falls back to this.
	CompanyName string `json:"company_name"`

	Address string          `json:"address"`
	Phone   string          `json:"phone"`
	Items   []LineItemDraft `json:"items"`

	// Oracle-computed aggregates. Never trusted; Reconcile recomputes them.
	ItemTotal  *float64 `json:"item_total"`
	Tax        *float64 `json:"tax"`
	GrandTotal *float64 `json:"grand_total"`
}

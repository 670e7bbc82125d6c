package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reconcile validates an untrusted quotation draft and produces the canonical
// record. Oracle arithmetic is advisory: line totals are recomputed from
// quantity and unit price whenever the supplied value is absent or off by more
// than the rounding tolerance, and the aggregates (item total, tax, grand
// total) are always recomputed.
//
// Reconcile is a pure transformation apart from the randomness used for
// identifier assignment, so it is safe to call from concurrent requests.
func Reconcile(draft *QuotationDraft) (*QuotationRecord, error) {
	if draft == nil || strings.TrimSpace(draft.Client) == "" {
		return nil, NewMissingClientError()
	}

	if len(draft.Items) == 0 {
		return nil, NewMissingItemsError()
	}

	items := make([]LineItem, 0, len(draft.Items))

	for i, d := range draft.Items {
		item, err := reconcileItem(i, &d)
		if err != nil {
			return nil, err
		}

		items = append(items, *item)
	}

	itemTotal := decimal.Zero
	for _, item := range items {
		itemTotal = itemTotal.Add(item.Total)
	}

	tax := itemTotal.Mul(GSTRate).Round(2)
	grandTotal := itemTotal.Add(tax).Round(2)

	company := strings.TrimSpace(draft.Company)
	if company == "" {
		company = strings.TrimSpace(draft.CompanyName)
	}

	return &QuotationRecord{
		Client:          strings.TrimSpace(draft.Client),
		Company:         company,
		Address:         strings.TrimSpace(draft.Address),
		Phone:           strings.TrimSpace(draft.Phone),
		Items:           items,
		ItemTotal:       itemTotal,
		Tax:             tax,
		GrandTotal:      grandTotal,
		Date:            time.Now(),
		QuotationNumber: NewQuotationNumber(),
		CustomerID:      NewCustomerID(),
	}, nil
}

// maxQuantity is the largest integer float64 represents exactly.
const maxQuantity = float64(1 << 53)

// reconcileItem validates a single draft item and settles its line total.
func reconcileItem(index int, d *LineItemDraft) (*LineItem, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, NewInvalidLineItemError(index, "item_name", "is required")
	}

	if d.Quantity == nil {
		return nil, NewInvalidLineItemError(index, "quantity", "is required")
	}

	qty := *d.Quantity
	if qty <= 0 || qty != math.Trunc(qty) {
		return nil, NewInvalidLineItemError(index, "quantity", "must be a positive integer")
	}

	// Quantities beyond float64's exact-integer range would corrupt the
	// int64 conversion below.
	if qty > maxQuantity {
		return nil, NewInvalidLineItemError(index, "quantity", "is out of range")
	}

	if d.UnitPrice == nil {
		return nil, NewInvalidLineItemError(index, "unit_price", "is required")
	}

	if *d.UnitPrice < 0 {
		return nil, NewInvalidLineItemError(index, "unit_price", "must not be negative")
	}

	quantity := int64(qty)
	unitPrice := decimal.NewFromFloat(*d.UnitPrice)
	total := unitPrice.Mul(decimal.NewFromInt(quantity))

	// Keep the supplied total only when it agrees with the recomputed one;
	// the oracle's arithmetic is advisory.
	if d.Total != nil {
		supplied := decimal.NewFromFloat(*d.Total)
		if supplied.Sub(total).Abs().LessThanOrEqual(totalTolerance) {
			total = supplied
		}
	}

	return &LineItem{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     total,
	}, nil
}

// NewQuotationNumber returns a fresh quotation number. Identifiers derive
// from random UUIDs; truncation keeps the document readable while remaining
// collision-resistant within a process lifetime.
func NewQuotationNumber() string {
	u := uuid.New()
	return fmt.Sprintf("QTN-%X", u[:4])
}

// NewCustomerID returns a fresh customer identifier.
func NewCustomerID() string {
	u := uuid.New()
	return fmt.Sprintf("CUST-%X", u[:4])
}

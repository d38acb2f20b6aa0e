package view

import "strconv"

// QuantityState tells the presentation layer how to render a row's quantity.
type QuantityState int

const (
	// QuantityLoaded means Quantity holds the real total.
	QuantityLoaded QuantityState = iota
	// QuantityPending means the inventory fetch is still in flight; render a
	// loading indicator, never a zero.
	QuantityPending
	// QuantityUnavailable means no summary exists for the item; render "n/a".
	QuantityUnavailable
)

// ItemRow is one renderable line of the item overview.
type ItemRow struct {
	Item         Item
	Quantity     int
	State        QuantityState
	PerWarehouse map[string]int
}

// Project combines filtered items with aggregated quantities. Items without a
// summary get QuantityUnavailable instead of a misleading zero; while loading
// is true every row is QuantityPending. Inputs are never mutated.
func Project(filtered []Item, summaries Summaries, loading bool) []ItemRow {
	rows := make([]ItemRow, 0, len(filtered))
	for _, it := range filtered {
		row := ItemRow{Item: it}
		switch {
		case loading:
			row.State = QuantityPending
		default:
			s, ok := summaries[it.ID]
			if !ok {
				row.State = QuantityUnavailable
				break
			}
			row.Quantity = s.Total
			row.PerWarehouse = s.PerWarehouse
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatQuantity renders the row's quantity for plain-text output.
func (r ItemRow) FormatQuantity() string {
	switch r.State {
	case QuantityPending:
		return "..."
	case QuantityUnavailable:
		return "n/a"
	default:
		return strconv.Itoa(r.Quantity)
	}
}

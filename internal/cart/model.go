package cart

import (
	"slices"
	"strings"

	"quanan/internal/attribute"
	"quanan/internal/catalog"
)

// Line is a per-user pending-purchase record. UnitPrice freezes the item's
// base price plus the selected additive surcharges at the moment the line
// is created; later catalog price edits never reach an existing line.
// Invariant: TotalPrice == UnitPrice * Quantity after every mutation.
type Line struct {
	ID         string               `json:"id"`
	UserID     string               `json:"user_id"`
	ItemID     string               `json:"item_id"`
	Kind       catalog.ItemKind     `json:"kind"`
	Quantity   int                  `json:"quantity"`
	UnitPrice  float64              `json:"unit_price"`
	TotalPrice float64              `json:"total_price"`
	Additives  []attribute.Additive `json:"additives"`
}

// AdditiveKey canonicalizes an additive id set: sorted, deduplicated,
// comma-joined. Two requests with the same additives in any order or with
// repeats produce the same key, which is what line identity (user, item,
// additive set) hangs on.
func AdditiveKey(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), ",")
}

func (l *Line) additiveIDs() []string {
	ids := make([]string, 0, len(l.Additives))
	for _, a := range l.Additives {
		ids = append(ids, a.ID)
	}
	return ids
}

// Key returns the line's canonical additive-set key.
func (l *Line) Key() string { return AdditiveKey(l.additiveIDs()) }

package order

import "github.com/google/uuid"

// CartLine is an unpriced request line as submitted by the student.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// NormalizeCart validates quantities and merges duplicate product lines so a
// product appearing twice has its stock checked and debited cumulatively,
// not once per line. First-seen order is preserved.
func NormalizeCart(lines []CartLine) ([]CartLine, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	merged := make([]CartLine, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

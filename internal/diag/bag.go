package diag

// Bag collects diagnostics in emission order; it never re-sorts them.
// A positive limit drops everything past the first limit items.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 means no limit.
func NewBag(limit int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max(limit, 16), 64)), limit: limit}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any kept diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped counts diagnostics refused because of the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the kept diagnostics. The slice is shared with the bag.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

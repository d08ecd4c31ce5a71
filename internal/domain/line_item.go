package domain

// LineItem is a derived requirement (accessory or power supply) with its quantity
type LineItem struct {
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

// LineKey identifies a line for accumulation
type LineKey struct {
	Name          string
	ProductNumber ProductNumber
}

// Key returns the accumulation key. Synthetic lines key on (number, name) so
// that unrelated generated lines never merge.
func (l LineItem) Key() LineKey {
	if l.Synthetic || l.Product.ProductNumber.IsPlaceholder() {
		return LineKey{ProductNumber: l.Product.ProductNumber, Name: l.Product.Name}
	}
	return LineKey{ProductNumber: l.Product.ProductNumber}
}

// LineItemList accumulates line items, summing quantities of equal keys.
// Insertion order is preserved.
type LineItemList struct {
	index map[LineKey]int
	items []LineItem
}

// NewLineItemList creates an empty list
func NewLineItemList() *LineItemList {
	return &LineItemList{index: make(map[LineKey]int)}
}

// Add accumulates quantity of a catalog product
func (l *LineItemList) Add(p Product, quantity int) {
	l.add(LineItem{Product: p, Quantity: quantity})
}

// AddSynthetic accumulates a generated line keyed by number and name
func (l *LineItemList) AddSynthetic(p Product, quantity int) {
	l.add(LineItem{Product: p, Quantity: quantity, Synthetic: true})
}

func (l *LineItemList) add(item LineItem) {
	if item.Quantity <= 0 {
		return
	}
	key := item.Key()
	if i, ok := l.index[key]; ok {
		l.items[i].Quantity += item.Quantity
		return
	}
	l.index[key] = len(l.items)
	l.items = append(l.items, item)
}

// Items returns the accumulated lines
func (l *LineItemList) Items() []LineItem {
	return append([]LineItem(nil), l.items...)
}

// Len returns the number of distinct lines
func (l *LineItemList) Len() int {
	return len(l.items)
}

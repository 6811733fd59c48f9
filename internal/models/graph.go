package models

// Graph is a request-scoped arena of entities keyed by identity.
// Relations are followed through identity fields; a relation that was not
// fetched is reported as unresolved rather than loaded on access.
type Graph struct {
	orders     map[int64]*Order
	sequence   []int64
	members    map[int64]*Member
	deliveries map[int64]*Delivery
	items      map[int64]*Item
	lines      map[int64][]OrderItem
	lineIDs    map[int64]struct{}
}

// NewGraph returns an empty arena.
func NewGraph() *Graph {
	return &Graph{
		orders:     make(map[int64]*Order),
		members:    make(map[int64]*Member),
		deliveries: make(map[int64]*Delivery),
		items:      make(map[int64]*Item),
		lines:      make(map[int64][]OrderItem),
		lineIDs:    make(map[int64]struct{}),
	}
}

// PutOrder stores o unless an order with the same identity is already
// present. It returns the retained instance and whether it was new.
func (g *Graph) PutOrder(o Order) (*Order, bool) {
	if existing, ok := g.orders[o.ID]; ok {
		return existing, false
	}
	stored := o
	g.orders[o.ID] = &stored
	g.sequence = append(g.sequence, o.ID)
	return &stored, true
}

// PutMember stores m, keeping the first instance seen for an identity.
func (g *Graph) PutMember(m Member) {
	if _, ok := g.members[m.ID]; !ok {
		g.members[m.ID] = &m
	}
}

// PutDelivery stores d, keeping the first instance seen for an identity.
func (g *Graph) PutDelivery(d Delivery) {
	if _, ok := g.deliveries[d.ID]; !ok {
		g.deliveries[d.ID] = &d
	}
}

// PutItem stores it, keeping the first instance seen for an identity.
func (g *Graph) PutItem(it Item) {
	if _, ok := g.items[it.ID]; !ok {
		g.items[it.ID] = &it
	}
}

// AttachLine appends li under its parent order. A line already attached is
// ignored, so every line belongs to exactly one parent exactly once.
func (g *Graph) AttachLine(li OrderItem) bool {
	if _, ok := g.lineIDs[li.ID]; ok {
		return false
	}
	g.lineIDs[li.ID] = struct{}{}
	g.lines[li.OrderID] = append(g.lines[li.OrderID], li)
	return true
}

// MarkLinesLoaded records that the line collection of orderID was fetched,
// even if it turned out to be empty.
func (g *Graph) MarkLinesLoaded(orderID int64) {
	if _, ok := g.lines[orderID]; !ok {
		g.lines[orderID] = []OrderItem{}
	}
}

// Order looks up an order by identity.
func (g *Graph) Order(id int64) (*Order, bool) {
	o, ok := g.orders[id]
	return o, ok
}

// Orders returns the orders in first-seen order.
func (g *Graph) Orders() []*Order {
	out := make([]*Order, 0, len(g.sequence))
	for _, id := range g.sequence {
		out = append(out, g.orders[id])
	}
	return out
}

// OrderIDs returns the order identities in first-seen order.
func (g *Graph) OrderIDs() []int64 {
	return append([]int64(nil), g.sequence...)
}

// Len is the number of distinct orders.
func (g *Graph) Len() int { return len(g.sequence) }

func (g *Graph) Member(id int64) (*Member, bool) {
	m, ok := g.members[id]
	return m, ok
}

func (g *Graph) Delivery(id int64) (*Delivery, bool) {
	d, ok := g.deliveries[id]
	return d, ok
}

func (g *Graph) Item(id int64) (*Item, bool) {
	it, ok := g.items[id]
	return it, ok
}

// Lines returns the line items of orderID in insertion order. The boolean
// is false when the collection has not been loaded.
func (g *Graph) Lines(orderID int64) ([]OrderItem, bool) {
	ls, ok := g.lines[orderID]
	return ls, ok
}

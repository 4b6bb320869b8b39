package tile

import "math"

// Share is the part of a sweep budget carried by one tile type.
type Share struct {
	Type     Type
	Distance float64
}

// DragState is a tile's sweep budget split across the types it is blending
// between. The shares always sum to the fixed total. Shares keep the order in
// which types first appeared so iteration is deterministic.
type DragState struct {
	total  float64
	shares []Share
}

// NewDragState puts the whole budget on the resting type.
func NewDragState(resting Type, total float64) *DragState {
	if !(total > 0) || math.IsInf(total, 1) {
		total = 0
	}
	return &DragState{
		total:  total,
		shares: []Share{{Type: resting, Distance: total}},
	}
}

// Total is the fixed sweep budget.
func (d *DragState) Total() float64 { return d.total }

// Sum adds up every share. It equals Total up to rounding.
func (d *DragState) Sum() float64 {
	var sum float64
	for _, s := range d.shares {
		sum += s.Distance
	}
	return sum
}

// Shares returns a copy of the shares in iteration order.
func (d *DragState) Shares() []Share {
	return append([]Share(nil), d.shares...)
}

// Distance returns the share held by t.
func (d *DragState) Distance(t Type) float64 {
	for _, s := range d.shares {
		if s.Type == t {
			return s.Distance
		}
	}
	return 0
}

// Weight returns t's share as a fraction of the budget.
func (d *DragState) Weight(t Type) float64 {
	if d.total <= 0 {
		return 0
	}
	return d.Distance(t) / d.total
}

// Settled reports the single type holding the whole budget, if any.
func (d *DragState) Settled() (Type, bool) {
	if len(d.shares) != 1 {
		return Type{}, false
	}
	return d.shares[0].Type, true
}

// Sweep moves up to amount of budget onto target, taking it from the other
// shares in proportion to what they hold. It returns the distance actually
// moved, which never exceeds what the other shares had.
func (d *DragState) Sweep(target Type, amount float64) float64 {
	if !(amount > 0) {
		return 0
	}

	var available float64
	for _, s := range d.shares {
		if s.Type != target {
			available += s.Distance
		}
	}
	if available <= 0 {
		return 0
	}

	moved := math.Min(amount, available)
	keep := 1 - moved/available
	if moved == available {
		keep = 0
	}

	var others float64
	found := false
	kept := d.shares[:0]
	for _, s := range d.shares {
		if s.Type == target {
			found = true
			kept = append(kept, s)
			continue
		}
		s.Distance *= keep
		if s.Distance <= 0 {
			continue
		}
		others += s.Distance
		kept = append(kept, s)
	}
	if !found {
		kept = append(kept, Share{Type: target})
	}
	d.shares = kept

	// The target absorbs the remainder so the shares sum to the total.
	targetDistance := math.Max(0, d.total-others)
	for i := range d.shares {
		if d.shares[i].Type == target {
			d.shares[i].Distance = targetDistance
			break
		}
	}
	return moved
}

// Clone returns an independent copy.
func (d *DragState) Clone() *DragState {
	if d == nil {
		return nil
	}
	return &DragState{
		total:  d.total,
		shares: append([]Share(nil), d.shares...),
	}
}

package inventory

import "errors"

// ErrInventoryFull is returned by Add when the inventory is at capacity.
var ErrInventoryFull = errors.New("inventory: full")

// Inventory is a capacity-limited, ordered list of carried items.
type Inventory struct {
	Capacity int
	Items    []*Item
}

// New returns an empty Inventory that holds at most capacity items.
func New(capacity int) *Inventory {
	return &Inventory{Capacity: capacity}
}

// Full reports whether no further item fits.
func (inv *Inventory) Full() bool {
	return len(inv.Items) >= inv.Capacity
}

// Add appends it.
//
// Postcondition: returns ErrInventoryFull and leaves Items unchanged when full.
func (inv *Inventory) Add(it *Item) error {
	if inv.Full() {
		return ErrInventoryFull
	}
	inv.Items = append(inv.Items, it)
	return nil
}

// Remove deletes it by identity and reports whether it was present.
func (inv *Inventory) Remove(it *Item) bool {
	for i, cur := range inv.Items {
		if cur == it {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the carried item with instance ID id, or nil.
func (inv *Inventory) Find(id string) *Item {
	for _, it := range inv.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

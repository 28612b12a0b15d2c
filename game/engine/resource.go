package engine

import "fmt"

// PriceBin is one rung of a resource pool's price ladder. Each slot either
// holds a unit (true) or is empty (false).
type PriceBin struct {
	Price int    `json:"price"`
	Slots []bool `json:"slots"`
}

func (b *PriceBin) occupied() int {
	n := 0
	for _, s := range b.Slots {
		if s {
			n++
		}
	}
	return n
}

// ResourcePool tracks the market supply of a single resource type as a
// ladder of price bins plus an off-board reserve. Purchases always consume
// the cheapest occupied slots; resupply refills the priciest empty slots
// first. The invariant OccupiedSlots() + Reserve stays constant across
// Purchase, Release, and Resupply.
type ResourcePool struct {
	Name    ResourceType `json:"name"`
	Reserve int          `json:"reserve"`
	Bins    []PriceBin   `json:"bins"`
}

// NewResourcePool creates a pool with the given bin layout and the full
// resource count sitting in the off-board reserve.
func NewResourcePool(name ResourceType, total int, binSlots map[int]int) *ResourcePool {
	p := &ResourcePool{Name: name, Reserve: total}
	prices := make([]int, 0, len(binSlots))
	for price := range binSlots {
		prices = append(prices, price)
	}
	// ascending price order
	for i := 0; i < len(prices); i++ {
		for j := i + 1; j < len(prices); j++ {
			if prices[j] < prices[i] {
				prices[i], prices[j] = prices[j], prices[i]
			}
		}
	}
	for _, price := range prices {
		p.Bins = append(p.Bins, PriceBin{Price: price, Slots: make([]bool, binSlots[price])})
	}
	return p
}

// standardBinLayout is the classic ladder: four slots at prices 1-6, two
// slots at prices 7-9.
func standardBinLayout() map[int]int {
	layout := make(map[int]int)
	for price := 1; price <= 6; price++ {
		layout[price] = 4
	}
	for price := 7; price <= 9; price++ {
		layout[price] = 2
	}
	return layout
}

// NewStandardPools builds the four market pools with the standard board
// layout, totals, and start allocations, ready for play.
func NewStandardPools() map[ResourceType]*ResourcePool {
	pools := map[ResourceType]*ResourcePool{
		Coal:    NewResourcePool(Coal, 27, standardBinLayout()),
		Gas:     NewResourcePool(Gas, 24, standardBinLayout()),
		Oil:     NewResourcePool(Oil, 20, standardBinLayout()),
		Uranium: NewResourcePool(Uranium, 12, standardBinLayout()),
	}
	pools[Coal].InitializeSupply(2, 9)
	pools[Gas].InitializeSupply(3, 8)
	pools[Oil].InitializeSupply(3, 9)
	pools[Uranium].InitializeSupply(8, 9)
	return pools
}

// InitializeSupply moves units from the reserve onto the board, completely
// filling every bin priced between fromPrice and toPrice inclusive.
func (p *ResourcePool) InitializeSupply(fromPrice, toPrice int) {
	for i := range p.Bins {
		b := &p.Bins[i]
		if b.Price < fromPrice || b.Price > toPrice {
			continue
		}
		for j := range b.Slots {
			if !b.Slots[j] && p.Reserve > 0 {
				b.Slots[j] = true
				p.Reserve--
			}
		}
	}
}

// OccupiedSlots returns the number of units currently on the board.
func (p *ResourcePool) OccupiedSlots() int {
	n := 0
	for i := range p.Bins {
		n += p.Bins[i].occupied()
	}
	return n
}

// PossiblePurchases maps each purchasable quantity to the cumulative cost of
// buying that many units in ascending price order.
func (p *ResourcePool) PossiblePurchases() map[int]int {
	purchases := make(map[int]int)
	count := 0
	cost := 0
	for i := range p.Bins {
		b := &p.Bins[i]
		for _, s := range b.Slots {
			if s {
				count++
				cost += b.Price
				purchases[count] = cost
			}
		}
	}
	return purchases
}

// Purchase consumes the amount cheapest occupied slots and returns the total
// cost. The pool is unchanged when supply is insufficient.
func (p *ResourcePool) Purchase(amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: purchase amount must be positive, got %d", ErrInvalidAction, amount)
	}
	cost, ok := p.PossiblePurchases()[amount]
	if !ok {
		return 0, fmt.Errorf("%w: %d %s available, %d requested", ErrInsufficientSupply, p.OccupiedSlots(), p.Name, amount)
	}
	remaining := amount
	for i := range p.Bins {
		b := &p.Bins[i]
		for j := range b.Slots {
			if b.Slots[j] && remaining > 0 {
				b.Slots[j] = false
				remaining--
			}
		}
	}
	return cost, nil
}

// Release returns consumed units to the off-board reserve. Bins only refill
// at resupply.
func (p *ResourcePool) Release(amount int) {
	if amount > 0 {
		p.Reserve += amount
	}
}

// Resupply moves up to min(amount, Reserve) units from the reserve onto the
// board, filling the highest-price bins first, and returns the number
// placed.
func (p *ResourcePool) Resupply(amount int) int {
	toPlace := amount
	if toPlace > p.Reserve {
		toPlace = p.Reserve
	}
	placed := 0
	for i := len(p.Bins) - 1; i >= 0 && placed < toPlace; i-- {
		b := &p.Bins[i]
		for j := len(b.Slots) - 1; j >= 0 && placed < toPlace; j-- {
			if !b.Slots[j] {
				b.Slots[j] = true
				placed++
			}
		}
	}
	p.Reserve -= placed
	return placed
}

// Clone returns a deep copy of the pool.
func (p *ResourcePool) Clone() *ResourcePool {
	cp := &ResourcePool{Name: p.Name, Reserve: p.Reserve, Bins: make([]PriceBin, len(p.Bins))}
	for i := range p.Bins {
		slots := make([]bool, len(p.Bins[i].Slots))
		copy(slots, p.Bins[i].Slots)
		cp.Bins[i] = PriceBin{Price: p.Bins[i].Price, Slots: slots}
	}
	return cp
}

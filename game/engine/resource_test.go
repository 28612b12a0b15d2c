package engine

import (
	"errors"
	"testing"
)

func TestNewResourcePoolSortsBins(t *testing.T) {
	p := NewResourcePool(Coal, 10, map[int]int{5: 2, 1: 4, 3: 2})

	if len(p.Bins) != 3 {
		t.Fatalf("Expected 3 bins, got %d", len(p.Bins))
	}
	prices := []int{p.Bins[0].Price, p.Bins[1].Price, p.Bins[2].Price}
	if prices[0] != 1 || prices[1] != 3 || prices[2] != 5 {
		t.Errorf("Expected ascending prices [1 3 5], got %v", prices)
	}
	if p.Reserve != 10 {
		t.Errorf("Expected full reserve 10, got %d", p.Reserve)
	}
	if p.OccupiedSlots() != 0 {
		t.Errorf("Expected empty board, got %d occupied", p.OccupiedSlots())
	}
}

func TestInitializeSupply(t *testing.T) {
	p := NewResourcePool(Coal, 27, standardBinLayout())
	p.InitializeSupply(2, 9)

	// prices 2-6 hold four slots each, 7-9 hold two
	if got := p.OccupiedSlots(); got != 26 {
		t.Errorf("Expected 26 units on board, got %d", got)
	}
	if p.Reserve != 1 {
		t.Errorf("Expected reserve 1, got %d", p.Reserve)
	}
	// price-1 bin stays empty
	if p.Bins[0].occupied() != 0 {
		t.Errorf("Expected price-1 bin empty, got %d occupied", p.Bins[0].occupied())
	}
}

func TestInitializeSupplyStopsAtEmptyReserve(t *testing.T) {
	p := NewResourcePool(Oil, 20, standardBinLayout())
	p.InitializeSupply(3, 9)

	// filling prices 3-9 would need 22 units but only 20 exist
	if got := p.OccupiedSlots(); got != 20 {
		t.Errorf("Expected 20 units on board, got %d", got)
	}
	if p.Reserve != 0 {
		t.Errorf("Expected empty reserve, got %d", p.Reserve)
	}
}

func TestNewStandardPools(t *testing.T) {
	pools := NewStandardPools()

	tests := []struct {
		name     ResourceType
		onBoard  int
		reserve  int
		cheapest int
	}{
		{Coal, 26, 1, 2},
		{Gas, 20, 4, 3},
		{Oil, 20, 0, 3},
		{Uranium, 4, 8, 8},
	}
	for _, tt := range tests {
		pool, ok := pools[tt.name]
		if !ok {
			t.Fatalf("Missing pool for %s", tt.name)
		}
		if got := pool.OccupiedSlots(); got != tt.onBoard {
			t.Errorf("%s: expected %d on board, got %d", tt.name, tt.onBoard, got)
		}
		if pool.Reserve != tt.reserve {
			t.Errorf("%s: expected reserve %d, got %d", tt.name, tt.reserve, pool.Reserve)
		}
		if cost, ok := pool.PossiblePurchases()[1]; !ok || cost != tt.cheapest {
			t.Errorf("%s: expected cheapest unit at %d, got %d", tt.name, tt.cheapest, cost)
		}
	}
}

func TestPossiblePurchasesCumulative(t *testing.T) {
	p := NewResourcePool(Coal, 27, standardBinLayout())
	p.InitializeSupply(2, 9)

	purchases := p.PossiblePurchases()
	// the four cheapest units all sit in the price-2 bin
	if purchases[1] != 2 || purchases[2] != 4 || purchases[3] != 6 || purchases[4] != 8 {
		t.Errorf("Expected costs 2/4/6/8 for 1-4 units, got %d/%d/%d/%d",
			purchases[1], purchases[2], purchases[3], purchases[4])
	}
	// the fifth unit comes from the price-3 bin
	if purchases[5] != 11 {
		t.Errorf("Expected cost 11 for 5 units, got %d", purchases[5])
	}
	if _, ok := purchases[27]; ok {
		t.Error("Should not offer more units than are on the board")
	}
}

func TestPurchaseConsumesCheapestFirst(t *testing.T) {
	p := NewResourcePool(Coal, 27, standardBinLayout())
	p.InitializeSupply(2, 9)

	cost, err := p.Purchase(5)
	if err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if cost != 11 {
		t.Errorf("Expected cost 11, got %d", cost)
	}
	if got := p.OccupiedSlots(); got != 21 {
		t.Errorf("Expected 21 units left, got %d", got)
	}
	// next unit now costs 3
	if next := p.PossiblePurchases()[1]; next != 3 {
		t.Errorf("Expected next unit at 3, got %d", next)
	}
}

func TestPurchaseErrors(t *testing.T) {
	p := NewResourcePool(Uranium, 12, standardBinLayout())
	p.InitializeSupply(8, 9)

	if _, err := p.Purchase(0); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction for zero amount, got %v", err)
	}
	if _, err := p.Purchase(-2); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction for negative amount, got %v", err)
	}
	before := p.OccupiedSlots()
	if _, err := p.Purchase(before + 1); !errors.Is(err, ErrInsufficientSupply) {
		t.Errorf("Expected ErrInsufficientSupply, got %v", err)
	}
	if p.OccupiedSlots() != before {
		t.Error("Failed purchase should not change the pool")
	}
}

func TestReleaseGoesToReserve(t *testing.T) {
	p := NewResourcePool(Gas, 24, standardBinLayout())
	p.InitializeSupply(3, 8)

	onBoard := p.OccupiedSlots()
	p.Release(3)
	if p.Reserve != 4+3 {
		t.Errorf("Expected reserve 7, got %d", p.Reserve)
	}
	if p.OccupiedSlots() != onBoard {
		t.Error("Release should not touch the board")
	}
	p.Release(-1)
	if p.Reserve != 7 {
		t.Errorf("Negative release should be ignored, reserve is %d", p.Reserve)
	}
}

func TestResupplyFillsPriciestFirst(t *testing.T) {
	p := NewResourcePool(Coal, 27, standardBinLayout())
	p.InitializeSupply(2, 9)
	if _, err := p.Purchase(4); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	p.Release(4)

	// reserve now holds 5; the price-1 bin (4 slots) and price-2 bin (4
	// slots) are the only empty ones, and resupply fills cheap bins last
	placed := p.Resupply(3)
	if placed != 3 {
		t.Errorf("Expected 3 placed, got %d", placed)
	}
	if p.Bins[1].occupied() != 3 {
		t.Errorf("Expected price-2 bin refilled to 3, got %d", p.Bins[1].occupied())
	}
	if p.Bins[0].occupied() != 0 {
		t.Errorf("Price-1 bin should stay empty while pricier slots exist, got %d", p.Bins[0].occupied())
	}
}

func TestResupplyBoundedByReserve(t *testing.T) {
	p := NewResourcePool(Uranium, 12, standardBinLayout())
	p.InitializeSupply(8, 9)

	placed := p.Resupply(100)
	if placed != 8 {
		t.Errorf("Expected all 8 reserve units placed, got %d", placed)
	}
	if p.Reserve != 0 {
		t.Errorf("Expected empty reserve, got %d", p.Reserve)
	}
}

func TestPoolConservation(t *testing.T) {
	p := NewResourcePool(Coal, 27, standardBinLayout())
	p.InitializeSupply(2, 9)

	total := func() int { return p.OccupiedSlots() + p.Reserve }
	if total() != 27 {
		t.Fatalf("Expected total 27 after init, got %d", total())
	}

	if _, err := p.Purchase(6); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if total() != 21 {
		t.Errorf("Purchase removes from the game until release: total %d", total())
	}
	p.Release(6)
	if total() != 27 {
		t.Errorf("Expected total 27 after release, got %d", total())
	}
	p.Resupply(4)
	if total() != 27 {
		t.Errorf("Resupply must conserve the total, got %d", total())
	}
}

func TestPoolClone(t *testing.T) {
	p := NewResourcePool(Coal, 27, standardBinLayout())
	p.InitializeSupply(2, 9)

	cp := p.Clone()
	if _, err := cp.Purchase(4); err != nil {
		t.Fatalf("Purchase on clone failed: %v", err)
	}
	cp.Reserve = 99

	if p.OccupiedSlots() != 26 {
		t.Error("Mutating the clone changed the original's board")
	}
	if p.Reserve != 1 {
		t.Error("Mutating the clone changed the original's reserve")
	}
}

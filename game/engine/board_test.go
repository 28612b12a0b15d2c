package engine

import (
	"reflect"
	"testing"
)

func TestAddEdgeIsUndirected(t *testing.T) {
	b := NewBoard()
	b.AddEdge("alfa", "bravo", 5)

	if cost, ok := b.EdgeCost("alfa", "bravo"); !ok || cost != 5 {
		t.Errorf("Expected alfa->bravo cost 5, got %d (ok=%v)", cost, ok)
	}
	if cost, ok := b.EdgeCost("bravo", "alfa"); !ok || cost != 5 {
		t.Errorf("Expected bravo->alfa cost 5, got %d (ok=%v)", cost, ok)
	}
}

func TestAddEdgeCheaperParallelWins(t *testing.T) {
	b := NewBoard()
	b.AddEdge("alfa", "bravo", 5)
	b.AddEdge("alfa", "bravo", 8)
	if cost, _ := b.EdgeCost("alfa", "bravo"); cost != 5 {
		t.Errorf("Pricier parallel edge should be ignored, got %d", cost)
	}
	b.AddEdge("alfa", "bravo", 3)
	if cost, _ := b.EdgeCost("bravo", "alfa"); cost != 3 {
		t.Errorf("Cheaper parallel edge should replace, got %d", cost)
	}
}

func TestCitiesSorted(t *testing.T) {
	b := NewBoard()
	b.AddEdge("delta", "alfa", 1)
	b.AddCity("charlie")
	b.AddEdge("bravo", "delta", 2)

	want := []string{"alfa", "bravo", "charlie", "delta"}
	if got := b.Cities(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestHasCity(t *testing.T) {
	b := testBoard()
	if !b.HasCity("alfa") {
		t.Error("Expected alfa to exist")
	}
	if b.HasCity("atlantis") {
		t.Error("Did not expect atlantis to exist")
	}
}

func TestConnectionCostFirstCityFree(t *testing.T) {
	b := testBoard()
	if cost := b.ConnectionCost(nil, "alfa"); cost != 0 {
		t.Errorf("Expected free first city, got %d", cost)
	}
}

func TestConnectionCostDirect(t *testing.T) {
	b := testBoard()
	if cost := b.ConnectionCost([]string{"alfa"}, "bravo"); cost != 5 {
		t.Errorf("Expected direct cost 5, got %d", cost)
	}
}

func TestConnectionCostTwoHop(t *testing.T) {
	b := testBoard()
	// alfa-bravo-charlie (12) beats alfa-delta-charlie (15)
	if cost := b.ConnectionCost([]string{"alfa"}, "charlie"); cost != 12 {
		t.Errorf("Expected two-hop cost 12, got %d", cost)
	}
}

func TestConnectionCostPicksBestOwnedCity(t *testing.T) {
	b := testBoard()
	if cost := b.ConnectionCost([]string{"alfa", "delta"}, "charlie"); cost != 6 {
		t.Errorf("Expected direct delta-charlie cost 6, got %d", cost)
	}
}

func TestConnectionCostFallbackBeyondTwoHops(t *testing.T) {
	b := NewBoard()
	b.AddEdge("a", "b", 1)
	b.AddEdge("b", "c", 1)
	b.AddEdge("c", "d", 1)

	// d is three hops from a
	if cost := b.ConnectionCost([]string{"a"}, "d"); cost != FallbackConnectCost {
		t.Errorf("Expected fallback cost %d, got %d", FallbackConnectCost, cost)
	}
}

func TestConnectionCostDisconnected(t *testing.T) {
	b := testBoard()
	b.AddCity("island")
	if cost := b.ConnectionCost([]string{"alfa"}, "island"); cost != FallbackConnectCost {
		t.Errorf("Expected fallback cost %d, got %d", FallbackConnectCost, cost)
	}
}

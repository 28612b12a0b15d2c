package engine

import (
	"reflect"
	"testing"
)

// marketGame builds a bare game around a hand-rolled state, bypassing setup,
// so deck and market contents are exact.
func marketGame(s *GameState) *Game {
	s.Pools = NewStandardPools()
	return &Game{state: s, rules: DefaultRules()}
}

func TestDrawSkipsLightBeforeStepThree(t *testing.T) {
	light := Card{Cost: 20, Resource: Green, Cities: 3}
	dark := Card{Cost: 10, Resource: Coal, ResourceCost: 2, Cities: 2}
	g := marketGame(&GameState{Step: 1, Deck: []Card{light, dark}})

	c, ok := g.drawNextPlant()
	if !ok || c.Cost != 10 {
		t.Fatalf("Expected dark plant 10, got %+v (ok=%v)", c, ok)
	}
	// the skipped light card returns to the deck
	if len(g.state.Deck) != 1 || g.state.Deck[0].Cost != 20 {
		t.Errorf("Expected light card back in deck, got %v", cardCosts(g.state.Deck))
	}
}

func TestDrawLightInStepThree(t *testing.T) {
	light := Card{Cost: 20, Resource: Green, Cities: 3}
	g := marketGame(&GameState{Step: 3, Deck: []Card{light}})

	c, ok := g.drawNextPlant()
	if !ok || c.Cost != 20 {
		t.Errorf("Expected light plant 20 in step 3, got %+v (ok=%v)", c, ok)
	}
}

func TestDrawConsumesStageThreeMarker(t *testing.T) {
	marker := Card{Resource: StageThree}
	dark := Card{Cost: 10, Resource: Coal, ResourceCost: 2, Cities: 2}
	g := marketGame(&GameState{Step: 1, Deck: []Card{marker, dark}})

	c, ok := g.drawNextPlant()
	if !ok || c.Cost != 10 {
		t.Fatalf("Expected plant 10 after the marker, got %+v (ok=%v)", c, ok)
	}
	if !g.state.Step3Triggered {
		t.Error("Drawing the marker should set the step 3 trigger")
	}
	for _, c := range g.state.Deck {
		if c.IsStageThree() {
			t.Error("The marker must not return to the deck")
		}
	}
}

func TestDrawEmptyDeck(t *testing.T) {
	g := marketGame(&GameState{Step: 1})
	if _, ok := g.drawNextPlant(); ok {
		t.Error("Expected no card from an empty deck")
	}
}

func TestRefillMarketsStepOneShape(t *testing.T) {
	cards := testCards()
	g := marketGame(&GameState{
		Step:          1,
		CurrentMarket: cards[1:4], // 4, 5, 6
		FutureMarket:  cards[4:8], // 7, 8, 9, 10
		Deck:          []Card{cards[8], cards[0]},
	})
	g.refillMarkets()

	if got := cardCosts(g.state.CurrentMarket); !reflect.DeepEqual(got, []int{3, 4, 5, 6}) {
		t.Errorf("Expected current [3 4 5 6], got %v", got)
	}
	if got := cardCosts(g.state.FutureMarket); !reflect.DeepEqual(got, []int{7, 8, 9, 10, 11}) {
		t.Errorf("Expected future [7 8 9 10 11], got %v", got)
	}
}

func TestRefillMarketsCapsFutureAtFive(t *testing.T) {
	cards := testCards()
	g := marketGame(&GameState{
		Step:          1,
		CurrentMarket: cards[:5],
		FutureMarket:  cards[5:10],
	})
	g.refillMarkets()

	if len(g.state.CurrentMarket) != 4 {
		t.Errorf("Expected 4 current cards, got %d", len(g.state.CurrentMarket))
	}
	if len(g.state.FutureMarket) != 5 {
		t.Errorf("Expected 5 future cards, got %d", len(g.state.FutureMarket))
	}
	// the overflow card goes to the bottom of the deck
	if len(g.state.Deck) != 1 || g.state.Deck[0].Cost != 16 {
		t.Errorf("Expected plant 16 at deck bottom, got %v", cardCosts(g.state.Deck))
	}
}

func TestRefillMarketsStepThreeSingleMarket(t *testing.T) {
	cards := testCards()
	g := marketGame(&GameState{
		Step:          3,
		CurrentMarket: cards[:4],
		FutureMarket:  cards[4:7],
	})
	g.refillMarkets()

	if len(g.state.CurrentMarket) != 6 {
		t.Errorf("Expected single 6-card market, got %d", len(g.state.CurrentMarket))
	}
	if g.state.FutureMarket != nil {
		t.Errorf("Expected empty future market, got %v", cardCosts(g.state.FutureMarket))
	}
	if len(g.state.Deck) != 1 {
		t.Errorf("Expected overflow card in deck, got %d", len(g.state.Deck))
	}
}

func TestTakeFromCurrentMarket(t *testing.T) {
	cards := testCards()
	g := marketGame(&GameState{Step: 1, CurrentMarket: cards[:4]})

	c, ok := g.takeFromCurrentMarket(4)
	if !ok || c.Cost != 4 {
		t.Fatalf("Expected plant 4, got %+v (ok=%v)", c, ok)
	}
	if got := cardCosts(g.state.CurrentMarket); !reflect.DeepEqual(got, []int{3, 5, 6}) {
		t.Errorf("Expected [3 5 6] left, got %v", got)
	}
	if _, ok := g.takeFromCurrentMarket(4); ok {
		t.Error("Plant 4 should be gone")
	}
}

func TestRemoveExpiredPlants(t *testing.T) {
	cards := testCards()
	g := marketGame(&GameState{
		Step:          1,
		CurrentMarket: cards[:4],  // 3, 4, 5, 6
		FutureMarket:  cards[4:9], // 7..11
		Players: []*Player{
			{ID: 0, Generators: []string{"a", "b", "c", "d"}},
			{ID: 1, Generators: []string{"a"}},
		},
	})
	g.removeExpiredPlants()

	// plants 3 and 4 are at or below the leader's 4 cities
	for _, cost := range []int{3, 4} {
		if _, ok := g.state.MarketPlant(cost); ok {
			t.Errorf("Plant %d should have expired", cost)
		}
	}
	if len(g.state.CurrentMarket) != 4 {
		t.Errorf("Market should refill to 4 cards, got %d", len(g.state.CurrentMarket))
	}
}

func TestRotateMarketForBureaucracy(t *testing.T) {
	cards := testCards()
	replacement := Card{Cost: 12, Resource: Coal, ResourceCost: 2, Cities: 2}
	g := marketGame(&GameState{
		Step:          1,
		CurrentMarket: cards[:4],  // 3, 4, 5, 6
		FutureMarket:  cards[4:9], // 7..11
		Deck:          []Card{replacement},
	})
	g.rotateMarketForBureaucracy()

	// the priciest future plant (11) cycles into the deck and the refill
	// draws the replacement in its place
	deckHolds11 := false
	for _, c := range g.state.Deck {
		if c.Cost == 11 {
			deckHolds11 = true
		}
	}
	if !deckHolds11 {
		t.Errorf("Expected plant 11 in the deck, got %v", cardCosts(g.state.Deck))
	}
	if got := cardCosts(g.state.FutureMarket); !reflect.DeepEqual(got, []int{7, 8, 9, 10, 12}) {
		t.Errorf("Expected future [7 8 9 10 12], got %v", got)
	}
	if _, ok := g.state.MarketPlant(3); !ok {
		t.Error("Current market should be untouched by rotation")
	}
}

func TestStepTwoTransition(t *testing.T) {
	cards := testCards()
	g := marketGame(&GameState{
		Step:          1,
		CurrentMarket: cards[:4],
		FutureMarket:  cards[4:9],
		Players: []*Player{
			{ID: 0, Generators: make([]string, 7)},
			{ID: 1},
		},
	})
	g.checkStepTransitions()

	if g.state.Step != 2 {
		t.Fatalf("Expected step 2, got %d", g.state.Step)
	}
	// the cheapest plant is removed without replacement
	if _, ok := g.state.MarketPlant(3); ok {
		t.Error("Plant 3 should be removed at the step 2 transition")
	}
	if len(g.state.CurrentMarket) != 3 {
		t.Errorf("Expected 3 current cards, got %d", len(g.state.CurrentMarket))
	}
}

func TestStepThreeTransition(t *testing.T) {
	cards := testCards()
	g := marketGame(&GameState{
		Step:           2,
		Step3Triggered: true,
		CurrentMarket:  cards[:4],
		FutureMarket:   cards[4:9],
		Players:        []*Player{{ID: 0}, {ID: 1}},
	})
	g.checkStepTransitions()

	if g.state.Step != 3 {
		t.Fatalf("Expected step 3, got %d", g.state.Step)
	}
	if len(g.state.CurrentMarket) != 6 {
		t.Errorf("Expected collapsed 6-card market, got %d", len(g.state.CurrentMarket))
	}
	if g.state.FutureMarket != nil {
		t.Errorf("Expected empty future market, got %v", cardCosts(g.state.FutureMarket))
	}
}

package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// Names of the built-in strategies, in a stable order for listings.
var Names = []string{"random", "greedy", "conservative", "balanced"}

// New creates a built-in strategy by name.
func New(name string, rng *rand.Rand) (engine.Strategy, error) {
	switch name {
	case "random":
		return NewRandom(rng), nil
	case "greedy":
		return NewGreedy(rng), nil
	case "conservative":
		return NewConservative(rng), nil
	case "balanced":
		return NewBalanced(rng), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// affordablePlants returns the current-market plants the player could open
// an auction on at face value, honoring the three-plant upgrade rule.
func affordablePlants(p *engine.Player, s *engine.GameState) []engine.Card {
	smallest := 0
	if len(p.Plants) >= engine.MaxPlants {
		smallest = p.SmallestPlantCost()
	}
	var out []engine.Card
	for _, c := range s.CurrentMarket {
		if c.Cost > p.Money {
			continue
		}
		if smallest > 0 && c.Cost <= smallest {
			continue
		}
		out = append(out, c)
	}
	return out
}

// discardFor returns the plant to name as a forced discard, 0 when none is
// needed.
func discardFor(p *engine.Player) int {
	if len(p.Plants) >= engine.MaxPlants {
		return p.SmallestPlantCost()
	}
	return 0
}

// openableCities returns the cities the player could legally claim a slot in
// under the current step, in sorted order for determinism.
func openableCities(p *engine.Player, s *engine.GameState) []string {
	var out []string
	for _, city := range s.Board.Cities() {
		if p.OwnsCity(city) {
			continue
		}
		if len(s.Occupancy[city]) < s.Step {
			out = append(out, city)
		}
	}
	return out
}

// defaultSlotCosts mirrors the standard rules; strategies only use it for
// estimating, the engine enforces the real table.
var defaultSlotCosts = [3]int{10, 15, 20}

// buildCost is the estimated full price of claiming the next slot in the
// city.
func buildCost(p *engine.Player, s *engine.GameState, city string) int {
	position := len(s.Occupancy[city])
	if position >= len(defaultSlotCosts) {
		return 0
	}
	return defaultSlotCosts[position] + s.Board.ConnectionCost(p.Generators, city)
}

// cheapestCity returns the city with the lowest total build cost.
func cheapestCity(p *engine.Player, s *engine.GameState, cities []string) (string, int) {
	best := ""
	bestCost := 0
	for _, city := range cities {
		cost := buildCost(p, s, city)
		if best == "" || cost < bestCost {
			best = city
			bestCost = cost
		}
	}
	return best, bestCost
}

// fuelType returns the concrete market resource a plant shops for, skipping
// green plants. Hybrids are resolved by the caller.
func fuelType(c engine.Card) (engine.ResourceType, bool) {
	switch c.Resource {
	case engine.Coal, engine.Oil, engine.Gas, engine.Uranium:
		return c.Resource, true
	default:
		return "", false
	}
}

// addPurchase accumulates a purchase, capping it to what the player can
// still store.
func addPurchase(p *engine.Player, purchases map[engine.ResourceType]int, rt engine.ResourceType, want int) {
	for want > 0 {
		total := purchases[rt] + want
		if p.CanStore(rt, total) {
			purchases[rt] = total
			return
		}
		want--
	}
}

// sortByCost sorts plants ascending by cost.
func sortByCost(cards []engine.Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Cost < cards[j].Cost })
}

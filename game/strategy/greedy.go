package strategy

import (
	"math/rand"
	"sort"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// Greedy expands as fast as its money allows. It chases high-capacity plants,
// fills their fuel stores to the brim and builds into every city it can pay
// for.
type Greedy struct {
	rng *rand.Rand
}

// NewGreedy creates a greedy strategy backed by the given source.
func NewGreedy(rng *rand.Rand) *Greedy {
	return &Greedy{rng: rng}
}

func (g *Greedy) ChooseAuctionMove(p *engine.Player, s *engine.GameState) engine.Action {
	affordable := affordablePlants(p, s)
	if len(affordable) == 0 {
		return engine.AuctionPass()
	}
	// Largest capacity first, cheapest as tie-break.
	sort.Slice(affordable, func(i, j int) bool {
		if affordable[i].Cities != affordable[j].Cities {
			return affordable[i].Cities > affordable[j].Cities
		}
		return affordable[i].Cost < affordable[j].Cost
	})
	best := affordable[0]
	return engine.OpenAuction(best.Cost, best.Cost, discardFor(p))
}

func (g *Greedy) BidInAuction(p *engine.Player, s *engine.GameState, plant engine.Card, currentBid, leader int) engine.Action {
	if len(p.Plants) >= engine.MaxPlants && plant.Cost <= p.SmallestPlantCost() {
		return engine.AuctionBidPass()
	}
	// Worth up to ten over list price for a big plant.
	ceiling := plant.Cost + 2*plant.Cities
	if currentBid+1 > ceiling || currentBid+1 > p.Money {
		return engine.AuctionBidPass()
	}
	return engine.AuctionBid(currentBid+1, discardFor(p))
}

func (g *Greedy) ChooseResources(p *engine.Player, s *engine.GameState) engine.Action {
	purchases := make(map[engine.ResourceType]int)
	for _, c := range p.Plants {
		switch c.Resource {
		case engine.Green:
		case engine.Hybrid:
			addPurchase(p, purchases, engine.Oil, c.ResourceCost*2)
			addPurchase(p, purchases, engine.Gas, c.ResourceCost*2)
		default:
			addPurchase(p, purchases, c.Resource, c.ResourceCost*2)
		}
	}
	return engine.PurchaseResources(purchases)
}

func (g *Greedy) ChooseCitiesToBuild(p *engine.Player, s *engine.GameState) engine.Action {
	available := openableCities(p, s)
	type priced struct {
		city string
		cost int
	}
	options := make([]priced, 0, len(available))
	for _, city := range available {
		options = append(options, priced{city, buildCost(p, s, city)})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].cost < options[j].cost })
	var picks []string
	budget := p.Money
	for _, opt := range options {
		if opt.cost > budget {
			break
		}
		budget -= opt.cost
		picks = append(picks, opt.city)
	}
	return engine.BuildCities(picks...)
}

func (g *Greedy) ChooseCitiesToPower(p *engine.Player, s *engine.GameState) engine.Action {
	return engine.PowerCities(len(p.Generators))
}

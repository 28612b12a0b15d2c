package strategy

import (
	"math/rand"
	"sort"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// Balanced weighs capacity against price. It buys the most efficient plant it
// can afford, keeps half a round of spare fuel and grows by one or two cities
// at a time.
type Balanced struct {
	rng *rand.Rand
}

// NewBalanced creates a balanced strategy backed by the given source.
func NewBalanced(rng *rand.Rand) *Balanced {
	return &Balanced{rng: rng}
}

// efficiency scores a plant by cities per unit price. Green plants get a
// small premium since they never pay for fuel.
func (b *Balanced) efficiency(c engine.Card) float64 {
	score := float64(c.Cities) / float64(c.Cost)
	if c.Resource == engine.Green {
		score *= 1.2
	}
	return score
}

func (b *Balanced) ChooseAuctionMove(p *engine.Player, s *engine.GameState) engine.Action {
	affordable := affordablePlants(p, s)
	if len(affordable) == 0 {
		return engine.AuctionPass()
	}
	sort.Slice(affordable, func(i, j int) bool {
		return b.efficiency(affordable[i]) > b.efficiency(affordable[j])
	})
	best := affordable[0]
	if s.Round > 1 && best.Cost > p.Money/2 {
		return engine.AuctionPass()
	}
	return engine.OpenAuction(best.Cost, best.Cost, discardFor(p))
}

func (b *Balanced) BidInAuction(p *engine.Player, s *engine.GameState, plant engine.Card, currentBid, leader int) engine.Action {
	if len(p.Plants) >= engine.MaxPlants && plant.Cost <= p.SmallestPlantCost() {
		return engine.AuctionBidPass()
	}
	ceiling := plant.Cost + plant.Cities
	if currentBid+1 > ceiling || currentBid+1 > p.Money/2 {
		return engine.AuctionBidPass()
	}
	return engine.AuctionBid(currentBid+1, discardFor(p))
}

func (b *Balanced) ChooseResources(p *engine.Player, s *engine.GameState) engine.Action {
	purchases := make(map[engine.ResourceType]int)
	for _, card := range p.Plants {
		// One activation plus half a round of slack.
		target := card.ResourceCost + card.ResourceCost/2
		switch card.Resource {
		case engine.Green:
		case engine.Hybrid:
			have := p.Resources[engine.Oil] + p.Resources[engine.Gas]
			if have < target {
				need := target - have
				addPurchase(p, purchases, engine.Gas, need/2)
				addPurchase(p, purchases, engine.Oil, need-need/2)
			}
		default:
			have := p.Resources[card.Resource]
			if have < target {
				addPurchase(p, purchases, card.Resource, target-have)
			}
		}
	}
	return engine.PurchaseResources(purchases)
}

func (b *Balanced) ChooseCitiesToBuild(p *engine.Player, s *engine.GameState) engine.Action {
	available := openableCities(p, s)
	sort.Slice(available, func(i, j int) bool {
		return buildCost(p, s, available[i]) < buildCost(p, s, available[j])
	})
	limit := 2
	var picks []string
	budget := p.Money - p.Money/4
	for _, city := range available {
		if len(picks) >= limit {
			break
		}
		cost := buildCost(p, s, city)
		if cost > budget {
			break
		}
		budget -= cost
		picks = append(picks, city)
	}
	return engine.BuildCities(picks...)
}

func (b *Balanced) ChooseCitiesToPower(p *engine.Player, s *engine.GameState) engine.Action {
	return engine.PowerCities(len(p.Generators))
}

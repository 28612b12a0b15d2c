package strategy

import (
	"math/rand"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// Random makes arbitrary legal moves. Useful as a baseline opponent and for
// shaking out engine validation.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy backed by the given source.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) ChooseAuctionMove(p *engine.Player, s *engine.GameState) engine.Action {
	affordable := affordablePlants(p, s)
	if len(affordable) == 0 {
		return engine.AuctionPass()
	}
	if s.Round == 1 {
		plant := affordable[r.rng.Intn(len(affordable))]
		return engine.OpenAuction(plant.Cost, plant.Cost, discardFor(p))
	}
	if r.rng.Float64() > 0.3 {
		plant := affordable[r.rng.Intn(len(affordable))]
		maxBid := plant.Cost + 10
		if maxBid > p.Money {
			maxBid = p.Money
		}
		bid := plant.Cost + r.rng.Intn(maxBid-plant.Cost+1)
		return engine.OpenAuction(plant.Cost, bid, discardFor(p))
	}
	return engine.AuctionPass()
}

func (r *Random) BidInAuction(p *engine.Player, s *engine.GameState, plant engine.Card, currentBid, leader int) engine.Action {
	if len(p.Plants) >= engine.MaxPlants && plant.Cost <= p.SmallestPlantCost() {
		return engine.AuctionBidPass()
	}
	if currentBid+1 <= p.Money && r.rng.Float64() < 0.3 {
		return engine.AuctionBid(currentBid+1, discardFor(p))
	}
	return engine.AuctionBidPass()
}

func (r *Random) ChooseResources(p *engine.Player, s *engine.GameState) engine.Action {
	purchases := make(map[engine.ResourceType]int)
	for _, c := range p.Plants {
		rt, ok := fuelType(c)
		if !ok {
			if c.Resource == engine.Hybrid {
				if r.rng.Intn(2) == 0 {
					rt = engine.Oil
				} else {
					rt = engine.Gas
				}
			} else {
				continue
			}
		}
		want := r.rng.Intn(c.ResourceCost*2 + 1)
		addPurchase(p, purchases, rt, want)
	}
	return engine.PurchaseResources(purchases)
}

func (r *Random) ChooseCitiesToBuild(p *engine.Player, s *engine.GameState) engine.Action {
	available := openableCities(p, s)
	if len(available) == 0 {
		return engine.BuildCities()
	}
	if s.Round > 1 && r.rng.Float64() < 0.2 {
		return engine.BuildCities()
	}
	n := r.rng.Intn(3) + 1
	r.rng.Shuffle(len(available), func(i, j int) { available[i], available[j] = available[j], available[i] })
	var picks []string
	budget := p.Money
	for _, city := range available {
		if len(picks) >= n {
			break
		}
		cost := buildCost(p, s, city)
		if cost > budget {
			continue
		}
		budget -= cost
		picks = append(picks, city)
	}
	return engine.BuildCities(picks...)
}

func (r *Random) ChooseCitiesToPower(p *engine.Player, s *engine.GameState) engine.Action {
	return engine.PowerCities(len(p.Generators))
}

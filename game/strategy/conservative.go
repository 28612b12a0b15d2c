package strategy

import (
	"math/rand"
	"sort"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// conservativeReserve is the cash cushion the strategy refuses to dip into
// outside the opening round.
const conservativeReserve = 20

// Conservative hoards money. It buys the cheapest plants on offer, stocks
// only the fuel needed for a single activation and rarely builds more than
// one city per round.
type Conservative struct {
	rng *rand.Rand
}

// NewConservative creates a conservative strategy backed by the given source.
func NewConservative(rng *rand.Rand) *Conservative {
	return &Conservative{rng: rng}
}

func (c *Conservative) reserve(s *engine.GameState) int {
	if s.Round == 1 {
		return 0
	}
	return conservativeReserve
}

func (c *Conservative) ChooseAuctionMove(p *engine.Player, s *engine.GameState) engine.Action {
	affordable := affordablePlants(p, s)
	if len(affordable) == 0 {
		return engine.AuctionPass()
	}
	sortByCost(affordable)
	cheapest := affordable[0]
	if s.Round > 1 && p.Money-cheapest.Cost < c.reserve(s) {
		return engine.AuctionPass()
	}
	return engine.OpenAuction(cheapest.Cost, cheapest.Cost, discardFor(p))
}

func (c *Conservative) BidInAuction(p *engine.Player, s *engine.GameState, plant engine.Card, currentBid, leader int) engine.Action {
	// Never bids a plant up. Whoever opened can have it at their price.
	return engine.AuctionBidPass()
}

func (c *Conservative) ChooseResources(p *engine.Player, s *engine.GameState) engine.Action {
	purchases := make(map[engine.ResourceType]int)
	for _, card := range p.Plants {
		switch card.Resource {
		case engine.Green:
		case engine.Hybrid:
			have := p.Resources[engine.Oil] + p.Resources[engine.Gas]
			if have < card.ResourceCost {
				addPurchase(p, purchases, engine.Oil, card.ResourceCost-have)
			}
		default:
			have := p.Resources[card.Resource]
			if have < card.ResourceCost {
				addPurchase(p, purchases, card.Resource, card.ResourceCost-have)
			}
		}
	}
	return engine.PurchaseResources(purchases)
}

func (c *Conservative) ChooseCitiesToBuild(p *engine.Player, s *engine.GameState) engine.Action {
	available := openableCities(p, s)
	if len(available) == 0 {
		return engine.BuildCities()
	}
	sort.Slice(available, func(i, j int) bool {
		return buildCost(p, s, available[i]) < buildCost(p, s, available[j])
	})
	city := available[0]
	if p.Money-buildCost(p, s, city) < c.reserve(s) {
		return engine.BuildCities()
	}
	return engine.BuildCities(city)
}

func (c *Conservative) ChooseCitiesToPower(p *engine.Player, s *engine.GameState) engine.Action {
	return engine.PowerCities(len(p.Generators))
}

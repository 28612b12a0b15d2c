package strategy

import (
	"github.com/nelsp/pb-power-grid/game/engine"
)

// Scripted replays a fixed sequence of actions per decision kind. Once a
// queue runs dry it falls back to the safest legal default. It exists for
// deterministic tests and replay debugging.
type Scripted struct {
	AuctionMoves []engine.Action
	Bids         []engine.Action
	Purchases    []engine.Action
	Builds       []engine.Action
	Powers       []engine.Action
}

// NewScripted creates an empty script. Append to the exported queues before
// handing it to a game.
func NewScripted() *Scripted {
	return &Scripted{}
}

func pop(queue *[]engine.Action) (engine.Action, bool) {
	if len(*queue) == 0 {
		return engine.Action{}, false
	}
	a := (*queue)[0]
	*queue = (*queue)[1:]
	return a, true
}

func (sc *Scripted) ChooseAuctionMove(p *engine.Player, s *engine.GameState) engine.Action {
	if a, ok := pop(&sc.AuctionMoves); ok {
		return a
	}
	if s.Round == 1 {
		// Opening is mandatory in the first round. Take the cheapest plant
		// at list price rather than stall the game.
		affordable := affordablePlants(p, s)
		if len(affordable) > 0 {
			sortByCost(affordable)
			return engine.OpenAuction(affordable[0].Cost, affordable[0].Cost, discardFor(p))
		}
	}
	return engine.AuctionPass()
}

func (sc *Scripted) BidInAuction(p *engine.Player, s *engine.GameState, plant engine.Card, currentBid, leader int) engine.Action {
	if a, ok := pop(&sc.Bids); ok {
		return a
	}
	return engine.AuctionBidPass()
}

func (sc *Scripted) ChooseResources(p *engine.Player, s *engine.GameState) engine.Action {
	if a, ok := pop(&sc.Purchases); ok {
		return a
	}
	return engine.PurchaseResources(nil)
}

func (sc *Scripted) ChooseCitiesToBuild(p *engine.Player, s *engine.GameState) engine.Action {
	if a, ok := pop(&sc.Builds); ok {
		return a
	}
	return engine.BuildCities()
}

func (sc *Scripted) ChooseCitiesToPower(p *engine.Player, s *engine.GameState) engine.Action {
	if a, ok := pop(&sc.Powers); ok {
		return a
	}
	return engine.PowerCities(len(p.Generators))
}

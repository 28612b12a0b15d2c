package engine

// Shared fixtures for the engine tests: a small card set, a four-city ring
// board, and a scriptable strategy whose unset fields fall back to safe
// defaults (buy the cheapest plant in round 1, otherwise do nothing).

type stubStrategy struct {
	AuctionFunc   func(p *Player, s *GameState) Action
	BidFunc       func(p *Player, s *GameState, plant Card, currentBid, leader int) Action
	ResourcesFunc func(p *Player, s *GameState) Action
	BuildFunc     func(p *Player, s *GameState) Action
	PowerFunc     func(p *Player, s *GameState) Action
}

func (st *stubStrategy) ChooseAuctionMove(p *Player, s *GameState) Action {
	if st.AuctionFunc != nil {
		return st.AuctionFunc(p, s)
	}
	if s.Round == 1 && len(s.CurrentMarket) > 0 {
		c := s.CurrentMarket[0]
		return OpenAuction(c.Cost, c.Cost, 0)
	}
	return AuctionPass()
}

func (st *stubStrategy) BidInAuction(p *Player, s *GameState, plant Card, currentBid, leader int) Action {
	if st.BidFunc != nil {
		return st.BidFunc(p, s, plant, currentBid, leader)
	}
	return AuctionBidPass()
}

func (st *stubStrategy) ChooseResources(p *Player, s *GameState) Action {
	if st.ResourcesFunc != nil {
		return st.ResourcesFunc(p, s)
	}
	return PurchaseResources(nil)
}

func (st *stubStrategy) ChooseCitiesToBuild(p *Player, s *GameState) Action {
	if st.BuildFunc != nil {
		return st.BuildFunc(p, s)
	}
	return BuildCities()
}

func (st *stubStrategy) ChooseCitiesToPower(p *Player, s *GameState) Action {
	if st.PowerFunc != nil {
		return st.PowerFunc(p, s)
	}
	return PowerCities(len(p.Generators))
}

// testCards is nine dark plants plus three light ones. With two players the
// deck is not trimmed, so the opening market is always costs 3 through 11.
func testCards() []Card {
	return []Card{
		{Cost: 3, Resource: Oil, ResourceCost: 2, Cities: 1},
		{Cost: 4, Resource: Coal, ResourceCost: 2, Cities: 1},
		{Cost: 5, Resource: Hybrid, ResourceCost: 2, Cities: 1},
		{Cost: 6, Resource: Gas, ResourceCost: 1, Cities: 1},
		{Cost: 7, Resource: Oil, ResourceCost: 3, Cities: 2},
		{Cost: 8, Resource: Coal, ResourceCost: 3, Cities: 2},
		{Cost: 9, Resource: Oil, ResourceCost: 1, Cities: 1},
		{Cost: 10, Resource: Coal, ResourceCost: 2, Cities: 2},
		{Cost: 11, Resource: Uranium, ResourceCost: 1, Cities: 2},
		{Cost: 16, Resource: Oil, ResourceCost: 2, Cities: 3},
		{Cost: 18, Resource: Green, ResourceCost: 0, Cities: 2},
		{Cost: 22, Resource: Coal, ResourceCost: 2, Cities: 5},
	}
}

func testBoard() *Board {
	b := NewBoard()
	b.AddEdge("alfa", "bravo", 5)
	b.AddEdge("bravo", "charlie", 7)
	b.AddEdge("charlie", "delta", 6)
	b.AddEdge("delta", "alfa", 9)
	return b
}

func testSetup(strategies ...Strategy) *Setup {
	names := []string{"ada", "bob", "carl", "dot", "eli", "fay"}
	return &Setup{
		ID:         "test",
		Cards:      testCards(),
		StageThree: Card{Resource: StageThree},
		Board:      testBoard(),
		Players:    names[:len(strategies)],
		Strategies: strategies,
		Seed:       42,
	}
}

// newTestGame builds a two-player game with a fixed turn order so tests can
// reason about who acts first.
func newTestGame(strategies ...Strategy) *Game {
	if len(strategies) == 0 {
		strategies = []Strategy{&stubStrategy{}, &stubStrategy{}}
	}
	g, err := NewGame(testSetup(strategies...))
	if err != nil {
		panic(err)
	}
	order := make([]int, len(strategies))
	for i := range order {
		order[i] = i
	}
	g.state.PlayerOrder = order
	return g
}

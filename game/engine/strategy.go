package engine

// Strategy is the decision interface the engine calls to obtain a player's
// next action. The engine holds only this interface; concrete strategies
// live outside the core and may be arbitrarily bad: every returned action is
// validated and retried before it can touch game state.
//
// Calls are synchronous. Exactly one decision is pending at any instant and
// the engine resumes as soon as the strategy returns.
type Strategy interface {
	// ChooseAuctionMove is called on the player's turn to open an auction.
	// Expected tags: auction_pass or auction_open. Passing is invalid in
	// round 1, where every player must buy a plant.
	ChooseAuctionMove(p *Player, s *GameState) Action

	// BidInAuction is called while another player's auction is running.
	// Expected tags: auction_bid or auction_bid_pass. The minimum raise is
	// currentBid + 1.
	BidInAuction(p *Player, s *GameState, plant Card, currentBid, leader int) Action

	// ChooseResources is called in phase 3. Expected tag: resource_purchase.
	// An empty purchase map is always legal.
	ChooseResources(p *Player, s *GameState) Action

	// ChooseCitiesToBuild is called in phase 4. Expected tag: city_build.
	// An empty city list is always legal.
	ChooseCitiesToBuild(p *Player, s *GameState) Action

	// ChooseCitiesToPower is called in phase 5. Expected tag: power_cities,
	// either as a plain count or an explicit plant/resource plan.
	ChooseCitiesToPower(p *Player, s *GameState) Action
}

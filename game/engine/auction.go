package engine

import "fmt"

// Phase 2: the power plant auction. Each eligible player in turn order may
// open an auction on one current-market plant (must open in round 1); once
// opened, the remaining eligible players bid in turn order until only the
// leader is left. A player leaves the eligible pool by winning an auction or
// by passing their own opening turn.

func (g *Game) phaseAuction() error {
	s := g.state
	s.Phase = PhaseAuction
	firstRound := s.Round == 1

	eligible := make(map[int]bool, len(s.PlayerOrder))
	for _, pid := range s.PlayerOrder {
		eligible[pid] = true
	}
	anyOpened := false

	for {
		pid, ok := g.nextEligible(eligible)
		if !ok {
			break
		}
		p := s.PlayerByID(pid)

		act, err := g.decide(p,
			[]ActionType{ActionAuctionPass, ActionAuctionOpen},
			func(st Strategy) Action { return st.ChooseAuctionMove(p, s) },
			func(a Action) error { return g.validateOpen(p, a, firstRound) })
		if err != nil {
			// The engine cannot guess a legal opening move, so exhausting
			// retries here aborts the run.
			return fmt.Errorf("player %d auction opening: %w", pid, err)
		}

		if act.Type == ActionAuctionPass {
			g.logf("player %d passed on opening an auction", pid)
			delete(eligible, pid)
			continue
		}

		anyOpened = true
		if err := g.runAuction(p, act, eligible); err != nil {
			return err
		}
	}

	if !firstRound && !anyOpened {
		if c, ok := g.removeCheapestCurrent(); ok {
			g.logf("all players passed - removed plant %d", c.Cost)
			g.refillMarkets()
		}
	}

	g.record("after_auction")
	return nil
}

// nextEligible returns the first player in turn order still in the eligible
// pool.
func (g *Game) nextEligible(eligible map[int]bool) (int, bool) {
	for _, pid := range g.state.PlayerOrder {
		if eligible[pid] {
			return pid, true
		}
	}
	return 0, false
}

// validateOpen checks an auction opening move. Passing is legal except in
// round 1. Opening requires a current-market plant, a bid between the plant
// cost and the player's money, and, for a player already holding three
// plants, a named discard plus a plant strictly better than their worst.
func (g *Game) validateOpen(p *Player, a Action, firstRound bool) error {
	if a.Type == ActionAuctionPass {
		if firstRound {
			return fmt.Errorf("%w: every player must buy a plant in round 1", ErrInvalidAction)
		}
		return nil
	}
	plant, ok := g.state.MarketPlant(a.PlantCost)
	if !ok {
		return fmt.Errorf("%w: plant %d is not in the current market", ErrInvalidAction, a.PlantCost)
	}
	if a.Bid < plant.Cost {
		return fmt.Errorf("%w: opening bid %d below plant cost %d", ErrInvalidAction, a.Bid, plant.Cost)
	}
	if a.Bid > p.Money {
		return fmt.Errorf("%w: bid %d, player has %d", ErrInsufficientFunds, a.Bid, p.Money)
	}
	if len(p.Plants) >= MaxPlants {
		if err := g.validateDiscard(p, a.DiscardCost); err != nil {
			return err
		}
		if smallest := p.SmallestPlantCost(); plant.Cost <= smallest {
			return fmt.Errorf("%w: plant %d is not better than the smallest owned plant %d", ErrInvalidAction, plant.Cost, smallest)
		}
	}
	return nil
}

// validateBid checks a raise in a running auction.
func (g *Game) validateBid(p *Player, a Action, currentBid int) error {
	if a.Type == ActionAuctionBidPass {
		return nil
	}
	if a.Bid < currentBid+1 {
		return fmt.Errorf("%w: bid %d does not beat current bid %d", ErrInvalidAction, a.Bid, currentBid)
	}
	if a.Bid > p.Money {
		return fmt.Errorf("%w: bid %d, player has %d", ErrInsufficientFunds, a.Bid, p.Money)
	}
	if len(p.Plants) >= MaxPlants {
		return g.validateDiscard(p, a.DiscardCost)
	}
	return nil
}

func (g *Game) validateDiscard(p *Player, discard int) error {
	if discard == 0 {
		return fmt.Errorf("%w: player holds %d plants and must name a discard", ErrInvalidAction, MaxPlants)
	}
	if _, ok := p.PlantByCost(discard); !ok {
		return fmt.Errorf("%w: player does not own plant %d to discard", ErrInvalidAction, discard)
	}
	return nil
}

// runAuction executes one plant auction from a validated opening move
// through resolution. The winner leaves the eligible pool; a losing opener
// stays eligible to open again later.
func (g *Game) runAuction(opener *Player, open Action, eligible map[int]bool) error {
	s := g.state
	plant, _ := s.MarketPlant(open.PlantCost)
	g.logf("player %d opened an auction on plant %d at %d", opener.ID, plant.Cost, open.Bid)

	// Participants in turn order, opener first.
	active := []int{opener.ID}
	for _, pid := range orderedAfter(s.PlayerOrder, opener.ID) {
		if eligible[pid] {
			active = append(active, pid)
		}
	}

	leader := opener.ID
	bid := open.Bid
	discards := map[int]int{opener.ID: open.DiscardCost}

	s.Auction = &AuctionState{PlantCost: plant.Cost, Bid: bid, Leader: leader, Remaining: append([]int(nil), active...)}
	defer func() { s.Auction = nil }()

	i := 1 // the player after the opener speaks first
	for len(active) > 1 {
		if i >= len(active) {
			i = 0
		}
		pid := active[i]
		if pid == leader {
			i++
			continue
		}
		p := s.PlayerByID(pid)

		act, err := g.decide(p,
			[]ActionType{ActionAuctionBid, ActionAuctionBidPass},
			func(st Strategy) Action { return st.BidInAuction(p, s, plant, bid, leader) },
			func(a Action) error { return g.validateBid(p, a, bid) })
		if err != nil {
			if isFatal(err) {
				return err
			}
			// a pass is always legal, so a broken bidder degrades to one
			g.logf("player %d: bid retries exhausted, passing", pid)
			act = AuctionBidPass()
		}

		if act.Type == ActionAuctionBidPass {
			g.logf("player %d passed at %d", pid, bid)
			active = append(active[:i:i], active[i+1:]...)
		} else {
			bid = act.Bid
			leader = pid
			discards[pid] = act.DiscardCost
			g.logf("player %d raised to %d", pid, bid)
			i++
		}
		s.Auction.Bid = bid
		s.Auction.Leader = leader
		s.Auction.Remaining = append([]int(nil), active...)
		g.record("auction_bid")
	}

	return g.resolveAuction(plant, leader, bid, discards[leader], eligible)
}

// resolveAuction executes the purchase for the auction winner: money is
// deducted, the plant changes hands, a forced discard is applied, and the
// market is refilled.
func (g *Game) resolveAuction(plant Card, winnerID, bid, discard int, eligible map[int]bool) error {
	s := g.state
	winner := s.PlayerByID(winnerID)

	if _, ok := g.takeFromCurrentMarket(plant.Cost); !ok {
		return fmt.Errorf("%w: plant %d vanished from the market", ErrInvalidAction, plant.Cost)
	}
	if err := winner.Debit(bid); err != nil {
		// bids are validated against money before acceptance
		return err
	}
	winner.Plants = append(winner.Plants, plant)
	if len(winner.Plants) > MaxPlants {
		if discard == 0 || !winner.RemovePlant(discard) {
			// validated at bid time; fall back to dropping the cheapest
			winner.RemovePlant(winner.SmallestPlantCost())
		}
		g.logf("player %d discarded a plant to stay at %d", winnerID, MaxPlants)
	}
	g.refillMarkets()

	delete(eligible, winnerID)
	g.logf("player %d won plant %d for %d", winnerID, plant.Cost, bid)
	g.record("auction_resolved")
	return nil
}

// orderedAfter returns the turn order rotated to start just after the given
// player.
func orderedAfter(order []int, pid int) []int {
	idx := -1
	for i, id := range order {
		if id == pid {
			idx = i
			break
		}
	}
	if idx == -1 {
		return append([]int(nil), order...)
	}
	rotated := make([]int, 0, len(order)-1)
	rotated = append(rotated, order[idx+1:]...)
	rotated = append(rotated, order[:idx]...)
	return rotated
}

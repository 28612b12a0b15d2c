package engine

import "sort"

// Plant market and deck handling. The deck is ordered; the head is the next
// draw and returned cards go to the bottom.

func sortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Cost < cards[j].Cost })
}

// drawNextPlant pops the next usable card from the deck. Drawing the stage
// three marker sets the trigger and consumes it; the marker never reaches a
// market. In steps 1 and 2 only dark cards are drawn: light cards are
// skipped and returned to the bottom of the deck.
func (g *Game) drawNextPlant() (Card, bool) {
	s := g.state
	var skipped []Card
	for len(s.Deck) > 0 {
		c := s.Deck[0]
		s.Deck = s.Deck[1:]
		if c.IsStageThree() {
			g.logf("stage three card drawn")
			s.Step3Triggered = true
			continue
		}
		if s.Step < 3 && c.Tier() == Light {
			skipped = append(skipped, c)
			continue
		}
		s.Deck = append(s.Deck, skipped...)
		return c, true
	}
	s.Deck = append(s.Deck, skipped...)
	return Card{}, false
}

// refillMarkets restores the market shape for the current step. In steps 1
// and 2 the combined markets are topped up to 9 cards and split into the 4
// cheapest (current) and the rest (future, capped at 5 with the excess sent
// to the bottom of the deck). In step 3 there is a single 6-card market and
// the future market stays empty.
func (g *Game) refillMarkets() {
	s := g.state
	pool := make([]Card, 0, len(s.CurrentMarket)+len(s.FutureMarket)+1)
	pool = append(pool, s.CurrentMarket...)
	pool = append(pool, s.FutureMarket...)

	if s.Step < 3 {
		for len(pool) < 9 {
			c, ok := g.drawNextPlant()
			if !ok {
				break
			}
			pool = append(pool, c)
		}
		sortCards(pool)
		if len(pool) <= 4 {
			s.CurrentMarket = pool
			s.FutureMarket = nil
			return
		}
		s.CurrentMarket = pool[:4:4]
		future := pool[4:]
		for len(future) > 5 {
			s.Deck = append(s.Deck, future[len(future)-1])
			future = future[:len(future)-1]
		}
		s.FutureMarket = future
		return
	}

	for len(pool) < 6 {
		c, ok := g.drawNextPlant()
		if !ok {
			break
		}
		pool = append(pool, c)
	}
	sortCards(pool)
	if len(pool) > 6 {
		s.Deck = append(s.Deck, pool[6:]...)
		pool = pool[:6]
	}
	s.CurrentMarket = pool
	s.FutureMarket = nil
}

// takeFromCurrentMarket removes and returns the current-market plant with
// the given cost. The market is not refilled here.
func (g *Game) takeFromCurrentMarket(cost int) (Card, bool) {
	for i, c := range g.state.CurrentMarket {
		if c.Cost == cost {
			g.state.CurrentMarket = append(g.state.CurrentMarket[:i:i], g.state.CurrentMarket[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// removeCheapestCurrent permanently removes the cheapest current-market
// plant from the game.
func (g *Game) removeCheapestCurrent() (Card, bool) {
	if len(g.state.CurrentMarket) == 0 {
		return Card{}, false
	}
	// markets are kept sorted ascending
	c := g.state.CurrentMarket[0]
	g.state.CurrentMarket = g.state.CurrentMarket[1:]
	return c, true
}

// removeExpiredPlants pulls every current-market plant whose cost is at or
// below the highest generator count among all players and replaces it via a
// fresh draw. Called after every build.
func (g *Game) removeExpiredPlants() {
	maxCities := 0
	for _, p := range g.state.Players {
		if n := len(p.Generators); n > maxCities {
			maxCities = n
		}
	}
	kept := g.state.CurrentMarket[:0]
	removed := 0
	for _, c := range g.state.CurrentMarket {
		if c.Cost <= maxCities {
			g.logf("plant %d expired (max city count %d)", c.Cost, maxCities)
			removed++
			continue
		}
		kept = append(kept, c)
	}
	if removed > 0 {
		g.state.CurrentMarket = kept
		g.refillMarkets()
	}
}

// rotateMarketForBureaucracy performs the end-of-round market update. In
// steps 1 and 2 the most expensive future plant goes to the bottom of the
// deck and the markets are topped back up; in step 3 the single market is
// simply refilled.
func (g *Game) rotateMarketForBureaucracy() {
	s := g.state
	if s.Step < 3 && len(s.FutureMarket) > 0 {
		last := s.FutureMarket[len(s.FutureMarket)-1]
		s.FutureMarket = s.FutureMarket[:len(s.FutureMarket)-1]
		s.Deck = append(s.Deck, last)
	}
	g.refillMarkets()
}

// checkStepTransitions applies the step 1->2 and 2->3 transitions. Step 2
// begins the moment any player reaches the city threshold: the cheapest
// current plant is removed without replacement. Step 3 begins once the
// marker has been drawn: the cheapest plant is removed and both markets
// collapse into the single 6-card market.
func (g *Game) checkStepTransitions() {
	s := g.state
	if s.Step == 1 {
		threshold := g.rules.Step2Threshold(len(s.Players))
		for _, p := range s.Players {
			if len(p.Generators) >= threshold {
				s.Step = 2
				g.logf("step 2 begins: player %d connected %d cities", p.ID, len(p.Generators))
				g.removeCheapestCurrent()
				break
			}
		}
	}
	if s.Step == 2 && s.Step3Triggered {
		s.Step = 3
		g.logf("step 3 begins")
		g.removeCheapestCurrent()
		g.refillMarkets()
	}
}

package engine

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

// Game drives a complete match through the five-phase round loop. It is the
// exclusive owner of the GameState; strategies only ever observe it. The
// engine is single-threaded and turn-synchronous: exactly one strategy
// decision is pending at any instant.
type Game struct {
	ID string

	state      *GameState
	rules      *Rules
	strategies []Strategy // indexed by player id
	recorder   Recorder
	logger     *log.Logger
	maxRounds  int
}

// State returns the live game state. Callers that need a stable view should
// use Snapshot.
func (g *Game) State() *GameState {
	return g.state
}

// Snapshot returns a deep copy of the current state, safe to serialize or
// hand to other goroutines.
func (g *Game) Snapshot() *GameState {
	return g.state.Clone()
}

// Rules returns the rule tables the game was created with.
func (g *Game) Rules() *Rules {
	return g.rules
}

// SetRecorder installs the snapshot sink. Pass nil to disable recording.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// Over reports whether the game has finished.
func (g *Game) Over() bool {
	return g.state.GameOver
}

func (g *Game) logf(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}

func (g *Game) record(description string) {
	if g.recorder != nil {
		g.recorder.Record(description, g.state.Clone())
	}
}

// SetMaxRounds overrides the round cap. Only meaningful before Run.
func (g *Game) SetMaxRounds(n int) {
	if n > 0 {
		g.maxRounds = n
	}
}

// Run plays rounds until an end condition is met and returns the winner's
// player id. A round cap (Setup.MaxRounds) bounds runaway games.
func (g *Game) Run() (int, error) {
	for !g.state.GameOver {
		if g.state.Round > g.maxRounds {
			g.logf("maximum rounds (%d) reached", g.maxRounds)
			g.state.GameOver = true
			g.finalize()
			break
		}
		if err := g.PlayRound(); err != nil {
			return -1, err
		}
	}
	return g.state.Winner, nil
}

// finalize resolves the winner once the game is over.
func (g *Game) finalize() {
	if g.state.Winner < 0 {
		g.state.Winner = g.DetermineWinner()
		g.record("game_over")
	}
}

// PlayRound advances the game by one full round (phases 1 through 5). The
// bureaucracy phase is skipped in the round the end condition triggers.
func (g *Game) PlayRound() error {
	s := g.state
	if s.GameOver {
		return ErrGameOver
	}
	g.logf("round %d - step %d", s.Round, s.Step)

	g.phaseDetermineOrder()
	g.record("after_determine_order")

	if err := g.phaseAuction(); err != nil {
		return err
	}

	if err := g.phaseBuyResources(); err != nil {
		return err
	}

	if err := g.phaseBuild(); err != nil {
		return err
	}

	if g.checkEndGame() {
		g.logf("end condition reached in round %d", s.Round)
		g.finalize()
		return nil
	}

	if err := g.phaseBureaucracy(); err != nil {
		return err
	}
	g.checkStepTransitions()

	s.Round++
	s.Phase = PhaseDetermineOrder
	return nil
}

// phaseDetermineOrder sorts the turn order by connected cities (descending),
// then by most expensive owned plant (descending). The sort is stable so
// fully tied players keep their relative order.
func (g *Game) phaseDetermineOrder() {
	s := g.state
	s.Phase = PhaseDetermineOrder
	sort.SliceStable(s.PlayerOrder, func(i, j int) bool {
		a := s.PlayerByID(s.PlayerOrder[i])
		b := s.PlayerByID(s.PlayerOrder[j])
		if len(a.Generators) != len(b.Generators) {
			return len(a.Generators) > len(b.Generators)
		}
		return a.MaxPlantCost() > b.MaxPlantCost()
	})
	g.logf("player order: %v", s.PlayerOrder)
}

// decide requests an action from the player's strategy, validates it, and
// retries up to MaxDecisionRetries times. The rejection reason is logged
// before every retry; the last reason is attached to the returned error.
func (g *Game) decide(p *Player, expect []ActionType, request func(Strategy) Action, validate func(Action) error) (Action, error) {
	if p.ID < 0 || p.ID >= len(g.strategies) || g.strategies[p.ID] == nil {
		return Action{}, fmt.Errorf("%w: player %d", ErrNoStrategyAssigned, p.ID)
	}
	strat := g.strategies[p.ID]
	var lastErr error
	for attempt := 1; attempt <= MaxDecisionRetries; attempt++ {
		act := request(strat)
		if !tagMatches(act.Type, expect) {
			lastErr = fmt.Errorf("%w: expected one of %v, got %q", ErrInvalidAction, expect, act.Type)
		} else if validate != nil {
			lastErr = validate(act)
		} else {
			lastErr = nil
		}
		if lastErr == nil {
			return act, nil
		}
		g.logf("player %d: rejected %s (attempt %d/%d): %v", p.ID, act, attempt, MaxDecisionRetries, lastErr)
	}
	return Action{}, fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

func tagMatches(t ActionType, expect []ActionType) bool {
	for _, e := range expect {
		if t == e {
			return true
		}
	}
	return false
}

// phaseBuyResources runs phase 3 in reverse turn order. Each sub-purchase is
// validated independently; invalid or unaffordable ones are skipped rather
// than aborting the player's whole action.
func (g *Game) phaseBuyResources() error {
	s := g.state
	s.Phase = PhaseBuyResources
	for i := len(s.PlayerOrder) - 1; i >= 0; i-- {
		p := s.PlayerByID(s.PlayerOrder[i])
		act, err := g.decide(p, []ActionType{ActionResourcePurchase},
			func(st Strategy) Action { return st.ChooseResources(p, s) }, nil)
		if err != nil {
			if isFatal(err) {
				return err
			}
			// buying nothing is always legal
			g.logf("player %d: resource decision abandoned: %v", p.ID, err)
			continue
		}
		for _, rt := range MarketResourceTypes {
			amount := act.Resources[rt]
			if amount <= 0 {
				continue
			}
			if err := g.buyResource(p, rt, amount); err != nil {
				g.logf("player %d: skipped %d %s: %v", p.ID, amount, rt, err)
			}
		}
	}
	g.record("after_buy_resources")
	return nil
}

// buyResource validates and applies a single sub-purchase. All checks run
// before any mutation.
func (g *Game) buyResource(p *Player, rt ResourceType, amount int) error {
	pool, ok := g.state.Pools[rt]
	if !ok {
		return fmt.Errorf("%w: unknown resource %q", ErrInvalidAction, rt)
	}
	if !p.CanStore(rt, amount) {
		return fmt.Errorf("%w: cannot store %d more %s", ErrCapacityExceeded, amount, rt)
	}
	cost, ok := pool.PossiblePurchases()[amount]
	if !ok {
		return fmt.Errorf("%w: %d %s available", ErrInsufficientSupply, pool.OccupiedSlots(), rt)
	}
	if cost > p.Money {
		return fmt.Errorf("%w: %d %s costs %d, player has %d", ErrInsufficientFunds, amount, rt, cost, p.Money)
	}
	if _, err := pool.Purchase(amount); err != nil {
		return err
	}
	if err := p.Debit(cost); err != nil {
		return err
	}
	p.Resources[rt] += amount
	g.logf("player %d bought %d %s for %d", p.ID, amount, rt, cost)
	g.record("resource_purchase")
	return nil
}

// phaseBuild runs phase 4 in reverse turn order. Each build mutates state
// immediately and re-triggers plant expiry and step transition checks.
func (g *Game) phaseBuild() error {
	s := g.state
	s.Phase = PhaseBuild
	for i := len(s.PlayerOrder) - 1; i >= 0; i-- {
		p := s.PlayerByID(s.PlayerOrder[i])
		act, err := g.decide(p, []ActionType{ActionCityBuild},
			func(st Strategy) Action { return st.ChooseCitiesToBuild(p, s) }, nil)
		if err != nil {
			if isFatal(err) {
				return err
			}
			// building nothing is always legal
			g.logf("player %d: build decision abandoned: %v", p.ID, err)
			continue
		}
		for _, city := range act.Cities {
			if err := g.buildCity(p, city); err != nil {
				g.logf("player %d: skipped build in %s: %v", p.ID, city, err)
			}
		}
	}
	g.record("after_build")
	return nil
}

// buildCity validates and applies one city build. All checks run before any
// mutation.
func (g *Game) buildCity(p *Player, city string) error {
	s := g.state
	if !s.Board.HasCity(city) {
		return fmt.Errorf("%w: unknown city %q", ErrInvalidAction, city)
	}
	occupants := s.Occupancy[city]
	position := len(occupants)
	if position >= MaxBuildersPerCity {
		return fmt.Errorf("%w: %s is full", ErrInvalidAction, city)
	}
	if p.OwnsCity(city) {
		return fmt.Errorf("%w: already built in %s", ErrInvalidAction, city)
	}
	if position >= s.Step {
		return fmt.Errorf("%w: slot %d in %s not open until step %d", ErrInvalidAction, position+1, city, position+1)
	}
	cost := g.rules.SlotCosts[position] + s.Board.ConnectionCost(p.Generators, city)
	if cost > p.Money {
		return fmt.Errorf("%w: building in %s costs %d, player has %d", ErrInsufficientFunds, city, cost, p.Money)
	}

	if err := p.Debit(cost); err != nil {
		return err
	}
	p.Generators = append(p.Generators, city)
	s.Occupancy[city] = append(s.Occupancy[city], p.ID)
	g.logf("player %d built in %s for %d", p.ID, city, cost)
	g.record("build")

	g.removeExpiredPlants()
	g.checkStepTransitions()
	return nil
}

// phaseBureaucracy runs phase 5: every player powers cities and earns money,
// then the resource market resupplies and the plant market rotates.
func (g *Game) phaseBureaucracy() error {
	s := g.state
	s.Phase = PhaseBureaucracy
	for _, p := range s.Players {
		act, err := g.decide(p, []ActionType{ActionPowerCities},
			func(st Strategy) Action { return st.ChooseCitiesToPower(p, s) },
			func(a Action) error { return g.validatePowerPlan(p, a) })
		if err != nil {
			if isFatal(err) {
				return err
			}
			// fall back to powering as much as possible
			g.logf("player %d: power decision abandoned, powering greedily: %v", p.ID, err)
			act = PowerCities(len(p.Generators))
		}

		var powered int
		if act.PowerPlan != nil {
			powered = g.applyPowerPlan(p, act.PowerPlan)
		} else {
			target := act.PowerCount
			if target > len(p.Generators) {
				target = len(p.Generators)
			}
			powered = g.powerGreedily(p, target)
		}
		payment := g.rules.Payment(powered)
		p.Credit(payment)
		g.logf("player %d powered %d cities, earned %d", p.ID, powered, payment)
	}

	for _, rt := range MarketResourceTypes {
		amount := g.rules.ResupplyAmount(rt, len(s.Players), s.Step)
		placed := s.Pools[rt].Resupply(amount)
		g.logf("resupplied %d %s", placed, rt)
	}

	g.rotateMarketForBureaucracy()
	g.record("after_bureaucracy")
	return nil
}

// validatePowerPlan checks an explicit power plan against ownership and
// inventory. Plain counts only need to be non-negative; they are clamped to
// the generator count later rather than rejected.
func (g *Game) validatePowerPlan(p *Player, a Action) error {
	if a.PowerPlan == nil {
		if a.PowerCount < 0 {
			return fmt.Errorf("%w: negative power count %d", ErrInvalidAction, a.PowerCount)
		}
		return nil
	}
	spent := map[ResourceType]int{}
	seen := map[int]bool{}
	for _, alloc := range a.PowerPlan {
		plant, ok := p.PlantByCost(alloc.PlantCost)
		if !ok {
			return fmt.Errorf("%w: player does not own plant %d", ErrInvalidAction, alloc.PlantCost)
		}
		if seen[alloc.PlantCost] {
			return fmt.Errorf("%w: plant %d allocated twice", ErrInvalidAction, alloc.PlantCost)
		}
		seen[alloc.PlantCost] = true
		total := 0
		for rt, n := range alloc.Resources {
			if n < 0 {
				return fmt.Errorf("%w: negative allocation of %s", ErrInvalidAction, rt)
			}
			if n > 0 && !plant.Consumes(rt) {
				return fmt.Errorf("%w: plant %d does not burn %s", ErrInvalidAction, plant.Cost, rt)
			}
			spent[rt] += n
			total += n
		}
		if total != plant.ResourceCost {
			return fmt.Errorf("%w: plant %d needs %d units, plan allocates %d", ErrInvalidAction, plant.Cost, plant.ResourceCost, total)
		}
	}
	for rt, n := range spent {
		if n > p.Resources[rt] {
			return fmt.Errorf("%w: plan spends %d %s, player holds %d", ErrInvalidAction, n, rt, p.Resources[rt])
		}
	}
	return nil
}

// applyPowerPlan consumes the resources named in a validated plan and
// returns the number of cities actually powered (capped by generators).
func (g *Game) applyPowerPlan(p *Player, plan []PowerAllocation) int {
	powered := 0
	for _, alloc := range plan {
		plant, _ := p.PlantByCost(alloc.PlantCost)
		for rt, n := range alloc.Resources {
			if n <= 0 {
				continue
			}
			p.Resources[rt] -= n
			g.state.Pools[rt].Release(n)
		}
		powered += plant.Cities
	}
	if powered > len(p.Generators) {
		powered = len(p.Generators)
	}
	return powered
}

// powerGreedily selects plants for the player until the target is covered,
// consuming resources as it goes, and returns the cities actually powered.
// Green plants are used first, then the rest by descending
// cities-per-resource-cost efficiency.
func (g *Game) powerGreedily(p *Player, target int) int {
	if target <= 0 {
		return 0
	}
	usable := make([]Card, 0, len(p.Plants))
	for _, c := range p.Plants {
		if c.Resource == Green || g.hasResourcesFor(p, c) {
			usable = append(usable, c)
		}
	}
	sort.SliceStable(usable, func(i, j int) bool {
		a, b := usable[i], usable[j]
		if (a.Resource == Green) != (b.Resource == Green) {
			return a.Resource == Green
		}
		// cities/(cost+1) descending, compared without floats
		return a.Cities*(b.ResourceCost+1) > b.Cities*(a.ResourceCost+1)
	})
	powered := 0
	for _, c := range usable {
		if powered >= target {
			break
		}
		// Earlier plants may have drained the fuel this one counted on.
		if c.Resource != Green && !g.hasResourcesFor(p, c) {
			continue
		}
		g.consumeFor(p, c)
		powered += c.Cities
	}
	if powered > target {
		powered = target
	}
	return powered
}

// hasResourcesFor reports whether the player holds enough resources to run
// the plant once. Hybrids may combine oil and gas.
func (g *Game) hasResourcesFor(p *Player, c Card) bool {
	switch c.Resource {
	case Green:
		return true
	case Hybrid:
		return p.Resources[Oil]+p.Resources[Gas] >= c.ResourceCost
	case Coal, Oil, Gas, Uranium:
		return p.Resources[c.Resource] >= c.ResourceCost
	default:
		return false
	}
}

// consumeFor burns one activation's worth of resources for the plant,
// returning the units to the market's off-board reserve. Hybrids run on a
// single fuel when either oil or gas alone covers the cost (oil checked
// first) and mix the two only when neither does.
func (g *Game) consumeFor(p *Player, c Card) {
	switch c.Resource {
	case Green:
		return
	case Hybrid:
		need := c.ResourceCost
		switch {
		case p.Resources[Oil] >= need:
			p.Resources[Oil] -= need
			g.state.Pools[Oil].Release(need)
		case p.Resources[Gas] >= need:
			p.Resources[Gas] -= need
			g.state.Pools[Gas].Release(need)
		default:
			useOil := p.Resources[Oil]
			if useOil > need {
				useOil = need
			}
			if useOil > 0 {
				p.Resources[Oil] -= useOil
				g.state.Pools[Oil].Release(useOil)
				need -= useOil
			}
			if need > 0 {
				p.Resources[Gas] -= need
				g.state.Pools[Gas].Release(need)
			}
		}
	default:
		p.Resources[c.Resource] -= c.ResourceCost
		g.state.Pools[c.Resource].Release(c.ResourceCost)
	}
}

// PowerableCities recomputes how many cities the player could power right
// now without consuming anything. Used for the end-of-game standings.
func (g *Game) PowerableCities(p *Player) int {
	total := 0
	for _, c := range p.Plants {
		if g.hasResourcesFor(p, c) {
			total += c.Cities
		}
	}
	if total > len(p.Generators) {
		total = len(p.Generators)
	}
	return total
}

// checkEndGame flags the game as over once any player connects the end-game
// generator count. Run after the build phase; the round's bureaucracy phase
// is skipped.
func (g *Game) checkEndGame() bool {
	for _, p := range g.state.Players {
		if len(p.Generators) >= EndGameGenerators {
			g.state.GameOver = true
			return true
		}
	}
	return false
}

// DetermineWinner picks the player able to power the most cities right now,
// breaking ties by money, then by lowest player id.
func (g *Game) DetermineWinner() int {
	best := -1
	bestPowered := -1
	bestMoney := 0
	for _, p := range g.state.Players {
		powered := g.PowerableCities(p)
		if powered > bestPowered || (powered == bestPowered && p.Money > bestMoney) {
			best = p.ID
			bestPowered = powered
			bestMoney = p.Money
		}
	}
	return best
}

// isFatal reports whether a decision error must abort the run instead of
// degrading to a no-op. Missing strategies are always fatal; exhausted
// retries degrade wherever a legal default exists (pass, buy nothing, build
// nothing, power greedily).
func isFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrRetriesExhausted)
}

package engine

import (
	"fmt"
	"log"
	"math/rand"
)

// Setup carries everything needed to start a game: the plant card set, the
// board, the player roster with their strategies, the rule tables, and the
// random seed. The engine does not load configuration files itself; the
// config package produces Setups from disk.
type Setup struct {
	ID         string
	Cards      []Card
	StageThree Card
	Board      *Board
	Players    []string
	Strategies []Strategy
	Rules      *Rules // nil means DefaultRules
	Seed       int64
	MaxRounds  int         // 0 means the rules' MaxRounds
	Logger     *log.Logger // nil means silent
}

// NewGame validates the setup, shuffles and splits the deck, fills the
// resource pools, and returns a game ready for PlayRound or Run. All
// shuffling uses the seeded source, so identical setups produce identical
// games.
func NewGame(setup *Setup) (*Game, error) {
	if setup == nil {
		return nil, fmt.Errorf("setup cannot be nil")
	}
	n := len(setup.Players)
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, n)
	}
	if len(setup.Strategies) != n {
		return nil, fmt.Errorf("%d players but %d strategies", n, len(setup.Strategies))
	}
	for i, st := range setup.Strategies {
		if st == nil {
			return nil, fmt.Errorf("%w: player %d", ErrNoStrategyAssigned, i)
		}
	}
	if setup.Board == nil || len(setup.Board.Adjacency) == 0 {
		return nil, fmt.Errorf("board cannot be empty")
	}
	if len(setup.Cards) < 9 {
		return nil, fmt.Errorf("card set needs at least 9 plants, got %d", len(setup.Cards))
	}
	seenCosts := make(map[int]bool, len(setup.Cards))
	for _, c := range setup.Cards {
		if c.Cost <= 0 {
			return nil, fmt.Errorf("plant cost must be positive, got %d", c.Cost)
		}
		if seenCosts[c.Cost] {
			return nil, fmt.Errorf("duplicate plant cost %d", c.Cost)
		}
		seenCosts[c.Cost] = true
	}
	if !setup.StageThree.IsStageThree() {
		return nil, fmt.Errorf("stage three card has resource %q", setup.StageThree.Resource)
	}

	rules := setup.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	maxRounds := setup.MaxRounds
	if maxRounds <= 0 {
		maxRounds = rules.MaxRounds
	}
	rng := rand.New(rand.NewSource(setup.Seed))

	players := make([]*Player, n)
	order := make([]int, n)
	for i, name := range setup.Players {
		players[i] = NewPlayer(i, name, rules.StartingMoney)
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	current, future, deck := buildDeck(setup.Cards, setup.StageThree, n, rng)

	occupancy := make(map[string][]int, len(setup.Board.Adjacency))
	for city := range setup.Board.Adjacency {
		occupancy[city] = []int{}
	}

	g := &Game{
		ID:         setup.ID,
		rules:      rules,
		strategies: append([]Strategy(nil), setup.Strategies...),
		logger:     setup.Logger,
		maxRounds:  maxRounds,
		state: &GameState{
			Step:          1,
			Round:         1,
			Phase:         PhaseDetermineOrder,
			PlayerOrder:   order,
			Players:       players,
			CurrentMarket: current,
			FutureMarket:  future,
			Deck:          deck,
			Board:         setup.Board,
			Pools:         NewStandardPools(),
			Occupancy:     occupancy,
			Winner:        -1,
		},
	}
	return g, nil
}

// buildDeck shuffles and splits the card set. The nine cheapest-tier (dark)
// cards drawn first form the opening market, sorted ascending: four current,
// five future. Player-count trimming removes cards from the game entirely,
// and the stage three marker goes to the bottom of the deck.
func buildDeck(cards []Card, stageThree Card, players int, rng *rand.Rand) (current, future, deck []Card) {
	var dark, light []Card
	for _, c := range cards {
		if c.Tier() == Dark {
			dark = append(dark, c)
		} else {
			light = append(light, c)
		}
	}
	rng.Shuffle(len(dark), func(i, j int) { dark[i], dark[j] = dark[j], dark[i] })
	rng.Shuffle(len(light), func(i, j int) { light[i], light[j] = light[j], light[i] })

	switch players {
	case 3:
		dark = trim(dark, 2)
		light = trim(light, 6)
	case 4:
		dark = trim(dark, 1)
		light = trim(light, 3)
	}

	nine := 9
	if nine > len(dark) {
		nine = len(dark)
	}
	opening := append([]Card(nil), dark[:nine]...)
	sortCards(opening)
	split := 4
	if split > len(opening) {
		split = len(opening)
	}
	current = opening[:split:split]
	future = opening[split:]

	deck = append(append([]Card(nil), dark[nine:]...), light...)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	deck = append(deck, stageThree)
	return current, future, deck
}

func trim(cards []Card, n int) []Card {
	if n >= len(cards) {
		return nil
	}
	return cards[:len(cards)-n]
}

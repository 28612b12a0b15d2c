package config

import (
	"fmt"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// PlantSpec describes one power plant card in a configuration file.
type PlantSpec struct {
	Cost         int    `json:"cost"`
	Resource     string `json:"resource"`
	ResourceCost int    `json:"resource_cost,omitempty"`
	Cities       int    `json:"cities"`
}

// EdgeSpec is one bidirectional connection between two cities.
type EdgeSpec struct {
	From string `json:"from"`
	To   string `json:"to"`
	Cost int    `json:"cost"`
}

// MapSpec describes the board: the playable cities and the connections
// between them.
type MapSpec struct {
	Cities []string   `json:"cities"`
	Edges  []EdgeSpec `json:"edges"`
}

// GameConfig is a complete named game definition: the plant deck, the board
// map, and optionally a rules file overriding the standard tables.
type GameConfig struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	RulesFile   string      `json:"rules_file,omitempty"` // yaml, relative to the config dir
	Plants      []PlantSpec `json:"plants"`
	Map         MapSpec     `json:"map"`

	// rules is resolved from RulesFile at load time; nil means the
	// standard tables.
	rules *engine.Rules
}

// Rules returns the rule tables for this configuration.
func (c *GameConfig) Rules() *engine.Rules {
	if c.rules == nil {
		return engine.DefaultRules()
	}
	return c.rules
}

var resourceNames = map[string]engine.ResourceType{
	"coal":    engine.Coal,
	"oil":     engine.Oil,
	"gas":     engine.Gas,
	"uranium": engine.Uranium,
	"green":   engine.Green,
	"oil&gas": engine.Hybrid,
}

// Validate checks a configuration for internal consistency. It reports the
// first problem found.
func (c *GameConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config has no name")
	}
	if len(c.Plants) < 9 {
		return fmt.Errorf("config needs at least 9 plants, got %d", len(c.Plants))
	}
	seenCost := make(map[int]bool, len(c.Plants))
	darkCount := 0
	for _, p := range c.Plants {
		if p.Cost <= 0 {
			return fmt.Errorf("plant cost must be positive, got %d", p.Cost)
		}
		if seenCost[p.Cost] {
			return fmt.Errorf("duplicate plant cost %d", p.Cost)
		}
		seenCost[p.Cost] = true
		rt, ok := resourceNames[p.Resource]
		if !ok {
			return fmt.Errorf("plant %d: unknown resource %q", p.Cost, p.Resource)
		}
		if p.Cities <= 0 {
			return fmt.Errorf("plant %d: must power at least one city", p.Cost)
		}
		if rt == engine.Green && p.ResourceCost != 0 {
			return fmt.Errorf("plant %d: green plants take no fuel", p.Cost)
		}
		if rt != engine.Green && p.ResourceCost <= 0 {
			return fmt.Errorf("plant %d: fuel requirement must be positive", p.Cost)
		}
		if p.Cost <= engine.DarkTierMaxCost {
			darkCount++
		}
	}
	if darkCount < 9 {
		return fmt.Errorf("config needs at least 9 plants costing %d or less to seed the market, got %d", engine.DarkTierMaxCost, darkCount)
	}

	if len(c.Map.Cities) < 3 {
		return fmt.Errorf("map needs at least 3 cities, got %d", len(c.Map.Cities))
	}
	known := make(map[string]bool, len(c.Map.Cities))
	for _, city := range c.Map.Cities {
		if city == "" {
			return fmt.Errorf("map contains an empty city name")
		}
		if known[city] {
			return fmt.Errorf("duplicate city %q", city)
		}
		known[city] = true
	}
	if len(c.Map.Edges) == 0 {
		return fmt.Errorf("map has no connections")
	}
	for _, e := range c.Map.Edges {
		if !known[e.From] {
			return fmt.Errorf("edge references unknown city %q", e.From)
		}
		if !known[e.To] {
			return fmt.Errorf("edge references unknown city %q", e.To)
		}
		if e.From == e.To {
			return fmt.Errorf("city %q connects to itself", e.From)
		}
		if e.Cost < 0 {
			return fmt.Errorf("edge %s-%s has negative cost %d", e.From, e.To, e.Cost)
		}
	}

	if c.rules != nil {
		if err := validateRules(c.rules); err != nil {
			return err
		}
	}
	return nil
}

func validateRules(r *engine.Rules) error {
	if r.StartingMoney <= 0 {
		return fmt.Errorf("rules: starting money must be positive")
	}
	if r.MaxRounds <= 0 {
		return fmt.Errorf("rules: max rounds must be positive")
	}
	if len(r.PaymentTable) == 0 {
		return fmt.Errorf("rules: empty payment table")
	}
	for i, cost := range r.SlotCosts {
		if cost <= 0 {
			return fmt.Errorf("rules: slot %d cost must be positive", i)
		}
	}
	for players := engine.MinPlayers; players <= engine.MaxPlayers; players++ {
		if _, ok := r.Step2Thresholds[players]; !ok {
			return fmt.Errorf("rules: no step 2 threshold for %d players", players)
		}
		for _, rt := range engine.MarketResourceTypes {
			row, ok := r.Resupply[rt]
			if !ok {
				return fmt.Errorf("rules: no resupply table for %s", rt)
			}
			if _, ok := row[players]; !ok {
				return fmt.Errorf("rules: no %s resupply row for %d players", rt, players)
			}
		}
	}
	return nil
}

// Board builds the engine board from the map.
func (c *GameConfig) Board() *engine.Board {
	b := engine.NewBoard()
	for _, city := range c.Map.Cities {
		b.AddCity(city)
	}
	for _, e := range c.Map.Edges {
		b.AddEdge(e.From, e.To, e.Cost)
	}
	return b
}

// Cards converts the plant specs into engine cards.
func (c *GameConfig) Cards() []engine.Card {
	cards := make([]engine.Card, 0, len(c.Plants))
	for _, p := range c.Plants {
		cards = append(cards, engine.Card{
			Cost:         p.Cost,
			Resource:     resourceNames[p.Resource],
			ResourceCost: p.ResourceCost,
			Cities:       p.Cities,
		})
	}
	return cards
}

// NewSetup builds a partial engine setup from the configuration: cards,
// board, and rules. The caller fills in players, strategies, and the seed.
func (c *GameConfig) NewSetup() (*engine.Setup, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &engine.Setup{
		Cards:      c.Cards(),
		StageThree: engine.Card{Resource: engine.StageThree},
		Board:      c.Board(),
		Rules:      c.Rules(),
	}, nil
}

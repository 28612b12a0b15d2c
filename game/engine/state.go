package engine

// AuctionState is the transient sub-state of a running plant auction. It
// exists only while phase 2 has an open auction and is cleared afterward.
type AuctionState struct {
	PlantCost int   `json:"plant_cost"`
	Bid       int   `json:"bid"`
	Leader    int   `json:"leader"`
	Remaining []int `json:"remaining"` // player ids still bidding
}

// GameState is the aggregate root: everything a strategy may inspect and
// everything a replay needs. The engine is the exclusive writer; strategies
// receive it read-only by convention.
type GameState struct {
	Step           int                            `json:"step"`
	Round          int                            `json:"round"`
	Phase          Phase                          `json:"phase"`
	PlayerOrder    []int                          `json:"player_order"`
	Players        []*Player                      `json:"players"`
	CurrentMarket  []Card                         `json:"current_market"`
	FutureMarket   []Card                         `json:"future_market"`
	Deck           []Card                         `json:"deck"`
	Board          *Board                         `json:"board"`
	Pools          map[ResourceType]*ResourcePool `json:"pools"`
	Occupancy      map[string][]int               `json:"occupancy"`
	Auction        *AuctionState                  `json:"auction,omitempty"`
	Step3Triggered bool                           `json:"step3_triggered"`
	GameOver       bool                           `json:"game_over"`
	Winner         int                            `json:"winner"` // -1 until decided
}

// PlayerByID returns the player with the given id.
func (s *GameState) PlayerByID(id int) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// MarketPlant returns the current-market plant with the given cost.
func (s *GameState) MarketPlant(cost int) (Card, bool) {
	for _, c := range s.CurrentMarket {
		if c.Cost == cost {
			return c, true
		}
	}
	return Card{}, false
}

// CityOccupancy returns the builders in a city, in build order.
func (s *GameState) CityOccupancy(city string) []int {
	return s.Occupancy[city]
}

// Clone returns a deep copy of the state, safe to hand to recorders and
// transports while the engine keeps mutating the original.
func (s *GameState) Clone() *GameState {
	cp := &GameState{
		Step:           s.Step,
		Round:          s.Round,
		Phase:          s.Phase,
		PlayerOrder:    append([]int(nil), s.PlayerOrder...),
		CurrentMarket:  append([]Card(nil), s.CurrentMarket...),
		FutureMarket:   append([]Card(nil), s.FutureMarket...),
		Deck:           append([]Card(nil), s.Deck...),
		Step3Triggered: s.Step3Triggered,
		GameOver:       s.GameOver,
		Winner:         s.Winner,
	}
	cp.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp.Players[i] = p.Clone()
	}
	if s.Board != nil {
		b := NewBoard()
		for city, edges := range s.Board.Adjacency {
			b.AddCity(city)
			for other, cost := range edges {
				b.Adjacency[city][other] = cost
			}
		}
		cp.Board = b
	}
	cp.Pools = make(map[ResourceType]*ResourcePool, len(s.Pools))
	for rt, pool := range s.Pools {
		cp.Pools[rt] = pool.Clone()
	}
	cp.Occupancy = make(map[string][]int, len(s.Occupancy))
	for city, builders := range s.Occupancy {
		cp.Occupancy[city] = append([]int(nil), builders...)
	}
	if s.Auction != nil {
		cp.Auction = &AuctionState{
			PlantCost: s.Auction.PlantCost,
			Bid:       s.Auction.Bid,
			Leader:    s.Auction.Leader,
			Remaining: append([]int(nil), s.Auction.Remaining...),
		}
	}
	return cp
}

// Recorder receives a snapshot of the game state after every meaningful
// transition: phase boundaries, auction resolutions, resource purchases, and
// builds. Implementations must not retain or mutate the snapshot's internal
// maps beyond the call; the engine hands over a fresh deep copy each time.
type Recorder interface {
	Record(description string, state *GameState)
}

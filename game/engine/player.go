package engine

import "fmt"

// Player is the mutable per-player ledger: money, owned plants, connected
// cities, and stored resources. All mutation goes through the engine's
// validated action application; money can never go negative.
type Player struct {
	ID         int                  `json:"id"`
	Name       string               `json:"name"`
	Money      int                  `json:"money"`
	Plants     []Card               `json:"plants"`
	Generators []string             `json:"generators"`
	Resources  map[ResourceType]int `json:"resources"`
}

// NewPlayer creates a player with starting money and an empty ledger.
func NewPlayer(id int, name string, money int) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Money:     money,
		Resources: map[ResourceType]int{Coal: 0, Oil: 0, Gas: 0, Uranium: 0},
	}
}

// Debit removes money, failing if the balance would go negative.
func (p *Player) Debit(amount int) error {
	if amount > p.Money {
		return fmt.Errorf("%w: player %d has %d, needs %d", ErrInsufficientFunds, p.ID, p.Money, amount)
	}
	p.Money -= amount
	return nil
}

// Credit adds money.
func (p *Player) Credit(amount int) {
	p.Money += amount
}

// PlantByCost returns the owned plant with the given cost.
func (p *Player) PlantByCost(cost int) (Card, bool) {
	for _, c := range p.Plants {
		if c.Cost == cost {
			return c, true
		}
	}
	return Card{}, false
}

// RemovePlant discards the owned plant with the given cost.
func (p *Player) RemovePlant(cost int) bool {
	for i, c := range p.Plants {
		if c.Cost == cost {
			p.Plants = append(p.Plants[:i], p.Plants[i+1:]...)
			return true
		}
	}
	return false
}

// MaxPlantCost returns the cost of the most expensive owned plant, 0 when
// the player owns none.
func (p *Player) MaxPlantCost() int {
	max := 0
	for _, c := range p.Plants {
		if c.Cost > max {
			max = c.Cost
		}
	}
	return max
}

// SmallestPlantCost returns the cost of the cheapest owned plant, 0 when the
// player owns none.
func (p *Player) SmallestPlantCost() int {
	min := 0
	for _, c := range p.Plants {
		if min == 0 || c.Cost < min {
			min = c.Cost
		}
	}
	return min
}

// OwnsCity reports whether the player has already built in the city.
func (p *Player) OwnsCity(city string) bool {
	for _, c := range p.Generators {
		if c == city {
			return true
		}
	}
	return false
}

// dedicatedCapacity is 2x the summed resource cost of plants burning exactly
// the given type. Hybrid capacity is reported separately because it is
// shared between oil and gas.
func (p *Player) dedicatedCapacity(rt ResourceType) int {
	total := 0
	for _, c := range p.Plants {
		if c.Resource == rt {
			total += c.ResourceCost * 2
		}
	}
	return total
}

// HybridCapacity is the shared oil/gas storage from hybrid plants.
func (p *Player) HybridCapacity() int {
	return p.dedicatedCapacity(Hybrid)
}

// CanStore reports whether the player could hold amount additional units of
// the given type. Oil and gas compete for hybrid capacity, so both the
// per-type bound and the combined bound must hold.
func (p *Player) CanStore(rt ResourceType, amount int) bool {
	if amount <= 0 {
		return false
	}
	switch rt {
	case Coal, Uranium:
		return p.Resources[rt]+amount <= p.dedicatedCapacity(rt)
	case Oil, Gas:
		hybrid := p.HybridCapacity()
		if p.Resources[rt]+amount > p.dedicatedCapacity(rt)+hybrid {
			return false
		}
		combined := p.Resources[Oil] + p.Resources[Gas] + amount
		return combined <= p.dedicatedCapacity(Oil)+p.dedicatedCapacity(Gas)+hybrid
	default:
		return false
	}
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	cp := &Player{
		ID:         p.ID,
		Name:       p.Name,
		Money:      p.Money,
		Plants:     append([]Card(nil), p.Plants...),
		Generators: append([]string(nil), p.Generators...),
		Resources:  make(map[ResourceType]int, len(p.Resources)),
	}
	for rt, n := range p.Resources {
		cp.Resources[rt] = n
	}
	return cp
}

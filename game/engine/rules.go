package engine

// Rules bundles the tunable tables the engine consults. The zero value is
// not usable; start from DefaultRules or load a rules file through the
// config manager.
type Rules struct {
	StartingMoney int `json:"starting_money" yaml:"starting_money"`
	MaxRounds     int `json:"max_rounds" yaml:"max_rounds"`

	// SlotCosts is the building cost by slot position within a city.
	SlotCosts [3]int `json:"slot_costs" yaml:"slot_costs"`

	// PaymentTable maps cities powered to money earned. Counts beyond the
	// last entry pay the last entry.
	PaymentTable []int `json:"payment_table" yaml:"payment_table"`

	// Step2Thresholds maps player count to the connected-city count that
	// triggers step 2.
	Step2Thresholds map[int]int `json:"step2_thresholds" yaml:"step2_thresholds"`

	// Resupply maps resource type and player count to per-step resupply
	// amounts, indexed by step-1.
	Resupply map[ResourceType]map[int][3]int `json:"resupply" yaml:"resupply"`
}

// DefaultRules returns the standard rule tables.
func DefaultRules() *Rules {
	return &Rules{
		StartingMoney: 50,
		MaxRounds:     DefaultMaxRounds,
		SlotCosts:     [3]int{10, 15, 20},
		PaymentTable: []int{
			10, 22, 33, 44, 54, 64, 73, 82, 90, 98, 105,
			112, 118, 124, 129, 134, 138, 142, 145, 148, 150,
		},
		Step2Thresholds: map[int]int{2: 7, 3: 7, 4: 7, 5: 6, 6: 5},
		Resupply: map[ResourceType]map[int][3]int{
			Coal:    {2: {2, 6, 2}, 3: {2, 6, 2}, 4: {3, 7, 4}, 5: {3, 8, 4}, 6: {5, 10, 5}},
			Gas:     {2: {2, 3, 5}, 3: {2, 3, 5}, 4: {3, 4, 5}, 5: {3, 5, 7}, 6: {4, 6, 8}},
			Oil:     {2: {2, 2, 3}, 3: {2, 2, 3}, 4: {3, 3, 4}, 5: {4, 3, 5}, 6: {4, 5, 6}},
			Uranium: {2: {1, 1, 2}, 3: {1, 1, 2}, 4: {1, 2, 2}, 5: {2, 3, 3}, 6: {2, 3, 4}},
		},
	}
}

// Payment returns the payout for powering the given number of cities,
// clamped to the top of the table.
func (r *Rules) Payment(cities int) int {
	if cities < 0 {
		cities = 0
	}
	if cities >= len(r.PaymentTable) {
		cities = len(r.PaymentTable) - 1
	}
	return r.PaymentTable[cities]
}

// ResupplyAmount returns how many units of the resource return to the market
// at the end of a round.
func (r *Rules) ResupplyAmount(rt ResourceType, players, step int) int {
	byPlayers, ok := r.Resupply[rt]
	if !ok {
		return 0
	}
	amounts, ok := byPlayers[players]
	if !ok {
		return 0
	}
	if step < 1 || step > 3 {
		return 0
	}
	return amounts[step-1]
}

// Step2Threshold returns the connected-city count at which step 2 begins.
func (r *Rules) Step2Threshold(players int) int {
	if t, ok := r.Step2Thresholds[players]; ok {
		return t
	}
	return 7
}

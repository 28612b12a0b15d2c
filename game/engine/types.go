package engine

// ResourceType identifies what a power plant burns.
type ResourceType string

const (
	Coal    ResourceType = "coal"
	Oil     ResourceType = "oil"
	Gas     ResourceType = "gas"
	Uranium ResourceType = "uranium"
	Green   ResourceType = "green"
	Hybrid  ResourceType = "oil&gas"

	// StageThree marks the card that triggers the step 3 transition when
	// drawn. It is consumed by the deck and never enters a market.
	StageThree ResourceType = "stage three"

	// Validation constants
	MinPlayers          = 2
	MaxPlayers          = 6
	MaxPlants           = 3
	EndGameGenerators   = 18
	MaxDecisionRetries  = 10
	DarkTierMaxCost     = 15
	DefaultMaxRounds    = 20
	MaxBuildersPerCity  = 3
	FallbackConnectCost = 50
)

// CardTier splits the plant deck into the cheap "dark" cards available early
// and the expensive "light" cards that only circulate later.
type CardTier string

const (
	Dark  CardTier = "dark"
	Light CardTier = "light"
)

// Card is a power plant. Cost doubles as the card's unique identifier in the
// market. Cards are immutable once created.
type Card struct {
	Cost         int          `json:"cost" yaml:"cost"`
	Resource     ResourceType `json:"resource" yaml:"resource"`
	ResourceCost int          `json:"resource_cost" yaml:"resource_cost"`
	Cities       int          `json:"cities" yaml:"cities"`
}

// Tier returns Dark for plants costing less than 16, Light otherwise.
func (c Card) Tier() CardTier {
	if c.Cost <= DarkTierMaxCost {
		return Dark
	}
	return Light
}

// IsStageThree reports whether this is the step 3 marker card.
func (c Card) IsStageThree() bool {
	return c.Resource == StageThree
}

// Consumes reports whether the plant can burn the given resource type.
// Hybrid plants accept oil and gas interchangeably.
func (c Card) Consumes(rt ResourceType) bool {
	if c.Resource == rt {
		return true
	}
	return c.Resource == Hybrid && (rt == Oil || rt == Gas)
}

// Phase is one of the five stages of a round. Distinct from Step, which is
// the 1/2/3 era of the whole game.
type Phase string

const (
	PhaseDetermineOrder Phase = "determine_order"
	PhaseAuction        Phase = "auction"
	PhaseBuyResources   Phase = "buy_resources"
	PhaseBuild          Phase = "build"
	PhaseBureaucracy    Phase = "bureaucracy"
)

// MarketResourceTypes are the resource types traded on the resource market.
var MarketResourceTypes = []ResourceType{Coal, Oil, Gas, Uranium}

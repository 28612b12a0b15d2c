package engine

import "fmt"

// ActionType tags the variant of a player Action.
type ActionType string

const (
	// Phase 2: auction
	ActionAuctionPass    ActionType = "auction_pass"
	ActionAuctionOpen    ActionType = "auction_open"
	ActionAuctionBid     ActionType = "auction_bid"
	ActionAuctionBidPass ActionType = "auction_bid_pass"

	// Phase 3: resources
	ActionResourcePurchase ActionType = "resource_purchase"

	// Phase 4: building
	ActionCityBuild ActionType = "city_build"

	// Phase 5: bureaucracy
	ActionPowerCities ActionType = "power_cities"
)

// PowerAllocation assigns specific resources to one plant in an explicit
// power plan.
type PowerAllocation struct {
	PlantCost int                  `json:"plant_cost"`
	Resources map[ResourceType]int `json:"resources,omitempty"`
}

// Action is the tagged union of every decision a strategy can return. Only
// the fields relevant to Type are populated; the engine rejects an action
// whose tag does not match the expected decision point before any other
// validation.
type Action struct {
	Type ActionType `json:"type"`

	// Auction fields. Plants are referenced by cost, which is unique.
	PlantCost   int `json:"plant_cost,omitempty"`
	Bid         int `json:"bid,omitempty"`
	DiscardCost int `json:"discard_cost,omitempty"` // 0 means no discard named

	// Resource purchase
	Resources map[ResourceType]int `json:"resources,omitempty"`

	// City build
	Cities []string `json:"cities,omitempty"`

	// Power plan: either a plain count (engine fills greedily) or an
	// explicit per-plant allocation.
	PowerCount int               `json:"power_count,omitempty"`
	PowerPlan  []PowerAllocation `json:"power_plan,omitempty"`
}

// AuctionPass declines to open an auction.
func AuctionPass() Action {
	return Action{Type: ActionAuctionPass}
}

// OpenAuction opens an auction on the plant with the given cost at the given
// initial bid. discard names the plant to drop when the player already holds
// three; pass 0 for none.
func OpenAuction(plantCost, bid, discard int) Action {
	return Action{Type: ActionAuctionOpen, PlantCost: plantCost, Bid: bid, DiscardCost: discard}
}

// AuctionBid raises a running auction. discard names the plant to drop when
// the player already holds three; pass 0 for none.
func AuctionBid(bid, discard int) Action {
	return Action{Type: ActionAuctionBid, Bid: bid, DiscardCost: discard}
}

// AuctionBidPass drops out of a running auction.
func AuctionBidPass() Action {
	return Action{Type: ActionAuctionBidPass}
}

// PurchaseResources buys the given amounts from the resource market.
func PurchaseResources(resources map[ResourceType]int) Action {
	return Action{Type: ActionResourcePurchase, Resources: resources}
}

// BuildCities builds a generator in each listed city, in order.
func BuildCities(cities ...string) Action {
	return Action{Type: ActionCityBuild, Cities: cities}
}

// PowerCities powers up to n cities, letting the engine pick plants and
// resources greedily.
func PowerCities(n int) Action {
	return Action{Type: ActionPowerCities, PowerCount: n}
}

// PowerWithPlan powers cities with an explicit per-plant resource allocation.
func PowerWithPlan(plan []PowerAllocation) Action {
	return Action{Type: ActionPowerCities, PowerPlan: plan}
}

// String renders a short human-readable form used in logs.
func (a Action) String() string {
	switch a.Type {
	case ActionAuctionOpen:
		return fmt.Sprintf("open(plant=%d bid=%d discard=%d)", a.PlantCost, a.Bid, a.DiscardCost)
	case ActionAuctionBid:
		return fmt.Sprintf("bid(%d discard=%d)", a.Bid, a.DiscardCost)
	case ActionResourcePurchase:
		return fmt.Sprintf("buy(%v)", a.Resources)
	case ActionCityBuild:
		return fmt.Sprintf("build(%v)", a.Cities)
	case ActionPowerCities:
		if a.PowerPlan != nil {
			return fmt.Sprintf("power(plan=%d plants)", len(a.PowerPlan))
		}
		return fmt.Sprintf("power(%d)", a.PowerCount)
	default:
		return string(a.Type)
	}
}

package engine

import "sort"

// Board is a weighted undirected graph of cities. It is built once at setup
// and read-only during play; per-city occupancy lives on GameState.
type Board struct {
	Adjacency map[string]map[string]int `json:"adjacency"`
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{Adjacency: make(map[string]map[string]int)}
}

// AddCity registers a city with no connections. Adding an edge registers
// both endpoints automatically.
func (b *Board) AddCity(city string) {
	if _, ok := b.Adjacency[city]; !ok {
		b.Adjacency[city] = make(map[string]int)
	}
}

// AddEdge adds an undirected connection between two cities. When parallel
// edges exist the cheaper one wins.
func (b *Board) AddEdge(a, c string, cost int) {
	b.AddCity(a)
	b.AddCity(c)
	if old, ok := b.Adjacency[a][c]; !ok || cost < old {
		b.Adjacency[a][c] = cost
		b.Adjacency[c][a] = cost
	}
}

// HasCity reports whether the city exists on the board.
func (b *Board) HasCity(city string) bool {
	_, ok := b.Adjacency[city]
	return ok
}

// Cities returns all city names in sorted order.
func (b *Board) Cities() []string {
	cities := make([]string, 0, len(b.Adjacency))
	for city := range b.Adjacency {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// EdgeCost returns the direct connection cost between two cities.
func (b *Board) EdgeCost(a, c string) (int, bool) {
	cost, ok := b.Adjacency[a][c]
	return cost, ok
}

// ConnectionCost returns the cheapest connection from any owned city to the
// target. The first city is free. Paths are limited to at most two hops;
// when no such path exists a fixed fallback cost applies instead of a
// failure. This deliberately mirrors the original rule set rather than a
// full shortest-path search.
func (b *Board) ConnectionCost(owned []string, target string) int {
	if len(owned) == 0 {
		return 0
	}
	best := -1
	for _, start := range owned {
		if cost, ok := b.Adjacency[start][target]; ok {
			if best == -1 || cost < best {
				best = cost
			}
		}
		for mid, first := range b.Adjacency[start] {
			if second, ok := b.Adjacency[mid][target]; ok {
				if cost := first + second; best == -1 || cost < best {
					best = cost
				}
			}
		}
	}
	if best == -1 {
		return FallbackConnectCost
	}
	return best
}

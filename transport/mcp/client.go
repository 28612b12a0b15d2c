package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nelsp/pb-power-grid/game/engine"
	"github.com/nelsp/pb-power-grid/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Power Grid Simulator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Power Grid Simulator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Players compete to power the most cities. Each round runs five phases:
turn order, power plant auction, resource buying, city building, and
bureaucracy (income and market resupply). The game ends when a player
connects enough cities, and the player who can power the most cities wins.

AVAILABLE TOOLS:
- create_game: Start a new game with a map config, players, and seed
- list_games: List active games
- get_game: Get a game's metadata
- game_state: Get full game state (markets, pools, players, board)
- play_round: Advance a game by one round
- run_game: Play a game to completion and report the winner
- standings: Current scoreboard for a game
- game_history: Recorded round-by-round snapshots
- list_configs: List available map configurations
- list_strategies: List built-in player strategies
- game_rules: Get a summary of the rules the simulator applies

Games are fully automated: every seat is driven by a named strategy and
the same seed always replays the same game.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Game management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game with a map configuration, player seats, and an optional seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the map configuration (optional, defaults to the server's default map)",
				},
				"players": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":     map[string]interface{}{"type": "string"},
							"strategy": map[string]interface{}{"type": "string"},
						},
					},
					"description": "Player seats, 2 to 6. Strategy defaults to 'balanced'",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Deterministic seed (optional, 0 picks one from the clock)",
				},
				"max_rounds": map[string]interface{}{
					"type":        "integer",
					"description": "Round cap before the game is scored as-is (optional)",
				},
			},
			Required: []string{"players"},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get metadata for a specific game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to retrieve",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGetGame)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the full game state: step, phase, plant markets, resource pools, and every player's holdings",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play_round",
		Description: "Advance a game by one full round (all five phases)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handlePlayRound)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_game",
		Description: "Play a game until its end condition triggers and report the final standings",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleRunGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "standings",
		Description: "Get the current scoreboard for a game, ranked by powerable cities then money",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleStandings)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_history",
		Description: "Get recorded snapshots for a game with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGameHistory)

	// Catalog
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available map configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_strategies",
		Description: "List the built-in player strategies",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListStrategies)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get a summary of the rules the simulator applies",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	req := service.CreateGameRequest{}
	req.ConfigName, _ = args["config_name"].(string)
	if seed, ok := args["seed"].(float64); ok {
		req.Seed = int64(seed)
	}
	if maxRounds, ok := args["max_rounds"].(float64); ok {
		req.MaxRounds = int(maxRounds)
	}

	playersRaw, _ := args["players"].([]interface{})
	for _, raw := range playersRaw {
		spec := service.PlayerSpec{}
		if m, ok := raw.(map[string]interface{}); ok {
			spec.Name, _ = m["name"].(string)
			spec.Strategy, _ = m["strategy"].(string)
		}
		req.Players = append(req.Players, spec)
	}

	var info service.GameInfo
	err := c.apiCall("POST", "/api/games", req, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameInfo(&info)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                `json:"count"`
		Games []service.GameInfo `json:"games"`
	}

	err := c.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		status := fmt.Sprintf("round %d, step %d", g.Round, g.Step)
		if g.GameOver {
			status = "over, winner " + g.Winner
		}
		fmt.Fprintf(&sb, "- %s (map: %s, players: %s, %s)\n",
			g.ID, g.ConfigName, strings.Join(g.Players, ", "), status)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var info service.GameInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameInfo(&info)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/state", gameID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlayRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var result service.RoundResult
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/round", gameID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Played round %d.\n", result.Round)
	if result.GameOver {
		fmt.Fprintf(&sb, "The game is over. Winner: %s\n", result.Winner)
	}
	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleRunGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var result service.RunResult
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/run", gameID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Game finished after %d rounds. Winner: %s\n\n", result.RoundsPlayed, result.Winner)
	sb.WriteString(formatStandings(result.Standings))

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleStandings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var response struct {
		GameID    string             `json:"game_id"`
		Standings []service.Standing `json:"standings"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/standings", gameID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStandings(response.Standings)), nil
}

func (c *Client) handleGameHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/history%s", gameID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&sb, "• %s\n  %s\n  Cities: %d, Plants: %d\n\n",
			config.ConfigID, config.Description, config.Cities, config.Plants)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleListStrategies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Strategies []string `json:"strategies"`
	}
	err := c.apiCall("GET", "/api/strategies", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Built-in Strategies:\n\n")
	for _, name := range response.Strategies {
		fmt.Fprintf(&sb, "- %s\n", name)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := `Power Grid Simulator - Rules Summary

ROUND STRUCTURE (five phases, every round):
1. Determine turn order: players ranked by connected cities, ties broken
   by largest plant. The leader goes first in auctions and last in
   resource buying and building.
2. Auction: in turn order, each player may put a current-market plant up
   for auction at or above face value. Bidding continues until all but
   one pass; the winner pays their bid and the market refills from the
   deck. Every player must buy a plant in the first round. A player who
   already holds the maximum of 3 plants discards one when buying.
3. Buy resources: in reverse turn order, players buy coal, oil, gas, and
   uranium from the priced market. Cheaper bins sell out first; prices
   rise as supply shrinks. Plants store at most twice their consumption.
4. Build: in reverse turn order, players pay connection cost plus the
   city slot price to place generators. Each city holds a limited number
   of players depending on the current step.
5. Bureaucracy: players earn income for the cities they can actually
   power (fuel is consumed), the resource market resupplies by step and
   player count, and the plant market cycles.

MARKET:
The four cheapest plants are for sale; the next five (four in step 3)
are visible but locked. Drawing the stage three card removes the
cheapest plant, shrinks the market, and lifts city slot limits.

END OF GAME:
The game ends in the round a player connects 18 cities, or at the
configured round cap. The winner powers the most cities; ties break by
money, then by seat order.

DETERMINISM:
Every game is fully determined by its map configuration, seats, and
seed. Replaying the same seed reproduces the same game.`

	return mcp.NewToolResultText(rules), nil
}

// Formatting helpers

func formatGameInfo(info *service.GameInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game: %s\n", info.ID)
	fmt.Fprintf(&sb, "Map: %s\n", info.ConfigName)
	fmt.Fprintf(&sb, "Seed: %d\n", info.Seed)
	for i, name := range info.Players {
		strat := ""
		if i < len(info.Strategies) {
			strat = info.Strategies[i]
		}
		fmt.Fprintf(&sb, "Seat %d: %s (%s)\n", i, name, strat)
	}
	if info.GameOver {
		fmt.Fprintf(&sb, "Status: over, winner %s\n", info.Winner)
	} else {
		fmt.Fprintf(&sb, "Status: round %d, step %d\n", info.Round, info.Step)
	}
	return sb.String()
}

func formatGameState(state *engine.GameState) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Round %d | Step %d | Phase: %s\n", state.Round, state.Step, state.Phase)
	if state.GameOver {
		if w := state.PlayerByID(state.Winner); w != nil {
			fmt.Fprintf(&sb, "GAME OVER - winner: %s\n", w.Name)
		} else {
			sb.WriteString("GAME OVER\n")
		}
	}
	sb.WriteString("\n")

	sb.WriteString("Current market: ")
	sb.WriteString(formatPlants(state.CurrentMarket))
	sb.WriteString("\nFuture market:  ")
	sb.WriteString(formatPlants(state.FutureMarket))
	fmt.Fprintf(&sb, "\nDeck: %d cards remaining\n\n", len(state.Deck))

	sb.WriteString("Resource supply:\n")
	for _, rt := range engine.MarketResourceTypes {
		pool := state.Pools[rt]
		if pool == nil {
			continue
		}
		fmt.Fprintf(&sb, "  %-8s %d units", rt, pool.OccupiedSlots())
		prices := pool.PossiblePurchases()
		if len(prices) > 0 {
			keys := make([]int, 0, len(prices))
			for price := range prices {
				keys = append(keys, price)
			}
			sort.Ints(keys)
			fmt.Fprintf(&sb, " (cheapest at %d)", keys[0])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Players (in turn order):\n")
	for _, id := range state.PlayerOrder {
		p := state.PlayerByID(id)
		if p == nil {
			continue
		}
		fmt.Fprintf(&sb, "  %s: %d money, %d cities, plants %s",
			p.Name, p.Money, len(p.Generators), formatPlants(p.Plants))
		if fuel := formatFuel(p); fuel != "" {
			fmt.Fprintf(&sb, ", fuel %s", fuel)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatPlants(plants []engine.Card) string {
	if len(plants) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(plants))
	for _, p := range plants {
		parts = append(parts, fmt.Sprintf("[%d %s x%d]", p.Cost, p.Resource, p.Cities))
	}
	return strings.Join(parts, " ")
}

func formatFuel(p *engine.Player) string {
	parts := []string{}
	for _, rt := range engine.MarketResourceTypes {
		if n := p.Resources[rt]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, rt))
		}
	}
	return strings.Join(parts, ", ")
}

func formatStandings(standings []service.Standing) string {
	var sb strings.Builder
	sb.WriteString("Standings:\n\n")
	for _, s := range standings {
		fmt.Fprintf(&sb, "%d. %s (%s) - powers %d of %d cities, %d money\n",
			s.Rank, s.Name, s.Strategy, s.Powerable, s.Cities, s.Money)
	}
	return sb.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "History (page %d of %d, %d snapshots total):\n\n",
		history.Page, history.TotalPages, history.Total)

	for _, entry := range history.Entries {
		fmt.Fprintf(&sb, "#%d round %d [%s] %s\n",
			entry.Seq, entry.Round, entry.Phase, entry.Description)
	}

	if history.HasNext {
		sb.WriteString("\n(more pages available)\n")
	}

	return sb.String()
}

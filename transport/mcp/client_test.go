package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nelsp/pb-power-grid/game/engine"
	"github.com/nelsp/pb-power-grid/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":        "test-game",
		"round":     float64(3),
		"game_over": false,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/games/test-game", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/games", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/games", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "game not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/games/missing", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if err.Error() != "game not found" {
		t.Errorf("Expected unwrapped API error message, got: %v", err)
	}
}

func TestClient_handleCreateGame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/games" {
			t.Errorf("Expected POST /api/games, got %s %s", r.Method, r.URL.Path)
		}

		var req service.CreateGameRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Players) != 2 {
			t.Errorf("Expected 2 players in request, got %d", len(req.Players))
		}
		if req.Seed != 42 {
			t.Errorf("Expected seed 42, got %d", req.Seed)
		}

		resp := service.GameInfo{
			ID:         "game-123",
			ConfigName: "europe",
			Players:    []string{"ada", "bob"},
			Strategies: []string{"greedy", "balanced"},
			Seed:       42,
			Round:      1,
			Step:       1,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "create_game",
			Arguments: map[string]interface{}{
				"config_name": "europe",
				"seed":        float64(42),
				"players": []interface{}{
					map[string]interface{}{"name": "ada", "strategy": "greedy"},
					map[string]interface{}{"name": "bob"},
				},
			},
		},
	}

	result, err := client.handleCreateGame(ctx, request)
	if err != nil {
		t.Fatalf("handleCreateGame failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "game-123") {
		t.Errorf("Expected game ID in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "ada (greedy)") {
		t.Errorf("Expected seat listing in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleRunGame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/games/game-1/run" {
			t.Errorf("Expected POST /api/games/game-1/run, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.RunResult{
			RoundsPlayed: 12,
			GameOver:     true,
			Winner:       "bob",
			Standings: []service.Standing{
				{Rank: 1, Name: "bob", Strategy: "greedy", Cities: 18, Powerable: 17, Money: 60},
				{Rank: 2, Name: "ada", Strategy: "balanced", Cities: 14, Powerable: 14, Money: 95},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "run_game",
			Arguments: map[string]interface{}{"game_id": "game-1"},
		},
	}

	result, err := client.handleRunGame(ctx, request)
	if err != nil {
		t.Fatalf("handleRunGame failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	for _, want := range []string{"12 rounds", "Winner: bob", "1. bob", "2. ada"} {
		if !strings.Contains(resultStr.Text, want) {
			t.Errorf("Expected %q in result, got: %s", want, resultStr.Text)
		}
	}
}

func TestFormatGameState(t *testing.T) {
	state := &engine.GameState{
		Step:   2,
		Round:  5,
		Phase:  engine.PhaseBuyResources,
		Winner: -1,
		CurrentMarket: []engine.Card{
			{Cost: 13, Resource: engine.Green, Cities: 1},
			{Cost: 16, Resource: engine.Oil, ResourceCost: 2, Cities: 3},
		},
		FutureMarket: []engine.Card{
			{Cost: 20, Resource: engine.Coal, ResourceCost: 3, Cities: 5},
		},
		Deck:  []engine.Card{{Cost: 25}},
		Pools: engine.NewStandardPools(),
		PlayerOrder: []int{1, 0},
		Players: []*engine.Player{
			{ID: 0, Name: "ada", Money: 31, Generators: []string{"essen"},
				Resources: map[engine.ResourceType]int{engine.Coal: 2}},
			{ID: 1, Name: "bob", Money: 44, Generators: []string{"essen", "koln"},
				Resources: map[engine.ResourceType]int{}},
		},
	}
	state.Pools[engine.Coal].InitializeSupply(2, 9)

	result := formatGameState(state)

	expectedFields := []string{
		"Round 5 | Step 2 | Phase: buy_resources",
		"[13 green x1]",
		"[16 oil x3]",
		"[20 coal x5]",
		"Deck: 1 cards remaining",
		"coal",
		"bob: 44 money, 2 cities",
		"ada: 31 money, 1 cities",
		"fuel 2 coal",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}

	// bob leads the turn order, so he is listed first.
	if strings.Index(result, "bob:") > strings.Index(result, "ada:") {
		t.Error("Players not listed in turn order")
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	state := &engine.GameState{
		Round:    11,
		Step:     3,
		Phase:    engine.PhaseBureaucracy,
		GameOver: true,
		Winner:   0,
		Pools:    engine.NewStandardPools(),
		PlayerOrder: []int{0},
		Players: []*engine.Player{
			{ID: 0, Name: "ada", Money: 10, Resources: map[engine.ResourceType]int{}},
		},
	}

	result := formatGameState(state)

	if !strings.Contains(result, "GAME OVER - winner: ada") {
		t.Errorf("Expected winner line in result, got: %s", result)
	}
}

func TestFormatStandings(t *testing.T) {
	standings := []service.Standing{
		{Rank: 1, Name: "ada", Strategy: "greedy", Cities: 18, Powerable: 16, Money: 32},
		{Rank: 2, Name: "bob", Strategy: "random", Cities: 12, Powerable: 11, Money: 75},
	}

	result := formatStandings(standings)

	expectedFields := []string{
		"1. ada (greedy) - powers 16 of 18 cities, 32 money",
		"2. bob (random) - powers 11 of 12 cities, 75 money",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Entries: []service.HistoryEntry{
			{Seq: 0, Description: "round_start", Round: 1, Phase: "determine_order"},
			{Seq: 1, Description: "auction_complete", Round: 1, Phase: "auction"},
		},
		Total:      40,
		Page:       1,
		PageSize:   2,
		TotalPages: 20,
		HasNext:    true,
	}

	result := formatHistory(history)

	for _, want := range []string{"page 1 of 20", "40 snapshots", "#0 round 1", "auction_complete", "more pages"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in formatted output, got: %s", want, result)
		}
	}
}

func TestClient_handleGameRules(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_rules",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameRules(ctx, request)
	if err != nil {
		t.Fatalf("handleGameRules failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"ROUND STRUCTURE",
		"Determine turn order",
		"Auction",
		"Buy resources",
		"Bureaucracy",
		"MARKET:",
		"END OF GAME:",
		"DETERMINISM:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in rules, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}

// Command validate provides a small CLI that validates map configuration JSON
// files in a configs directory. It checks:
//   - JSON structure and required fields
//   - Power plant deck shape (unique costs, enough cheap-tier plants)
//   - Resource names and green plants carrying no fuel cost
//   - Board shape: edges reference declared cities, no self connections
//   - Rule overrides referenced via rules_file parse and cover 2-6 players
//   - Connectivity: every city is reachable from every other over the edges
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nelsp/pb-power-grid/game/config"
	"github.com/nelsp/pb-power-grid/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateFile loads and validates a single configuration JSON file,
// including its rules file if one is referenced.
func validateFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	cfg, err := config.LoadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Connectivity validation over the edge list
	connectivity := validateConnectivity(cfg)
	if !connectivity.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, connectivity.Errors...)

	// Add informational data
	if result.Valid {
		dark, light := 0, 0
		for _, p := range cfg.Plants {
			if p.Cost <= engine.DarkTierMaxCost {
				dark++
			} else {
				light++
			}
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", cfg.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Cities: %d, edges: %d", len(cfg.Map.Cities), len(cfg.Map.Edges)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Plants: %d (%d cheap tier, %d expensive tier)", len(cfg.Plants), dark, light))
		if cfg.RulesFile != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Rules file: %s", cfg.RulesFile))
		}
	}

	return result
}

// validateConnectivity ensures every city can reach every other city over
// the declared edges. A map with isolated cities produces games where some
// players can never expand, so it is rejected.
func validateConnectivity(cfg *config.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(cfg.Map.Cities) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: no cities")
		return result
	}

	adjacency := make(map[string][]string, len(cfg.Map.Cities))
	for _, e := range cfg.Map.Edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
		adjacency[e.To] = append(adjacency[e.To], e.From)
	}

	// Flood fill from the first city
	visited := make(map[string]bool, len(cfg.Map.Cities))
	queue := []string{cfg.Map.Cities[0]}
	for len(queue) > 0 {
		city := queue[0]
		queue = queue[1:]
		if visited[city] {
			continue
		}
		visited[city] = true
		for _, next := range adjacency[city] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	for _, city := range cfg.Map.Cities {
		if !visited[city] {
			unreachable = append(unreachable, city)
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d cities unreachable from %s",
			len(unreachable), len(cfg.Map.Cities), cfg.Map.Cities[0]))
		for _, city := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", city))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d cities connected", len(cfg.Map.Cities)))
	}

	return result
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid. The directory defaults to ../configs and can be overridden with
// the first argument.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}

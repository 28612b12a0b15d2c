package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfigJSON = `{
	"name": "Test Map",
	"description": "Test configuration",
	"plants": [
		{"cost": 3, "resource": "oil", "resource_cost": 2, "cities": 1},
		{"cost": 4, "resource": "coal", "resource_cost": 2, "cities": 1},
		{"cost": 5, "resource": "oil&gas", "resource_cost": 2, "cities": 1},
		{"cost": 6, "resource": "gas", "resource_cost": 1, "cities": 1},
		{"cost": 7, "resource": "oil", "resource_cost": 3, "cities": 2},
		{"cost": 8, "resource": "coal", "resource_cost": 3, "cities": 2},
		{"cost": 9, "resource": "oil", "resource_cost": 1, "cities": 1},
		{"cost": 10, "resource": "coal", "resource_cost": 2, "cities": 2},
		{"cost": 11, "resource": "uranium", "resource_cost": 1, "cities": 2},
		{"cost": 13, "resource": "green", "cities": 1},
		{"cost": 18, "resource": "green", "cities": 2}
	],
	"map": {
		"cities": ["alfa", "bravo", "charlie", "delta"],
		"edges": [
			{"from": "alfa", "to": "bravo", "cost": 5},
			{"from": "bravo", "to": "charlie", "cost": 7},
			{"from": "charlie", "to": "delta", "cost": 6}
		]
	}
}`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestValidateFile_ValidConfig(t *testing.T) {
	path := writeTempConfig(t, validConfigJSON)

	result := validateFile(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}

	joined := strings.Join(result.Errors, "\n")
	for _, want := range []string{"Cities: 4", "Plants: 11", "All 4 cities connected"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected %q in report, got: %s", want, joined)
		}
	}
}

func TestValidateFile_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"name": "test", invalid json}`)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if len(result.Errors) == 0 {
		t.Error("Expected at least one error message")
	}
}

func TestValidateFile_MissingFile(t *testing.T) {
	result := validateFile("/nonexistent/config.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateFile_DuplicatePlantCost(t *testing.T) {
	content := strings.Replace(validConfigJSON, `{"cost": 4, "resource": "coal"`, `{"cost": 3, "resource": "coal"`, 1)
	path := writeTempConfig(t, content)

	result := validateFile(path)
	if result.Valid {
		t.Errorf("Expected invalid result for duplicate plant cost, got: %v", result.Errors)
	}
}

func TestValidateFile_UnknownResource(t *testing.T) {
	content := strings.Replace(validConfigJSON, `"resource": "uranium"`, `"resource": "plutonium"`, 1)
	path := writeTempConfig(t, content)

	result := validateFile(path)
	if result.Valid {
		t.Errorf("Expected invalid result for unknown resource, got: %v", result.Errors)
	}
}

func TestValidateFile_EdgeToUnknownCity(t *testing.T) {
	content := strings.Replace(validConfigJSON, `{"from": "charlie", "to": "delta", "cost": 6}`,
		`{"from": "charlie", "to": "atlantis", "cost": 6}`, 1)
	path := writeTempConfig(t, content)

	result := validateFile(path)
	if result.Valid {
		t.Errorf("Expected invalid result for edge to unknown city, got: %v", result.Errors)
	}
}

func TestValidateFile_DisconnectedCity(t *testing.T) {
	// Drop the edge that links delta into the rest of the map.
	content := strings.Replace(validConfigJSON, `,
			{"from": "charlie", "to": "delta", "cost": 6}`, "", 1)
	path := writeTempConfig(t, content)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for disconnected city")
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "Unreachable: delta") {
		t.Errorf("Expected unreachable city named in report, got: %s", joined)
	}
}

func TestValidateFile_MissingRulesFile(t *testing.T) {
	content := strings.Replace(validConfigJSON, `"description": "Test configuration",`,
		`"description": "Test configuration", "rules_file": "does_not_exist.yaml",`, 1)
	path := writeTempConfig(t, content)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for missing rules file")
	}
}

func TestValidateFile_RulesFileOverride(t *testing.T) {
	dir := t.TempDir()

	rules := "starting_money: 60\nmax_rounds: 12\n"
	if err := os.WriteFile(filepath.Join(dir, "rules.yaml"), []byte(rules), 0644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	content := strings.Replace(validConfigJSON, `"description": "Test configuration",`,
		`"description": "Test configuration", "rules_file": "rules.yaml",`, 1)
	configPath := filepath.Join(dir, "with_rules.json")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	result := validateFile(configPath)
	if !result.Valid {
		t.Errorf("Expected valid config with rules file, got: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "rules.yaml") {
		t.Errorf("Expected rules file noted in report, got: %s", joined)
	}
}

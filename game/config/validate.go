package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/go2048/game/service"
)

var knownActions = map[string]bool{
	service.ActionUp:      true,
	service.ActionDown:    true,
	service.ActionLeft:    true,
	service.ActionRight:   true,
	service.ActionQuit:    true,
	service.ActionNewGame: true,
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is false, Errors lists every problem that was found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// ValidateGameConfig checks a configuration and reports every problem at once
func ValidateGameConfig(config *service.GameConfig) error {
	if config == nil {
		return errors.New("config is nil")
	}
	problems := validationProblems(config)
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}

// ValidateFile loads and validates a single configuration JSON file
func ValidateFile(path string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(path),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config service.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if problems := validationProblems(&config); len(problems) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, problems...)
	}
	return result
}

// ValidateDir validates every .json file in dir, sorted by name
func ValidateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	for _, f := range files {
		results = append(results, ValidateFile(f))
	}
	return results, nil
}

func validationProblems(config *service.GameConfig) []string {
	var problems []string

	if strings.TrimSpace(config.Name) == "" {
		problems = append(problems, "name is required")
	}

	bound := make(map[string]bool)
	for _, key := range sortedKeys(config.KeyBindings) {
		action := config.KeyBindings[key]
		if utf8.RuneCountInString(key) != 1 {
			problems = append(problems, fmt.Sprintf("key binding %q must be a single character", key))
			continue
		}
		if r, _ := utf8.DecodeRuneInString(key); unicode.IsUpper(r) {
			problems = append(problems, fmt.Sprintf("key binding %q must be lowercase", key))
		}
		if !knownActions[action] {
			problems = append(problems, fmt.Sprintf("key %q bound to unknown action %q", key, action))
			continue
		}
		bound[action] = true
	}
	for _, action := range []string{service.ActionUp, service.ActionDown, service.ActionLeft, service.ActionRight} {
		if !bound[action] {
			problems = append(problems, fmt.Sprintf("no key bound to %s", action))
		}
	}

	for _, key := range sortedKeys(config.Palette) {
		if key != service.PaletteEmpty && key != service.PaletteDefault {
			value, err := strconv.Atoi(key)
			if err != nil || value < 2 || value&(value-1) != 0 {
				problems = append(problems, fmt.Sprintf("palette key %q is not a tile value", key))
			}
		}
		colors := config.Palette[key]
		for _, name := range []string{colors.Foreground, colors.Background} {
			if !validColor(name) {
				problems = append(problems, fmt.Sprintf("palette %s: unknown colour %q", key, name))
			}
		}
	}

	return problems
}

// validColor accepts empty, "default", W3C colour names and #rrggbb
func validColor(name string) bool {
	if name == "" || strings.EqualFold(name, "default") {
		return true
	}
	return tcell.GetColor(strings.ToLower(name)) != tcell.ColorDefault
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

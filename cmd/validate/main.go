package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/fun-house/pkg/scenario"
	"github.com/jwebster45206/fun-house/pkg/textfilter"
)

func main() {
	validator := &ScenarioValidator{}

	var err error
	if len(os.Args) < 2 {
		err = validator.validateBuiltIn()
	} else {
		err = validator.validateFile(os.Args[1])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Scenario is valid!")
}

type ScenarioValidator struct {
	errors []string
}

func (v *ScenarioValidator) validateBuiltIn() error {
	fmt.Println("Validating built-in scenario...")

	s, err := scenario.Default()
	if err != nil {
		return err
	}
	return v.validate(s, "built-in scenario")
}

func (v *ScenarioValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("scenario file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidScenarioFilename(nameWithoutExt) {
		return fmt.Errorf("scenario filename '%s' must be lowercase snake_case (e.g., my_scenario.json, not my-scenario.json or MyScenario.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	s, err := scenario.Parse(data)
	if err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	return v.validate(s, filename)
}

func (v *ScenarioValidator) validate(s *scenario.Scenario, source string) error {
	v.errors = nil

	v.validateScenario(s)

	if err := s.Validate(); err != nil {
		for _, e := range flatten(err) {
			v.addError(e.Error())
		}
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", source, strings.Join(v.errors, "\n"))
	}

	fmt.Printf("%d locations, %d characters\n", len(s.Locations), len(s.Characters))
	return nil
}

// validateScenario checks the things the game tolerates but authors
// usually get wrong.
func (v *ScenarioValidator) validateScenario(s *scenario.Scenario) {
	if strings.TrimSpace(s.Intro) == "" {
		v.addError("intro is empty; the game would skip straight to character selection")
	}
	if strings.TrimSpace(s.CompletionMessage) == "" {
		v.addError("completion_message is empty")
	}

	for _, loc := range s.Locations {
		if strings.TrimSpace(loc.Description) == "" {
			v.addError(fmt.Sprintf("location '%s' has no description", loc.Name))
		}
		for dir := range loc.Exits {
			v.validateDirection(loc.Name, dir)
		}
		if len(loc.Challenges) > 0 && textfilter.Equal(loc.Name, s.StartRoom) {
			v.addError(fmt.Sprintf("start room '%s' cannot hold challenges", loc.Name))
		}
		if len(loc.Challenges) > 0 && textfilter.Equal(loc.Name, s.HubRoom) {
			v.addError(fmt.Sprintf("hub room '%s' cannot hold challenges", loc.Name))
		}
	}

	for _, c := range s.Characters {
		if c.ID != "" && !isValidID(c.ID) {
			v.addError(fmt.Sprintf("character ID '%s' should be lowercase snake_case", c.ID))
		}
	}
}

func (v *ScenarioValidator) validateDirection(location, dir string) {
	if dir != textfilter.Normalize(dir) {
		v.addError(fmt.Sprintf("exit '%s' in location '%s' should be lowercase with no surrounding spaces", dir, location))
	}
	if strings.ContainsAny(dir, " \t") {
		v.addError(fmt.Sprintf("exit '%s' in location '%s' must be a single word", dir, location))
	}
}

func (v *ScenarioValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

// flatten unpacks errors.Join results so each problem gets its own line.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidScenarioFilename(name string) bool {
	// Allow 'x.' prefix for experimental scenarios
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/casrc/internal/rule"
	"github.com/roach88/casrc/internal/search"
)

// LoadConfigFile reads a YAML search configuration from disk.
// Flags given on the command line override the file's fields afterwards.
func LoadConfigFile(path string) (search.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return search.Config{}, WrapExitError(ExitIOError, "read config file", err)
	}

	var config search.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return search.Config{}, WrapExitError(ExitBadConfig, fmt.Sprintf("parse config file %s", path), err)
	}

	return config, nil
}

// parseKnownCell parses one --known entry of the form "x,y,t=STATE", where
// STATE is 0/1 or dead/alive.
func parseKnownCell(entry string) (search.KnownCell, error) {
	coords, stateText, ok := strings.Cut(entry, "=")
	if !ok {
		return search.KnownCell{}, fmt.Errorf("known cell %q: want x,y,t=state", entry)
	}

	parts := strings.Split(coords, ",")
	if len(parts) != 3 {
		return search.KnownCell{}, fmt.Errorf("known cell %q: want three coordinates", entry)
	}

	var cell search.KnownCell
	for i, dst := range []*int{&cell.X, &cell.Y, &cell.T} {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return search.KnownCell{}, fmt.Errorf("known cell %q: %v", entry, err)
		}
		*dst = v
	}

	var state rule.State
	if err := state.UnmarshalText([]byte(strings.TrimSpace(stateText))); err != nil {
		return search.KnownCell{}, fmt.Errorf("known cell %q: %v", entry, err)
	}
	if state == rule.Unknown {
		return search.KnownCell{}, fmt.Errorf("known cell %q: state must be dead or alive", entry)
	}
	cell.State = state

	return cell, nil
}

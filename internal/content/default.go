package content

import (
	_ "embed"
	"fmt"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

//go:embed scenarios/old_quarter.yaml
var defaultScenario []byte

// DefaultScenario returns the bundled scenario source.
func DefaultScenario() []byte {
	out := make([]byte, len(defaultScenario))
	copy(out, defaultScenario)
	return out
}

// LoadDefault parses the bundled scenario.
func LoadDefault() (*File, error) {
	f, err := Parse(defaultScenario)
	if err != nil {
		return nil, fmt.Errorf("bundled scenario: %w", err)
	}
	return f, nil
}

// LoadState reads the scenario at path, or the bundled one when path is
// empty, and builds its starting state.
func LoadState(path string, r state.Random, ids state.IDGenerator) (*state.GameState, error) {
	var (
		f   *File
		err error
	)
	if path == "" {
		f, err = LoadDefault()
	} else {
		f, err = Load(path)
	}
	if err != nil {
		return nil, err
	}
	return Build(f, r, ids)
}

package epidemic

import "fmt"

// HealthState enumerates the states a cell can occupy.
type HealthState uint8

const (
	Healthy HealthState = iota
	Sick
	Immune
	Dead

	numStates = 4
)

// noPending marks a cell without a transition scheduled for the current tick.
const noPending HealthState = 0xff

// States lists every health state in display order.
var States = [numStates]HealthState{Healthy, Sick, Immune, Dead}

var stateNames = [numStates]string{"healthy", "sick", "immune", "dead"}

// String returns the lower-case name of the state.
func (s HealthState) String() string {
	if s.Valid() {
		return stateNames[s]
	}
	return fmt.Sprintf("HealthState(%d)", uint8(s))
}

// Valid reports whether s is one of the four defined states.
func (s HealthState) Valid() bool { return s < numStates }

// MarshalText implements encoding.TextMarshaler.
func (s HealthState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid health state %d", uint8(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *HealthState) UnmarshalText(text []byte) error {
	parsed, err := ParseHealthState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseHealthState converts a state name back into a HealthState.
func ParseHealthState(name string) (HealthState, error) {
	for i, n := range stateNames {
		if n == name {
			return HealthState(i), nil
		}
	}
	return 0, fmt.Errorf("unknown health state %q", name)
}

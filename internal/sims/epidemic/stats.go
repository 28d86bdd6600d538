package epidemic

// Statistics holds the population count per health state.
type Statistics struct {
	Healthy int `json:"healthy"`
	Sick    int `json:"sick"`
	Immune  int `json:"immune"`
	Dead    int `json:"dead"`
}

// Count returns the number of cells in state s.
func (s Statistics) Count(state HealthState) int {
	switch state {
	case Healthy:
		return s.Healthy
	case Sick:
		return s.Sick
	case Immune:
		return s.Immune
	case Dead:
		return s.Dead
	}
	return 0
}

// Total returns the population size.
func (s Statistics) Total() int {
	return s.Healthy + s.Sick + s.Immune + s.Dead
}

// Fraction returns the share of the population in state s, or 0 for an empty
// population.
func (s Statistics) Fraction(state HealthState) float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Count(state)) / float64(total)
}

// counts is the engine's incrementally maintained tally, indexed by state.
type counts [numStates]int

func (c *counts) move(from, to HealthState) {
	c[from]--
	c[to]++
}

func (c counts) snapshot() Statistics {
	return Statistics{
		Healthy: c[Healthy],
		Sick:    c[Sick],
		Immune:  c[Immune],
		Dead:    c[Dead],
	}
}

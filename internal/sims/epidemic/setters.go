package epidemic

// Setters change tunables between ticks without touching the grid. Each one
// leaves the previous value in place when it returns an error.

// SetInfectionProbability sets the per-neighbour infection probability.
func (e *Engine) SetInfectionProbability(p float64) error {
	if err := checkProbability(KeyInfectionProbability, p); err != nil {
		return err
	}
	e.cfg.InfectionProbability = p
	return nil
}

// SetDeathProbability sets the probability that a recovering cell dies.
func (e *Engine) SetDeathProbability(p float64) error {
	if err := checkProbability(KeyDeathProbability, p); err != nil {
		return err
	}
	e.cfg.DeathProbability = p
	return nil
}

// SetInitialSick sets the seed count used by the next initialization.
func (e *Engine) SetInitialSick(n int) error {
	if n < 0 {
		return configErr(KeyInitialSick, n, "must not be negative")
	}
	e.cfg.InitialSick = n
	return nil
}

// SetSickDuration sets the countdown given to cells that fall sick from now on.
func (e *Engine) SetSickDuration(ticks int) error {
	if err := checkDuration(KeySickDuration, ticks); err != nil {
		return err
	}
	e.cfg.SickDuration = ticks
	return nil
}

// SetImmuneDuration sets the countdown given to cells that become immune from now on.
func (e *Engine) SetImmuneDuration(ticks int) error {
	if err := checkDuration(KeyImmuneDuration, ticks); err != nil {
		return err
	}
	e.cfg.ImmuneDuration = ticks
	return nil
}

// SetParameter parses value and applies it to the parameter named key.
// Changing the size is rejected: a different size is a different engine.
func (e *Engine) SetParameter(key, value string) error {
	switch k := CanonicalKey(key); k {
	case KeySize:
		return configErr(k, value, "size is fixed; re-initialize to change it")
	case KeySeed:
		return configErr(k, value, "seed only applies at initialization")
	case KeyInfectionProbability:
		p, err := ParseFloat(k, value)
		if err != nil {
			return err
		}
		return e.SetInfectionProbability(p)
	case KeyDeathProbability:
		p, err := ParseFloat(k, value)
		if err != nil {
			return err
		}
		return e.SetDeathProbability(p)
	case KeyInitialSick:
		n, err := ParseInt(k, value)
		if err != nil {
			return err
		}
		return e.SetInitialSick(n)
	case KeySickDuration:
		n, err := ParseInt(k, value)
		if err != nil {
			return err
		}
		return e.SetSickDuration(n)
	case KeyImmuneDuration:
		n, err := ParseInt(k, value)
		if err != nil {
			return err
		}
		return e.SetImmuneDuration(n)
	default:
		return configErr(key, value, "unknown parameter")
	}
}

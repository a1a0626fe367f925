package azint

// correctionFlags is a bitmask of which per-pixel correction steps are
// active for a given call, computed once from Config so the per-pixel
// hot loop branches on a single integer instead of testing five
// independent nil slices on every iteration.
type correctionFlags uint8

const (
	hasMask correctionFlags = 1 << iota
	hasDummy
	hasDark
	hasFlat
	hasPolarization
	hasSolidangle
)

// correctionPlan captures the enabled-step bitmask together with the
// scalar dummy/delta values, so the hot loop never re-reads Config.
type correctionPlan struct {
	flags      correctionFlags
	dummy      float64
	deltaDummy float64
}

func newCorrectionPlan(cfg *Config) correctionPlan {
	var p correctionPlan
	if cfg.Mask != nil {
		p.flags |= hasMask
	}
	if cfg.Dummy != nil {
		p.flags |= hasDummy
		p.dummy = *cfg.Dummy
		if cfg.DeltaDummy != nil {
			p.deltaDummy = *cfg.DeltaDummy
		}
	}
	if cfg.Dark != nil {
		p.flags |= hasDark
	}
	if cfg.Flat != nil {
		p.flags |= hasFlat
	}
	if cfg.Polarization != nil {
		p.flags |= hasPolarization
	}
	if cfg.Solidangle != nil {
		p.flags |= hasSolidangle
	}
	return p
}

func (f correctionFlags) has(bit correctionFlags) bool { return f&bit != 0 }

// correctPixel applies the C2 correction pipeline to one pixel's raw
// intensity. ok is false when the pixel must be skipped entirely (mask
// hit, or dummy match); corrected is meaningless in that case.
func correctPixel(i int, raw float64, cfg *Config, plan correctionPlan) (corrected float64, ok bool) {
	if plan.flags.has(hasMask) && cfg.Mask[i] {
		return 0, false
	}
	if plan.flags.has(hasDummy) {
		diff := raw - plan.dummy
		if diff < 0 {
			diff = -diff
		}
		if plan.deltaDummy == 0 {
			if raw == plan.dummy {
				return 0, false
			}
		} else if diff <= plan.deltaDummy {
			return 0, false
		}
	}

	v := raw
	if plan.flags.has(hasDark) {
		v -= cfg.Dark[i]
	}
	if plan.flags.has(hasFlat) {
		v /= cfg.Flat[i]
	}
	if plan.flags.has(hasPolarization) {
		v /= cfg.Polarization[i]
	}
	if plan.flags.has(hasSolidangle) {
		v /= cfg.Solidangle[i]
	}
	return v, true
}

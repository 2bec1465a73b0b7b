package typed

// DetectionMode selects how a dynamics processor measures signal level.
type DetectionMode string

const (
	DetectionMax DetectionMode = "max"
	DetectionRMS DetectionMode = "rms"
)

// Valid reports whether m is a recognised detection mode.
func (m DetectionMode) Valid() bool { return m == DetectionMax || m == DetectionRMS }

// Normalize falls back to DetectionMax for unrecognised modes.
func (m DetectionMode) Normalize() DetectionMode {
	if m.Valid() {
		return m
	}

	return DetectionMax
}

// KneeMode selects the knee shape of a dynamics processor.
type KneeMode string

const (
	KneeHard KneeMode = "hard"
	KneeSoft KneeMode = "soft"
)

func (m KneeMode) Valid() bool { return m == KneeHard || m == KneeSoft }

// Normalize falls back to KneeHard for unrecognised modes.
func (m KneeMode) Normalize() KneeMode {
	if m.Valid() {
		return m
	}

	return KneeHard
}

// FilterType selects the response of a FilterNode.
type FilterType string

const (
	FilterLowPass  FilterType = "lowPass"
	FilterHighPass FilterType = "highPass"
	FilterBandPass FilterType = "bandPass"
)

func (t FilterType) Valid() bool {
	return t == FilterLowPass || t == FilterHighPass || t == FilterBandPass
}

// Normalize falls back to FilterBandPass for unrecognised types.
func (t FilterType) Normalize() FilterType {
	if t.Valid() {
		return t
	}

	return FilterBandPass
}

func detectionModes() []string { return []string{string(DetectionMax), string(DetectionRMS)} }

func kneeModes() []string { return []string{string(KneeHard), string(KneeSoft)} }

func filterTypes() []string {
	return []string{string(FilterLowPass), string(FilterHighPass), string(FilterBandPass)}
}

package matching

// Weights holds the per-factor weights of the composite score.
// They sum to 1.0. When the optional semantic factor is unavailable the
// remaining weighted sum is scaled by 1/(1-Semantic) so the five present
// factors fill 100% of the composite.
type Weights struct {
	Skill        float64
	Domain       float64
	Availability float64
	Rating       float64
	Capacity     float64
	Semantic     float64
}

// Params defines all configurable parameters for the matching engine.
type Params struct {
	Weights Weights

	// MaxResults caps the ranked match list.
	MaxResults int

	// MinScore excludes candidates whose composite falls below it.
	MinScore float64
}

// ParamsConfig allows overriding the default parameters when creating a
// new Params instance. Zero values leave the defaults untouched.
type ParamsConfig struct {
	MaxResults int
	MinScore   float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		Weights: Weights{
			Skill:        0.30,
			Domain:       0.20,
			Availability: 0.15,
			Rating:       0.15,
			Capacity:     0.10,
			Semantic:     0.10,
		},
		MaxResults: 10,
		MinScore:   0,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxResults > 0 {
		params.MaxResults = config.MaxResults
	}
	if config.MinScore > 0 {
		params.MinScore = config.MinScore
	}

	return params
}

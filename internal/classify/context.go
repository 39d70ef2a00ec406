package classify

import "fmt"

// ComparisonContext tunes how pictographs are compared against dataset examples.
type ComparisonContext struct {
	SwapPropRotDir            bool    `json:"swapPropRotDir" mapstructure:"swapPropRotDir"`
	DirectionInversionEnabled bool    `json:"directionInversion" mapstructure:"directionInversion"`
	PrefloatMatchingEnabled   bool    `json:"prefloatMatching" mapstructure:"prefloatMatching"`
	StrictOrientationMatching bool    `json:"strictOrientation" mapstructure:"strictOrientation"`
	ToleranceThreshold        float64 `json:"tolerance" mapstructure:"tolerance"`
}

// DefaultContext enables direction inversion and prefloat matching with a 0.9 tolerance.
func DefaultContext() ComparisonContext {
	return ComparisonContext{
		DirectionInversionEnabled: true,
		PrefloatMatchingEnabled:   true,
		ToleranceThreshold:        FallbackThreshold,
	}
}

// Validate rejects tolerance thresholds outside [0,1].
func (c ComparisonContext) Validate() error {
	if c.ToleranceThreshold < 0 || c.ToleranceThreshold > 1 {
		return fmt.Errorf("%w: %v", ErrToleranceRange, c.ToleranceThreshold)
	}
	return nil
}

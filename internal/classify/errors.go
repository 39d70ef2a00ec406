package classify

import "errors"

// ErrToleranceRange is returned for a tolerance threshold outside [0,1].
var ErrToleranceRange = errors.New("classify: tolerance threshold must be within [0,1]")

// Failure reasons reported on unsuccessful determinations.
const (
	ReasonBothStatic       = "both motions static"
	ReasonDatasetEmpty     = "dataset empty"
	ReasonNoMatches        = "no matches found"
	ReasonMissingPrefloat  = "missing prefloat attributes"
	ReasonNoStrategyMatch  = "no dataset example matched"
	ReasonZeroConfidence   = "match reported zero confidence"
	ReasonNoFloatCandidate = "no float/non-float channel pair"
)

package classify

import "github.com/kinetic-alphabet/pictograph/pkg/core"

// Result is the outcome of one letter determination. It is built once by
// Success or Failure and exposes its state only through getters.
type Result struct {
	letter     core.Letter
	confidence float64
	strategy   string
	reason     string
	warnings   []string
	pictograph core.Pictograph
}

// Success returns a result carrying a letter. A non-positive confidence
// cannot carry a letter and yields a failure instead.
func Success(letter core.Letter, confidence float64, strategy string, p core.Pictograph, warnings ...string) Result {
	if confidence <= 0 || letter == "" {
		return Failure(ReasonZeroConfidence, strategy, p, warnings...)
	}
	if confidence > 1 {
		confidence = 1
	}
	return Result{
		letter:     letter,
		confidence: confidence,
		strategy:   strategy,
		warnings:   append([]string(nil), warnings...),
		pictograph: p.Clone().WithLetter(letter),
	}
}

// Failure returns a result without a letter.
func Failure(reason, strategy string, p core.Pictograph, warnings ...string) Result {
	return Result{
		strategy:   strategy,
		reason:     reason,
		warnings:   append([]string(nil), warnings...),
		pictograph: p.Clone(),
	}
}

// Letter returns the determined letter and whether one was found.
func (r Result) Letter() (core.Letter, bool) {
	return r.letter, r.letter != ""
}

// Found reports whether a letter was determined.
func (r Result) Found() bool {
	return r.letter != ""
}

// Confidence is within [0,1]; it is 0 for failures.
func (r Result) Confidence() float64 {
	return r.confidence
}

// Strategy names the strategy that produced the result.
func (r Result) Strategy() string {
	return r.strategy
}

// Reason explains a failure; it is empty on success.
func (r Result) Reason() string {
	return r.reason
}

// Warnings returns a copy of the collected warnings.
func (r Result) Warnings() []string {
	return append([]string(nil), r.warnings...)
}

// Pictograph returns the normalized query, including any prefloat attributes
// a strategy derived. On success its Letter is set.
func (r Result) Pictograph() core.Pictograph {
	return r.pictograph.Clone()
}

func (r Result) withWarnings(extra ...string) Result {
	if len(extra) == 0 {
		return r
	}
	r.warnings = append(append([]string(nil), extra...), r.warnings...)
	return r
}

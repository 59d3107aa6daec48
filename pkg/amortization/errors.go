package amortization

import "fmt"

// InvalidInputError reports a LoanInput field outside the range the engine
// accepts.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid loan input %s=%v: %s", e.Field, e.Value, e.Reason)
}

// ComputationOverflowError reports a non-finite intermediate result. Period is
// zero when the failure happened before the first period was computed.
type ComputationOverflowError struct {
	Stage  string
	Period int
}

func (e *ComputationOverflowError) Error() string {
	if e.Period > 0 {
		return fmt.Sprintf("amortization overflow computing %s at period %d", e.Stage, e.Period)
	}
	return fmt.Sprintf("amortization overflow computing %s", e.Stage)
}

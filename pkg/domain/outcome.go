package domain

// Outcome classifies the result of a transition.
type Outcome string

const (
	// OutcomeUpdated: the document changed, no validation ran.
	OutcomeUpdated Outcome = "updated"
	// OutcomeAdvanced: the current step validated and the index moved forward.
	OutcomeAdvanced Outcome = "advanced"
	// OutcomeRetreated: the index moved back by one.
	OutcomeRetreated Outcome = "retreated"
	// OutcomeStayed: nothing to move to (retreat at 0, advance at the last editable step).
	OutcomeStayed Outcome = "stayed"
	// OutcomeValidationFailed: the error map was populated and the step is unchanged.
	OutcomeValidationFailed Outcome = "validation_failed"
	// OutcomeDelivered: the document was delivered and the session is terminal.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeDeliveryFailed: the collaborator failed; document and step are unchanged.
	OutcomeDeliveryFailed Outcome = "delivery_failed"
)

// Result is returned alongside the next state by every transition.
type Result struct {
	Outcome Outcome

	// Errors is the error map of the next state (empty unless validation failed).
	Errors ErrorMap

	// Err carries a *DeliveryError when Outcome == OutcomeDeliveryFailed.
	Err error
}

// OK reports whether the transition completed without user-visible failure.
func (r Result) OK() bool {
	return r.Outcome != OutcomeValidationFailed && r.Outcome != OutcomeDeliveryFailed
}

/*
Package intake is a multi-step form engine for insurance applications.

It tracks the wizard position, holds partial answers across steps, validates the
current step on Advance and the whole document on Submit, maps failures to
field-level messages keyed by dotted path, and hands the normalized document to a
delivery collaborator exactly once per submit.

# Concept

A form family (auto or property) is a fixed registry of steps plus a rule table per
section. The Engine is stateless: each transition takes a domain.State and returns the
next one with a domain.Result describing the outcome. Hosts that keep sessions across
requests persist the state themselves (see pkg/session); in-process hosts use a Wizard.

# Usage

	eng, err := intake.New(domain.FormAuto, intake.WithDeliverer(outbox))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	w := eng.NewWizard(ctx, "session-123")

	_, _ = w.Update(ctx, "generalInfo", map[string]any{
		"insuredName": "Ann Driver",
		"address":     "123 St",
		"mobilePhone": "555-1212",
		"email":       "ann@example.com",
	})

	res, err := w.Proceed(ctx)
	switch {
	case err != nil:
		// programmer error, or a transition on a submitted session
	case res.Outcome == domain.OutcomeValidationFailed:
		// show res.Errors next to the fields
	}

# Outcomes

  - updated: the document changed, no validation ran.
  - advanced, retreated, stayed: navigation results.
  - validation_failed: the error map holds the violations, the step is unchanged.
  - delivered: the session is terminal on the confirmation step.
  - delivery_failed: Result.Err is a *domain.DeliveryError; nothing was lost.
*/
package intake

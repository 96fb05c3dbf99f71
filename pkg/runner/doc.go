/*
Package runner drives a wizard session from a terminal.

It walks the steps of an intake.Wizard, asks one question per field through a
Prompter, and maps the navigation menu onto Proceed and Retreat. Rendering of
step headers and summaries is delegated to an optional ContentRenderer so the
package does not depend on a particular terminal library.

# Key Components

  - Runner: the fill loop. Saves the session after every transition when a store is set.
  - Prompter: asks questions. SurveyPrompter is the interactive implementation.
  - SanitizeInput: rejects oversized or malformed text answers.

# Usage

	eng := intake.MustNew(domain.FormAuto, intake.WithDeliverer(d))
	r := runner.New(runner.NewSurveyPrompter(nil, nil),
		runner.WithRenderer(tui.NewRenderer(80)),
		runner.WithStore(store),
	)
	state, err := r.Run(ctx, eng.NewWizard(ctx, uuid.NewString()))
*/
package runner

// Package runtime implements the wizard state machine.
//
// The Engine moves a domain.State between Editing(step) for step in [0, n-2] and
// Submitted (step n-1). Submit is split into BeginSubmit and CompleteSubmit so
// multi-request hosts can publish the submitting flag before delivery runs.
package runtime

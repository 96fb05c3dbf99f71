/*
Package domain contains the core domain models of the intake wizard.

It defines the entities the engine moves between states: the accumulated form Document,
the ErrorMap produced by validation, and the WizardState snapshot that hosts persist and
hand back on every transition. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Document: the accumulated answers, one entry per declared section.
  - ErrorMap: dotted field path to human-readable message.
  - State: the runtime snapshot of a session (step, document, errors, submitting flag).
  - Result: the outcome of a single transition (advanced, validation failed, delivered...).
*/
package domain

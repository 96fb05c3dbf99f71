/*
Package ports defines the driven ports (interfaces) of the intake wizard.

These interfaces decouple the core engine from external implementations, allowing
the same engine to run behind an HTTP API, a terminal, or a test harness.

# Key Interfaces

  - WizardEngine: the stateless transition surface adapters drive.
  - Deliverer: transmits a validated application (email, log, in-memory outbox).
  - StateStore: persists WizardState between requests.
  - DistributedLocker: coordinates concurrent access to a session across replicas.
*/
package ports

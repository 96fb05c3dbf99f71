/*
Package observability turns engine lifecycle hooks into Prometheus metrics and structured logs.

Both producers return domain.LifecycleHooks, so they compose with LifecycleHooks.Merge and
plug into intake.WithLifecycleHooks.
*/
package observability

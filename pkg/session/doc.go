/*
Package session implements session management and persistence orchestration.

A Manager keeps one wizard state per session ID in a ports.StateStore and
serializes access to it with a per-session mutex (reference counted, so idle
sessions hold no memory) plus an optional distributed lock for multi-replica hosts.
Submit is two-phase: the submitting flag is persisted before delivery starts so
other requests can see it.
*/
package session

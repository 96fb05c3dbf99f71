// Package middleware provides StateStore decorators and document masking helpers
// used when wizard sessions or applications leave the process.
package middleware

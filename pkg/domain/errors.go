package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownSection is returned when an update names a section the form does not declare.
// It signals a registry/schema mismatch in the caller, not a user mistake.
var ErrUnknownSection = errors.New("unknown section")

// ErrUnknownFormType is returned when a form family is not registered.
var ErrUnknownFormType = errors.New("unknown form type")

// ErrSubmitInFlight is returned when a submit is requested while one is already running.
var ErrSubmitInFlight = errors.New("submission already in flight")

// ErrAlreadySubmitted is returned for any transition requested on a submitted session.
var ErrAlreadySubmitted = errors.New("form already submitted")

// ErrNotRepeatable is returned when entry operations target a non-list section.
var ErrNotRepeatable = errors.New("section is not repeatable")

// ErrEntryLimit is returned when adding an entry would exceed the section maximum.
var ErrEntryLimit = errors.New("entry limit reached")

// ErrEntryNotRemovable is returned when removing the first entry or an index out of range.
var ErrEntryNotRemovable = errors.New("entry cannot be removed")

// ErrInvalidPath is returned when a field path does not resolve inside the document.
var ErrInvalidPath = errors.New("invalid field path")

// DeliveryError reports that the delivery collaborator could not transmit the document.
type DeliveryError struct {
	FormType FormType
	Cause    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery of %s application failed: %v", e.FormType, e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

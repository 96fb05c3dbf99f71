// Package registry holds the ordered step list of a wizard.
//
// Every step but the last owns one document section; the last step is the
// confirmation screen and is never a validation target.
package registry

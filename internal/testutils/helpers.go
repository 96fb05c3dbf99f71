package testutils

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/stretchr/testify/require"
)

// ValidGeneralInfo returns a general-info section that passes every rule.
func ValidGeneralInfo() map[string]any {
	return map[string]any{
		"insuredName": "Ann Driver",
		"address":     "123 St",
		"homePhone":   "",
		"mobilePhone": "555-1212",
		"email":       "ann@example.com",
	}
}

// ValidAutoDocument returns a minimally valid auto application.
func ValidAutoDocument() domain.Document {
	return domain.Document{
		"generalInfo": ValidGeneralInfo(),
		"drivers": []any{map[string]any{
			"name":              "Ann Driver",
			"licenseNumber":     "A1234-56789",
			"relationToInsured": "self",
		}},
		"vehicles": []any{map[string]any{
			"year":            "2019",
			"make":            "Honda",
			"model":           "Civic",
			"vin":             "1HGCV1F30JA000000",
			"principalDriver": "Ann Driver",
			"kmsDriven":       "15",
			"annualKms":       "12000",
		}},
		"drivingHistory": map[string]any{
			"presentInsurer":       "Acme Mutual",
			"yearsInsuredInCanada": "8",
			"insuranceCancelled":   "no",
			"atFaultAccidents":     "no",
			"notAtFaultAccidents":  "no",
			"drivingConvictions":   "no",
		},
	}
}

// ValidPropertyDocument returns a minimally valid property application.
func ValidPropertyDocument() domain.Document {
	return domain.Document{
		"applicantInfo": map[string]any{
			"name":        "Pat Owner",
			"occupation":  "Engineer",
			"address":     "9 Elm Rd",
			"mobilePhone": "555-3434",
			"email":       "x@y.z",
		},
		"propertyOverview": map[string]any{
			"yearBuilt":                "1998",
			"squareFootageAboveGround": "1800",
			"structureType":            "detached",
			"storeys":                  "2",
			"basementType":             "full",
			"exteriorWalls":            "brick",
			"basicShape":               "rectangular",
			"occupancyDate":            "2020-06-01",
		},
		"propertySystems": map[string]any{
			"roofing":          "asphalt",
			"principalHeating": "forced-air-gas",
			"plumbing":         "copper",
			"waterHeater":      "tank-gas",
			"wiring":           "copper",
			"electricalPanel":  "breaker",
			"electricalAmps":   "200",
			"fullBathrooms":    2,
			"halfBathrooms":    1,
		},
		"insuranceHistory": map[string]any{
			"presentInsurer":            "Acme Mutual",
			"policyNumber":              "P-100",
			"expiryDate":                "2027-01-01",
			"yearsOfContinuousCoverage": "10",
		},
	}
}

// Delivery is one recorded call to a RecordingDeliverer.
type Delivery struct {
	FormType domain.FormType
	Document domain.Document
}

// RecordingDeliverer records deliveries and fails with Err when set.
type RecordingDeliverer struct {
	mu    sync.Mutex
	Err   error
	calls []Delivery
	// Hook runs inside Deliver before recording, e.g. to observe in-flight state.
	Hook func()
}

func (d *RecordingDeliverer) Deliver(ctx context.Context, formType domain.FormType, doc domain.Document) error {
	if d.Hook != nil {
		d.Hook()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Delivery{FormType: formType, Document: doc})
	return d.Err
}

// Calls returns the recorded deliveries.
func (d *RecordingDeliverer) Calls() []Delivery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Delivery(nil), d.calls...)
}

// RequireSingleDelivery fails the test unless exactly one delivery was recorded and returns it.
func RequireSingleDelivery(t *testing.T, d *RecordingDeliverer) Delivery {
	t.Helper()
	calls := d.Calls()
	require.Len(t, calls, 1, "expected exactly one delivery")
	return calls[0]
}

package property_test

import (
	"testing"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms/property"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition(t *testing.T) {
	d := property.Definition()

	assert.Equal(t, domain.FormProperty, d.Type)
	assert.Equal(t, 5, d.Registry.Len())

	seed := d.Seed()
	v, _ := seed.Lookup("insuranceHistory.nonSmokers")
	assert.Equal(t, true, v)
	v, _ = seed.Lookup("propertySystems.fullBathrooms")
	assert.Equal(t, 0, v)
	v, _ = seed.Lookup("propertySystems.pool")
	assert.Equal(t, false, v)
}

func TestSystemsRules(t *testing.T) {
	s := property.Schema()
	_, err := schema.ValidateSection(s, property.SectionPropertySystems, map[string]any{
		"roofing":          "straw",
		"principalHeating": "oil",
		"plumbing":         "copper",
		"waterHeater":      "gas",
		"wiring":           "copper",
		"electricalPanel":  "breaker",
		"electricalAmps":   "200",
		"fullBathrooms":    "two",
	})
	assert.Equal(t, domain.ErrorMap{
		"propertySystems.roofing":       "must be one of: asphalt, metal, slate, tile, wood",
		"propertySystems.fullBathrooms": "must be a number",
	}, schema.ToErrorMap(err))
}

func TestSystemsNormalization(t *testing.T) {
	s := property.Schema()
	got, err := schema.ValidateSection(s, property.SectionPropertySystems, map[string]any{
		"roofing": "metal", "principalHeating": "oil", "plumbing": "pex", "waterHeater": "solar",
		"wiring": "mixed", "electricalPanel": "fuse", "electricalAmps": "100",
		"fullBathrooms": "2", "numberOfCars": 1.5,
	})
	require.NoError(t, err)
	rec := got.(map[string]any)
	assert.Equal(t, 2, rec["fullBathrooms"])
	assert.Equal(t, 0, rec["halfBathrooms"])
	assert.Equal(t, 1.5, rec["numberOfCars"])
}

func TestApplicantName(t *testing.T) {
	d := property.Definition()
	doc, err := d.Seed().SetPath("applicantInfo.name", "Pat Owner")
	require.NoError(t, err)
	assert.Equal(t, "Pat Owner", d.ApplicantName(doc))

	app, err := property.Decode(doc)
	require.NoError(t, err)
	assert.True(t, app.InsuranceHistory.NonSmokers)
}

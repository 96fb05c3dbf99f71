// Package property defines the property insurance application.
package property

import (
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/registry"
	"github.com/aretw0/intake/pkg/schema"
)

const (
	SectionApplicantInfo    = "applicantInfo"
	SectionPropertyOverview = "propertyOverview"
	SectionPropertySystems  = "propertySystems"
	SectionInsuranceHistory = "insuranceHistory"
)

// Steps is the property wizard order.
var Steps = []registry.Step{
	{Name: "Applicant Information", Section: SectionApplicantInfo},
	{Name: "Property Overview", Section: SectionPropertyOverview},
	{Name: "Property Systems", Section: SectionPropertySystems},
	{Name: "Insurance History", Section: SectionInsuranceHistory},
	{Name: "Thank You"},
}

var applicantInfo = schema.Object(SectionApplicantInfo, "Applicant Information",
	schema.Text("name", "Name").Require(),
	schema.Text("occupation", "Occupation").Require(),
	schema.Text("dateOfBirth", "Date of Birth"),
	schema.Text("address", "Address").Require(),
	schema.Text("homePhone", "Home Phone"),
	schema.Text("mobilePhone", "Mobile Phone").Require(),
	schema.Email("email", "Email").Require(),
	schema.Text("coApplicantName", "Co-Applicant's Name"),
	schema.Text("coApplicantOccupation", "Co-Applicant's Occupation"),
	schema.Text("coApplicantDateOfBirth", "Co-Applicant's Date of Birth"),
	schema.Text("relationshipToApplicant", "Relationship to Applicant"),
)

var propertyOverview = schema.Object(SectionPropertyOverview, "Property Overview",
	schema.Numeric("yearBuilt", "Year Built").Require(),
	schema.Numeric("squareFootageAboveGround", "Square Footage Above Ground").Require(),
	schema.Enum("structureType", "Structure Type", "detached", "semi-detached", "townhouse", "condo").Require(),
	schema.Numeric("storeys", "Storeys").Require(),
	schema.Enum("basementType", "Basement Type", "full", "partial", "crawl", "slab").Require(),
	schema.Text("basementSquareFootage", "Basement Square Footage"),
	schema.Text("basementFinishedArea", "Basement Finished Area (%)"),
	schema.Enum("exteriorWalls", "Exterior Walls", "brick", "vinyl", "wood", "stucco", "stone").Require(),
	schema.Enum("basicShape", "Basic Shape", "rectangular", "l-shaped", "split-level", "square").Require(),
	schema.Text("distanceToHydrant", "Distance to Hydrant"),
	schema.Text("distanceToFireHall", "Distance to Fire Hall"),
	schema.Text("occupancyDate", "Occupancy Date").Require(),
)

var propertySystems = schema.Object(SectionPropertySystems, "Property Systems",
	schema.Enum("roofing", "Roofing", "asphalt", "metal", "slate", "tile", "wood").Require(),
	schema.Enum("principalHeating", "Principal Heating",
		"forced-air", "forced-air-gas", "forced-air-electric", "electric", "heat-pump", "hot-water", "oil").Require(),
	schema.Text("auxiliaryHeating", "Auxiliary Heating"),
	schema.Enum("plumbing", "Plumbing", "copper", "pex", "plastic", "galvanized", "mixed").Require(),
	schema.Enum("waterHeater", "Water Heater",
		"gas", "electric", "tankless", "solar", "tank-gas", "tank-electric", "tankless-gas", "tankless-electric").Require(),
	schema.Text("sumpPump", "Sump Pump"),
	schema.Text("backFlowValve", "Back Flow Valve"),
	schema.Enum("wiring", "Wiring", "copper", "aluminum", "knob-tube", "mixed").Require(),
	schema.Enum("electricalPanel", "Electrical Panel", "breaker", "fuse").Require(),
	schema.Enum("electricalAmps", "Electrical Amps", "60", "100", "200", "400").Require(),
	schema.Text("fireAlarm", "Fire Alarm"),
	schema.Text("burglarAlarm", "Burglar Alarm"),
	schema.Enum("garageType", "Garage Type", "attached", "detached", "built-in", "none"),
	schema.Number("numberOfCars", "Number of Cars"),
	schema.Bool("pool", "Pool"),
	schema.Bool("hotTub", "Hot Tub"),
	schema.Number("fullBathrooms", "Full Bathrooms").Require().WithDefault(0),
	schema.Number("halfBathrooms", "Half Bathrooms").Require().WithDefault(0),
	schema.Text("deckSquareFootage", "Deck Square Footage"),
	schema.Text("porchSquareFootage", "Porch Square Footage"),
	schema.Text("updates", "Updates"),
	schema.Text("specialFeatures", "Special Features"),
)

var insuranceHistory = schema.Object(SectionInsuranceHistory, "Insurance History",
	schema.Text("presentInsurer", "Present Insurer").Require(),
	schema.Text("policyNumber", "Policy Number").Require(),
	schema.Text("expiryDate", "Expiry Date").Require(),
	schema.Numeric("yearsOfContinuousCoverage", "Years of Continuous Coverage").Require(),
	schema.Bool("previousCancellation", "Previous Cancellation"),
	schema.Text("cancellationDetails", "Cancellation Details"),
	schema.Bool("waterDamageClaims", "Water Damage Claims"),
	schema.Text("waterDamageDetails", "Water Damage Details"),
	schema.Text("mortgageInfo", "Mortgage Information"),
	schema.Bool("nonSmokers", "Non-Smokers").WithDefault(true),
	schema.Text("autoInsurance", "Auto Insurance"),
	schema.Text("additionalCoverages", "Additional Coverages"),
	schema.Bool("creditScoreConsent", "Credit Score Consent"),
	schema.Text("notes", "Notes"),
)

// Schema returns the property rule tables.
func Schema() *schema.Schema {
	return schema.MustNew(applicantInfo, propertyOverview, propertySystems, insuranceHistory)
}

// Definition returns the property form definition.
func Definition() *forms.Definition {
	return forms.MustNew(domain.FormProperty, "Property Insurance Application",
		registry.MustNew(Steps...), Schema(),
		forms.WithApplicantName(func(doc domain.Document) string {
			app, err := Decode(doc)
			if err != nil {
				return ""
			}
			return app.ApplicantInfo.Name
		}),
	)
}

// Package auto defines the auto insurance application: four editable steps
// (general info, drivers, vehicles, driving history) and a confirmation step.
package auto

import (
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/registry"
	"github.com/aretw0/intake/pkg/schema"
)

// Section keys.
const (
	SectionGeneralInfo    = "generalInfo"
	SectionDrivers        = "drivers"
	SectionVehicles       = "vehicles"
	SectionDrivingHistory = "drivingHistory"
)

// MaxEntries bounds the drivers and vehicles lists.
const MaxEntries = 3

// Steps is the auto wizard order.
var Steps = []registry.Step{
	{Name: "General Information", Section: SectionGeneralInfo},
	{Name: "Driver Information", Section: SectionDrivers},
	{Name: "Vehicle Information", Section: SectionVehicles},
	{Name: "Driving History", Section: SectionDrivingHistory},
	{Name: "Thank You"},
}

var generalInfo = schema.Object(SectionGeneralInfo, "General Information",
	schema.Text("insuredName", "Insured Name").Require(),
	schema.Text("address", "Address").Require(),
	schema.Text("homePhone", "Home Phone"),
	schema.Text("mobilePhone", "Mobile Phone").Require(),
	schema.Email("email", "Email").Require(),
)

var drivers = schema.List(SectionDrivers, "Drivers", 1, MaxEntries,
	schema.Text("name", "Name").Require(),
	schema.Enum("sex", "Sex", "M", "F", "X"),
	schema.Text("dateOfBirth", "Date of Birth"),
	schema.Enum("maritalStatus", "Marital Status", "single", "married", "divorced", "widowed"),
	schema.Text("relationToInsured", "Relation to Insured").Require(),
	schema.Text("licenseNumber", "Driver's License #").Require(),
	schema.Text("driverTraining", "Driver Training"),
	schema.Object("dateLicensed", "Date Licensed",
		schema.Text("g", "G"),
		schema.Text("g2", "G2"),
		schema.Text("g1", "G1"),
	),
)

var vehicles = schema.List(SectionVehicles, "Vehicles", 1, MaxEntries,
	schema.Numeric("year", "Year").Require(),
	schema.Text("make", "Make").Require(),
	schema.Text("model", "Model").Require(),
	schema.Text("vin", "VIN").Require(),
	schema.Text("principalDriver", "Principal Driver").Require(),
	schema.Text("use", "Use"),
	schema.Numeric("kmsDriven", "KMs Driven to Work").Require(),
	schema.Numeric("annualKms", "Annual KMs").Require(),
	schema.Text("purchaseDate", "Purchase Date"),
	schema.Text("ownership", "Ownership"),
	schema.Bool("winterTires", "Winter Tires Installed (November to April)").WithDefault(false),
)

var drivingHistory = schema.Object(SectionDrivingHistory, "Driving History",
	schema.Text("presentInsurer", "Present Insurer").Require(),
	schema.Text("expiryDate", "Expiry Date"),
	schema.Numeric("yearsInsuredInCanada", "Years Continuously Insured in Canada").Require(),
	schema.Text("insuranceCancelled", "Has your Auto Insurance ever been cancelled or refused?").Require(),
	schema.Text("propertyInsurance", "Do you also have Property Insurance? With which Insurance Company?"),
	schema.Text("atFaultAccidents", "AT FAULT accidents in the past 10 years").Require(),
	schema.Text("notAtFaultAccidents", "NOT AT FAULT accidents or claims in the past 10 years").Require(),
	schema.Text("drivingConvictions", "Driving convictions in the past 3 years").Require(),
	schema.Text("licenseSuspensions", "License suspensions"),
	schema.Text("notes", "Notes"),
)

// Schema returns the auto rule tables.
func Schema() *schema.Schema {
	return schema.MustNew(generalInfo, drivers, vehicles, drivingHistory)
}

// Definition returns the auto form definition.
func Definition() *forms.Definition {
	return forms.MustNew(domain.FormAuto, "Auto Insurance Application",
		registry.MustNew(Steps...), Schema(),
		forms.WithApplicantName(func(doc domain.Document) string {
			app, err := Decode(doc)
			if err != nil {
				return ""
			}
			return app.GeneralInfo.InsuredName
		}),
	)
}

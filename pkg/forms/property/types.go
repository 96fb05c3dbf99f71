package property

import (
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

type ApplicantInfo struct {
	Name                    string `mapstructure:"name"`
	Occupation              string `mapstructure:"occupation"`
	DateOfBirth             string `mapstructure:"dateOfBirth"`
	Address                 string `mapstructure:"address"`
	HomePhone               string `mapstructure:"homePhone"`
	MobilePhone             string `mapstructure:"mobilePhone"`
	Email                   string `mapstructure:"email"`
	CoApplicantName         string `mapstructure:"coApplicantName"`
	CoApplicantOccupation   string `mapstructure:"coApplicantOccupation"`
	CoApplicantDateOfBirth  string `mapstructure:"coApplicantDateOfBirth"`
	RelationshipToApplicant string `mapstructure:"relationshipToApplicant"`
}

type Overview struct {
	YearBuilt                string `mapstructure:"yearBuilt"`
	SquareFootageAboveGround string `mapstructure:"squareFootageAboveGround"`
	StructureType            string `mapstructure:"structureType"`
	Storeys                  string `mapstructure:"storeys"`
	BasementType             string `mapstructure:"basementType"`
	BasementSquareFootage    string `mapstructure:"basementSquareFootage"`
	BasementFinishedArea     string `mapstructure:"basementFinishedArea"`
	ExteriorWalls            string `mapstructure:"exteriorWalls"`
	BasicShape               string `mapstructure:"basicShape"`
	DistanceToHydrant        string `mapstructure:"distanceToHydrant"`
	DistanceToFireHall       string `mapstructure:"distanceToFireHall"`
	OccupancyDate            string `mapstructure:"occupancyDate"`
}

type Systems struct {
	Roofing            string  `mapstructure:"roofing"`
	PrincipalHeating   string  `mapstructure:"principalHeating"`
	AuxiliaryHeating   string  `mapstructure:"auxiliaryHeating"`
	Plumbing           string  `mapstructure:"plumbing"`
	WaterHeater        string  `mapstructure:"waterHeater"`
	SumpPump           string  `mapstructure:"sumpPump"`
	BackFlowValve      string  `mapstructure:"backFlowValve"`
	Wiring             string  `mapstructure:"wiring"`
	ElectricalPanel    string  `mapstructure:"electricalPanel"`
	ElectricalAmps     string  `mapstructure:"electricalAmps"`
	FireAlarm          string  `mapstructure:"fireAlarm"`
	BurglarAlarm       string  `mapstructure:"burglarAlarm"`
	GarageType         string  `mapstructure:"garageType"`
	NumberOfCars       float64 `mapstructure:"numberOfCars"`
	Pool               bool    `mapstructure:"pool"`
	HotTub             bool    `mapstructure:"hotTub"`
	FullBathrooms      float64 `mapstructure:"fullBathrooms"`
	HalfBathrooms      float64 `mapstructure:"halfBathrooms"`
	DeckSquareFootage  string  `mapstructure:"deckSquareFootage"`
	PorchSquareFootage string  `mapstructure:"porchSquareFootage"`
	Updates            string  `mapstructure:"updates"`
	SpecialFeatures    string  `mapstructure:"specialFeatures"`
}

type InsuranceHistory struct {
	PresentInsurer            string `mapstructure:"presentInsurer"`
	PolicyNumber              string `mapstructure:"policyNumber"`
	ExpiryDate                string `mapstructure:"expiryDate"`
	YearsOfContinuousCoverage string `mapstructure:"yearsOfContinuousCoverage"`
	PreviousCancellation      bool   `mapstructure:"previousCancellation"`
	CancellationDetails       string `mapstructure:"cancellationDetails"`
	WaterDamageClaims         bool   `mapstructure:"waterDamageClaims"`
	WaterDamageDetails        string `mapstructure:"waterDamageDetails"`
	MortgageInfo              string `mapstructure:"mortgageInfo"`
	NonSmokers                bool   `mapstructure:"nonSmokers"`
	AutoInsurance             string `mapstructure:"autoInsurance"`
	AdditionalCoverages       string `mapstructure:"additionalCoverages"`
	CreditScoreConsent        bool   `mapstructure:"creditScoreConsent"`
	Notes                     string `mapstructure:"notes"`
}

// Application is the typed view of a property document.
type Application struct {
	ApplicantInfo    ApplicantInfo    `mapstructure:"applicantInfo"`
	PropertyOverview Overview         `mapstructure:"propertyOverview"`
	PropertySystems  Systems          `mapstructure:"propertySystems"`
	InsuranceHistory InsuranceHistory `mapstructure:"insuranceHistory"`
}

// Decode converts a document into its typed view.
func Decode(doc domain.Document) (*Application, error) {
	var app Application
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &app,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(map[string]any(doc)); err != nil {
		return nil, fmt.Errorf("decode property application: %w", err)
	}
	return &app, nil
}

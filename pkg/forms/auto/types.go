package auto

import (
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

type GeneralInfo struct {
	InsuredName string `mapstructure:"insuredName"`
	Address     string `mapstructure:"address"`
	HomePhone   string `mapstructure:"homePhone"`
	MobilePhone string `mapstructure:"mobilePhone"`
	Email       string `mapstructure:"email"`
}

type DateLicensed struct {
	G  string `mapstructure:"g"`
	G2 string `mapstructure:"g2"`
	G1 string `mapstructure:"g1"`
}

type Driver struct {
	Name              string       `mapstructure:"name"`
	Sex               string       `mapstructure:"sex"`
	DateOfBirth       string       `mapstructure:"dateOfBirth"`
	MaritalStatus     string       `mapstructure:"maritalStatus"`
	RelationToInsured string       `mapstructure:"relationToInsured"`
	LicenseNumber     string       `mapstructure:"licenseNumber"`
	DriverTraining    string       `mapstructure:"driverTraining"`
	DateLicensed      DateLicensed `mapstructure:"dateLicensed"`
}

type Vehicle struct {
	Year            string `mapstructure:"year"`
	Make            string `mapstructure:"make"`
	Model           string `mapstructure:"model"`
	VIN             string `mapstructure:"vin"`
	PrincipalDriver string `mapstructure:"principalDriver"`
	Use             string `mapstructure:"use"`
	KmsDriven       string `mapstructure:"kmsDriven"`
	AnnualKms       string `mapstructure:"annualKms"`
	PurchaseDate    string `mapstructure:"purchaseDate"`
	Ownership       string `mapstructure:"ownership"`
	WinterTires     bool   `mapstructure:"winterTires"`
}

type DrivingHistory struct {
	PresentInsurer       string `mapstructure:"presentInsurer"`
	ExpiryDate           string `mapstructure:"expiryDate"`
	YearsInsuredInCanada string `mapstructure:"yearsInsuredInCanada"`
	InsuranceCancelled   string `mapstructure:"insuranceCancelled"`
	PropertyInsurance    string `mapstructure:"propertyInsurance"`
	AtFaultAccidents     string `mapstructure:"atFaultAccidents"`
	NotAtFaultAccidents  string `mapstructure:"notAtFaultAccidents"`
	DrivingConvictions   string `mapstructure:"drivingConvictions"`
	LicenseSuspensions   string `mapstructure:"licenseSuspensions"`
	Notes                string `mapstructure:"notes"`
}

// Application is the typed view of an auto document.
type Application struct {
	GeneralInfo    GeneralInfo    `mapstructure:"generalInfo"`
	Drivers        []Driver       `mapstructure:"drivers"`
	Vehicles       []Vehicle      `mapstructure:"vehicles"`
	DrivingHistory DrivingHistory `mapstructure:"drivingHistory"`
}

// Decode converts a document into its typed view. Numeric values are read as text.
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
		return nil, fmt.Errorf("decode auto application: %w", err)
	}
	return &app, nil
}

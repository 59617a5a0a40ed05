package models

import "errors"

type EscalationType string

const (
	EscalationTypeMonthly   EscalationType = "Monthly"
	EscalationTypeQuarterly EscalationType = "Quarterly"
	EscalationTypeAnnual    EscalationType = "Annual"
)

func (t *EscalationType) UnmarshalJSON(b []byte) error {
	switch unquote(b) {
	case "", "Monthly":
		*t = EscalationTypeMonthly
	case "Quarterly":
		*t = EscalationTypeQuarterly
	case "Annual":
		*t = EscalationTypeAnnual
	default:
		return errors.New("invalid escalation type")
	}
	return nil
}

type VehicleType string

const (
	VehicleTypeTwoWheeler  VehicleType = "TwoWheeler"
	VehicleTypeFourWheeler VehicleType = "FourWheeler"
)

func (t *VehicleType) UnmarshalJSON(b []byte) error {
	switch unquote(b) {
	case "", "TwoWheeler":
		*t = VehicleTypeTwoWheeler
	case "FourWheeler":
		*t = VehicleTypeFourWheeler
	default:
		return errors.New("invalid vehicle type")
	}
	return nil
}

type ParkingBillingType string

const (
	ParkingBillingTypeFree ParkingBillingType = "Free"
	ParkingBillingTypePaid ParkingBillingType = "Paid"
)

func (t *ParkingBillingType) UnmarshalJSON(b []byte) error {
	switch unquote(b) {
	case "", "Free":
		*t = ParkingBillingTypeFree
	case "Paid":
		*t = ParkingBillingTypePaid
	default:
		return errors.New("invalid parking billing type")
	}
	return nil
}

type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "Monthly"
	BillingCycleQuarterly BillingCycle = "Quarterly"
	BillingCycleHalfYear  BillingCycle = "HalfYearly"
	BillingCycleAnnual    BillingCycle = "Annual"
	BillingCycleOneTime   BillingCycle = "OneTime"
)

func (t *BillingCycle) UnmarshalJSON(b []byte) error {
	switch unquote(b) {
	case "", "Monthly":
		*t = BillingCycleMonthly
	case "Quarterly":
		*t = BillingCycleQuarterly
	case "HalfYearly":
		*t = BillingCycleHalfYear
	case "Annual":
		*t = BillingCycleAnnual
	case "OneTime":
		*t = BillingCycleOneTime
	default:
		return errors.New("invalid billing cycle")
	}
	return nil
}

type PaymentMode string

const (
	PaymentModeCash        PaymentMode = "Cash"
	PaymentModeCheque      PaymentMode = "Cheque"
	PaymentModeNEFT        PaymentMode = "NEFT"
	PaymentModeUPI         PaymentMode = "UPI"
	PaymentModeAutoDebit   PaymentMode = "AutoDebit"
	PaymentModeBankDeposit PaymentMode = "BankDeposit"
)

type RentDueType string

const (
	RentDueTypeAdvance RentDueType = "Advance"
	RentDueTypeArrears RentDueType = "Arrears"
)

func (t *RentDueType) UnmarshalJSON(b []byte) error {
	switch unquote(b) {
	case "", "Advance":
		*t = RentDueTypeAdvance
	case "Arrears":
		*t = RentDueTypeArrears
	default:
		return errors.New("invalid rent due type")
	}
	return nil
}

type LeaseStatus string

const (
	LeaseStatusDraft      LeaseStatus = "Draft"
	LeaseStatusActive     LeaseStatus = "Active"
	LeaseStatusExpired    LeaseStatus = "Expired"
	LeaseStatusTerminated LeaseStatus = "Terminated"
)

type CustomFieldType string

const (
	CustomFieldTypeText    CustomFieldType = "text"
	CustomFieldTypeNumber  CustomFieldType = "number"
	CustomFieldTypeDate    CustomFieldType = "date"
	CustomFieldTypeBoolean CustomFieldType = "boolean"
)

type AuthorityType string

const (
	AuthorityTypeLandlord AuthorityType = "Landlord"
	AuthorityTypeLessee   AuthorityType = "Lessee"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "A"
	UserRoleOperator UserRole = "O"
	UserRoleViewer   UserRole = "V"
)

// strip surrounding quotes of a raw JSON string token
func unquote(b []byte) string {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

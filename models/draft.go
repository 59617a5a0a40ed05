package models

import (
	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// LeaseDraft is the editable working copy of one lease agreement. It is
// created empty for the new-lease flow or populated from a stored lease by
// DraftFromWire, mutated only through the Set* operations below, and rendered
// back to the wire shape by BuildWire. Derived money fields (BasicRent,
// GstAmount, TdsAmount) are never written directly; every input change
// recomputes its dependents before the next operation runs.
type LeaseDraft struct {
	LeaseId    int
	PropertyId int
	TenantId   int

	// dates travel as opaque strings; the lease store owns their semantics
	StartDate string
	EndDate   string

	Area        decimal.Decimal
	RatePerArea decimal.Decimal
	BasicRent   decimal.Decimal

	GstApplicable bool
	CgstPercent   decimal.Decimal
	SgstPercent   decimal.Decimal
	IgstPercent   decimal.Decimal
	GstAmount     decimal.Decimal

	TdsApplicable bool
	TdsPercent    decimal.Decimal
	TdsAmount     decimal.Decimal

	SecurityDeposit    decimal.Decimal
	MaintenanceCharges decimal.Decimal

	EscalationType     EscalationType
	EscalationInterval int
	EscalationPercent  decimal.Decimal

	// Penalty/interest percents are retained while disabled so re-enabling
	// restores the previous value.
	PenaltyApplicable  bool
	PenaltyPercent     decimal.Decimal
	InterestApplicable bool
	InterestPercent    decimal.Decimal

	RentDueDate int
	RentDueType RentDueType

	PurposeOfAgreement string
	StampDutySharing   string
	LockInMonths       int

	NoticeTerms NoticeTerms

	Parkings  SubCollection[NewParking]
	Services  SubCollection[NewAgreementService]
	Authority NewSigningAuthority

	CustomFields map[string]interface{}
}

// NewLeaseDraft returns an empty draft for the new-lease flow. The parking
// collection starts with one blank row; the screens never show an empty
// parking table.
func NewLeaseDraft() *LeaseDraft {
	d := &LeaseDraft{
		EscalationType:     EscalationTypeAnnual,
		EscalationInterval: 1,
		RentDueType:        RentDueTypeAdvance,
		CustomFields:       map[string]interface{}{},
	}
	d.Parkings.Add(NewParking{VehicleType: VehicleTypeFourWheeler, ParkingBillingType: ParkingBillingTypeFree})
	return d
}

// nonNegative coerces bad numeric input to zero. Invalid entries degrade to a
// zeroed derived value rather than an error (the UI shows the zero).
func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

func (d *LeaseDraft) SetArea(v decimal.Decimal) {
	d.Area = nonNegative(v)
	d.recomputeBasicRent()
}

func (d *LeaseDraft) SetRatePerArea(v decimal.Decimal) {
	d.RatePerArea = nonNegative(v)
	d.recomputeBasicRent()
}

func (d *LeaseDraft) recomputeBasicRent() {
	d.BasicRent = d.Area.Mul(d.RatePerArea)
	d.recomputeGst()
	d.recomputeTds()
}

// SetCgst sets the CGST percent and clears IGST: CGST/SGST and IGST are
// mutually exclusive, the later write always wins.
func (d *LeaseDraft) SetCgst(v decimal.Decimal) {
	d.CgstPercent = nonNegative(v)
	d.IgstPercent = decimal.Zero
	d.recomputeGst()
}

// SetSgst sets the SGST percent and clears IGST.
func (d *LeaseDraft) SetSgst(v decimal.Decimal) {
	d.SgstPercent = nonNegative(v)
	d.IgstPercent = decimal.Zero
	d.recomputeGst()
}

// SetIgst sets the IGST percent and clears both CGST and SGST.
func (d *LeaseDraft) SetIgst(v decimal.Decimal) {
	d.IgstPercent = nonNegative(v)
	d.CgstPercent = decimal.Zero
	d.SgstPercent = decimal.Zero
	d.recomputeGst()
}

// SetGstApplicable zeroes GstAmount when toggled off but keeps the percent
// fields, so toggling back on restores the previous amount.
func (d *LeaseDraft) SetGstApplicable(applicable bool) {
	d.GstApplicable = applicable
	d.recomputeGst()
}

func (d *LeaseDraft) recomputeGst() {
	if !d.GstApplicable {
		d.GstAmount = decimal.Zero
		return
	}
	// multiply first so sub-cent rents don't lose precision in the quotient
	totalPercent := d.CgstPercent.Add(d.SgstPercent).Add(d.IgstPercent)
	d.GstAmount = d.BasicRent.Mul(totalPercent).DivRound(decimalOneHundred, 4)
}

func (d *LeaseDraft) SetTdsPercent(v decimal.Decimal) {
	d.TdsPercent = nonNegative(v)
	d.recomputeTds()
}

func (d *LeaseDraft) SetTdsApplicable(applicable bool) {
	d.TdsApplicable = applicable
	d.recomputeTds()
}

func (d *LeaseDraft) recomputeTds() {
	if !d.TdsApplicable {
		d.TdsAmount = decimal.Zero
		return
	}
	d.TdsAmount = d.BasicRent.Mul(d.TdsPercent).DivRound(decimalOneHundred, 4)
}

func (d *LeaseDraft) SetSecurityDeposit(v decimal.Decimal) {
	d.SecurityDeposit = nonNegative(v)
}

func (d *LeaseDraft) SetMaintenanceCharges(v decimal.Decimal) {
	d.MaintenanceCharges = nonNegative(v)
}

// TotalMonthlyRent is derived on demand and never stored independently.
func (d *LeaseDraft) TotalMonthlyRent() decimal.Decimal {
	return d.BasicRent.Add(d.GstAmount).Sub(d.TdsAmount)
}

// ProjectedRent returns the rent after the next escalation step. Display
// only: the stored BasicRent is untouched, and no date arithmetic happens
// here (the lease store owns the escalation schedule).
func (d *LeaseDraft) ProjectedRent() decimal.Decimal {
	return d.BasicRent.Add(d.BasicRent.Mul(d.EscalationPercent).DivRound(decimalOneHundred, 4))
}

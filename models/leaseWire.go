package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// LeaseWire is the lease as the remote lease store sends and receives it.
// Money travels as fixed-point decimal strings so nothing downstream rounds
// through binary floats.
type LeaseWire struct {
	Id         int `json:"id,omitempty"`
	TenantId   int `json:"tenant_id"`
	PropertyId int `json:"property_id"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	Area        string `json:"area"`
	RatePerArea string `json:"rate_per_area"`
	BasicRent   string `json:"basic_rent"`
	MonthlyRent string `json:"monthly_rent"`

	GstApplicable  bool   `json:"gst_applicable"`
	CgstPercentage string `json:"cgst_percentage"`
	SgstPercentage string `json:"sgst_percentage"`
	IgstPercentage string `json:"igst_percentage"`
	GstAmount      string `json:"gst_amount"`

	TdsApplicable bool   `json:"tds_applicable"`
	TdsPercentage string `json:"tds_percentage"`
	TdsAmount     string `json:"tds_amount"`

	SecurityDeposit string `json:"security_deposit"`
	Charges         string `json:"charges"`

	AnnualEscalationPercentage string         `json:"annual_escalation_percentage"`
	EscalationType             EscalationType `json:"escalation_type"`
	EscalationInterval         int            `json:"escalation_interval"`

	PenaltyApplicable  bool   `json:"penalty_applicable"`
	PenaltyPercentage  string `json:"penalty_percentage"`
	InterestApplicable bool   `json:"interest_applicable"`
	InterestPercentage string `json:"interest_percentage"`

	RentDueDate int         `json:"rent_due_date"`
	RentDueType RentDueType `json:"rent_due_type"`

	PurposeOfAgreement string `json:"purpose_of_agreement"`
	StampDutySharing   string `json:"stamp_duty_sharing"`
	LockInMonths       int    `json:"lock_in_months"`

	NoticeTerms NoticeTerms `json:"notice_terms"`

	SigningAuthorities []NewSigningAuthority `json:"signing_authorities_attributes"`
	Parkings           []NewParking          `json:"parkings_attributes"`
	AgreementServices  []NewAgreementService `json:"agreement_services_attributes"`

	CustomFields map[string]interface{} `json:"custom_fields,omitempty"`

	// present only when a new file was attached this session
	Documents []NewLeaseDocument `json:"documents,omitempty"`
}

type NewLeaseDocument struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	Base64Data   string `json:"base64_data"`
}

// parseWireDecimal parses a wire money/percent string, degrading to zero on
// anything unparseable. The store occasionally sends numerics as "" or null.
func parseWireDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// DraftFromWire hydrates an editable draft from a stored lease. Every wire
// sub-collection seeds a fresh tracker with an empty removed set, and the
// derived money fields are re-run through the draft calculators rather than
// trusted from the record.
func DraftFromWire(w *LeaseWire) *LeaseDraft {
	d := &LeaseDraft{
		LeaseId:            w.Id,
		PropertyId:         w.PropertyId,
		TenantId:           w.TenantId,
		StartDate:          w.StartDate,
		EndDate:            w.EndDate,
		GstApplicable:      w.GstApplicable,
		TdsApplicable:      w.TdsApplicable,
		TdsPercent:         nonNegative(parseWireDecimal(w.TdsPercentage)),
		SecurityDeposit:    nonNegative(parseWireDecimal(w.SecurityDeposit)),
		MaintenanceCharges: nonNegative(parseWireDecimal(w.Charges)),
		EscalationType:     w.EscalationType,
		EscalationInterval: w.EscalationInterval,
		EscalationPercent:  nonNegative(parseWireDecimal(w.AnnualEscalationPercentage)),
		PenaltyApplicable:  w.PenaltyApplicable,
		PenaltyPercent:     nonNegative(parseWireDecimal(w.PenaltyPercentage)),
		InterestApplicable: w.InterestApplicable,
		InterestPercent:    nonNegative(parseWireDecimal(w.InterestPercentage)),
		RentDueDate:        w.RentDueDate,
		RentDueType:        w.RentDueType,
		PurposeOfAgreement: w.PurposeOfAgreement,
		StampDutySharing:   w.StampDutySharing,
		LockInMonths:       w.LockInMonths,
		NoticeTerms:        w.NoticeTerms,
		CustomFields:       map[string]interface{}{},
	}
	if d.EscalationInterval < 1 {
		d.EscalationInterval = 1
	}

	// tax percents: a stored record should never carry both sides, but if it
	// does, IGST wins and the intra-state pair is cleared
	d.CgstPercent = nonNegative(parseWireDecimal(w.CgstPercentage))
	d.SgstPercent = nonNegative(parseWireDecimal(w.SgstPercentage))
	d.IgstPercent = nonNegative(parseWireDecimal(w.IgstPercentage))
	if d.IgstPercent.IsPositive() {
		d.CgstPercent = decimal.Zero
		d.SgstPercent = decimal.Zero
	}

	for k, v := range w.CustomFields {
		d.CustomFields[k] = v
	}

	d.Parkings.Seed(w.Parkings)
	d.Services.Seed(w.AgreementServices)
	if len(w.SigningAuthorities) > 0 {
		d.Authority = w.SigningAuthorities[0]
	}

	// recompute BasicRent, GstAmount and TdsAmount from the primitives
	d.Area = nonNegative(parseWireDecimal(w.Area))
	d.SetRatePerArea(parseWireDecimal(w.RatePerArea))

	return d
}

type BuildMode int

const (
	BuildModeCreate BuildMode = iota
	BuildModeUpdate
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	tenDigitPattern = regexp.MustCompile(`^[0-9]{10}$`)

	ErrInvalidAuthorityEmail = errors.New("signing authority email is not a valid email address")
	ErrInvalidAuthorityPhone = errors.New("signing authority phone must be exactly 10 digits")
)

// BuildWire renders the draft to the wire shape. Validation runs first and
// fails before any payload exists: a non-empty authority email must look like
// an email, a non-empty authority phone must be exactly 10 digits. Both are
// advisory client-side checks; the lease store may be stricter.
//
// Create mode omits the lease id, all sub-entity ids and all destroy
// markers. Update mode carries the lease id, the authority's id (so the
// store updates in place instead of duplicating) and the destroy markers
// accumulated by the trackers.
func (d *LeaseDraft) BuildWire(mode BuildMode) (*LeaseWire, error) {
	if email := strings.TrimSpace(d.Authority.Email); email != "" && !emailPattern.MatchString(email) {
		return nil, ErrInvalidAuthorityEmail
	}
	if phone := strings.TrimSpace(d.Authority.PhoneNumber); phone != "" && !tenDigitPattern.MatchString(phone) {
		return nil, ErrInvalidAuthorityPhone
	}

	w := &LeaseWire{
		TenantId:   d.TenantId,
		PropertyId: d.PropertyId,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,

		Area:        d.Area.StringFixed(2),
		RatePerArea: d.RatePerArea.StringFixed(2),
		BasicRent:   d.BasicRent.StringFixed(2),
		MonthlyRent: d.TotalMonthlyRent().StringFixed(2),

		GstApplicable:  d.GstApplicable,
		CgstPercentage: d.CgstPercent.StringFixed(2),
		SgstPercentage: d.SgstPercent.StringFixed(2),
		IgstPercentage: d.IgstPercent.StringFixed(2),
		GstAmount:      d.GstAmount.StringFixed(2),

		TdsApplicable: d.TdsApplicable,
		TdsPercentage: d.TdsPercent.StringFixed(2),
		TdsAmount:     d.TdsAmount.StringFixed(2),

		SecurityDeposit: d.SecurityDeposit.StringFixed(2),
		Charges:         d.MaintenanceCharges.StringFixed(2),

		AnnualEscalationPercentage: d.EscalationPercent.StringFixed(2),
		EscalationType:             d.EscalationType,
		EscalationInterval:         d.EscalationInterval,

		PenaltyApplicable:  d.PenaltyApplicable,
		PenaltyPercentage:  d.PenaltyPercent.StringFixed(2),
		InterestApplicable: d.InterestApplicable,
		InterestPercentage: d.InterestPercent.StringFixed(2),

		RentDueDate: d.RentDueDate,
		RentDueType: d.RentDueType,

		PurposeOfAgreement: d.PurposeOfAgreement,
		StampDutySharing:   d.StampDutySharing,
		LockInMonths:       d.LockInMonths,

		NoticeTerms: d.NoticeTerms,
	}

	// unknown custom-field keys pass through untouched
	if len(d.CustomFields) > 0 {
		w.CustomFields = map[string]interface{}{}
		for k, v := range d.CustomFields {
			w.CustomFields[k] = v
		}
	}

	authority := d.Authority
	w.Parkings = d.Parkings.WirePayload()
	w.AgreementServices = d.Services.WirePayload()

	if mode == BuildModeUpdate {
		w.Id = d.LeaseId
	} else {
		authority.Id = 0
		w.Parkings = stripIdentities(w.Parkings)
		w.AgreementServices = stripIdentities(w.AgreementServices)
	}
	w.SigningAuthorities = []NewSigningAuthority{authority}

	return w, nil
}

// stripIdentities drops destroy markers and zeroes ids for a create payload.
func stripIdentities[T Identifier](entries []T) []T {
	var out []T
	for _, e := range entries {
		if del, ok := any(e).(interface{ IsDeleted() bool }); ok && del.IsDeleted() {
			continue
		}
		if s, ok := any(&e).(interface{ SetId(int) }); ok {
			s.SetId(0)
		}
		out = append(out, e)
	}
	return out
}

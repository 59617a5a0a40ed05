package models_test

import (
	"testing"

	"github.com/helloakshay27/rental_backend/models"
)

func storedWire() *models.LeaseWire {
	return &models.LeaseWire{
		Id:          42,
		TenantId:    7,
		PropertyId:  3,
		StartDate:   "2026-04-01",
		EndDate:     "2029-03-31",
		Area:        "1000",
		RatePerArea: "100",
		// stale derived values: the draft must recompute, not trust them
		BasicRent:      "1",
		GstAmount:      "1",
		TdsAmount:      "1",
		GstApplicable:  true,
		CgstPercentage: "9",
		SgstPercentage: "9",
		TdsApplicable:  true,
		TdsPercentage:  "10",
		Parkings: []models.NewParking{
			{HasId: models.HasId{Id: 101}, VehicleType: models.VehicleTypeFourWheeler, Count: 2},
		},
		SigningAuthorities: []models.NewSigningAuthority{
			{HasId: models.HasId{Id: 201}, Name: "R Mehta", Email: "r.mehta@example.com", PhoneNumber: "9876543210"},
		},
	}
}

func TestDraftFromWireRecomputesDerivedMoney(t *testing.T) {
	d := models.DraftFromWire(storedWire())

	assertDecimal(t, d.BasicRent, "100000", "BasicRent")
	assertDecimal(t, d.GstAmount, "18000", "GstAmount")
	assertDecimal(t, d.TdsAmount, "10000", "TdsAmount")
}

func TestDraftFromWireUnparseableNumbersFallBackToZero(t *testing.T) {
	w := storedWire()
	w.Area = "not-a-number"
	w.RatePerArea = ""
	w.TdsPercentage = "  "

	d := models.DraftFromWire(w)
	assertDecimal(t, d.Area, "0", "Area")
	assertDecimal(t, d.RatePerArea, "0", "RatePerArea")
	assertDecimal(t, d.BasicRent, "0", "BasicRent")
	assertDecimal(t, d.TdsPercent, "0", "TdsPercent")
}

func TestDraftFromWireIgstWinsConflict(t *testing.T) {
	w := storedWire()
	w.CgstPercentage = "9"
	w.SgstPercentage = "9"
	w.IgstPercentage = "18"

	d := models.DraftFromWire(w)
	assertDecimal(t, d.IgstPercent, "18", "IgstPercent")
	assertDecimal(t, d.CgstPercent, "0", "CgstPercent")
	assertDecimal(t, d.SgstPercent, "0", "SgstPercent")
	assertDecimal(t, d.GstAmount, "18000", "GstAmount")
}

func TestBuildWireCreateStripsIdentities(t *testing.T) {
	d := models.DraftFromWire(storedWire())
	d.Parkings.RemoveAt(0)
	d.Parkings.Add(models.NewParking{VehicleType: models.VehicleTypeTwoWheeler, Count: 1})

	w, err := d.BuildWire(models.BuildModeCreate)
	if err != nil {
		t.Fatalf("BuildWire: %v", err)
	}
	if w.Id != 0 {
		t.Errorf("create payload carries lease id %d", w.Id)
	}
	// destroy markers must not appear in a create payload
	for _, p := range w.Parkings {
		if p.IsDeleted() {
			t.Error("create payload carries a destroy marker")
		}
		if p.GetId() != 0 {
			t.Errorf("create payload carries parking id %d", p.GetId())
		}
	}
	if len(w.SigningAuthorities) != 1 || w.SigningAuthorities[0].Id != 0 {
		t.Errorf("create payload authority = %+v, want single entry with id 0", w.SigningAuthorities)
	}
}

func TestBuildWireUpdateKeepsIdentitiesAndMarkers(t *testing.T) {
	d := models.DraftFromWire(storedWire())
	d.Parkings.RemoveAt(0)

	w, err := d.BuildWire(models.BuildModeUpdate)
	if err != nil {
		t.Fatalf("BuildWire: %v", err)
	}
	if w.Id != 42 {
		t.Errorf("update payload lease id = %d, want 42", w.Id)
	}
	if len(w.Parkings) != 1 {
		t.Fatalf("payload parkings = %d entries, want 1", len(w.Parkings))
	}
	marker := w.Parkings[0]
	if marker.GetId() != 101 || !marker.IsDeleted() {
		t.Errorf("marker = id %d deleted %v, want id 101 deleted", marker.GetId(), marker.IsDeleted())
	}
	if len(w.SigningAuthorities) != 1 || w.SigningAuthorities[0].Id != 201 {
		t.Errorf("update payload authority = %+v, want id 201 kept", w.SigningAuthorities)
	}
}

func TestBuildWireRejectsBadAuthorityContact(t *testing.T) {
	d := models.DraftFromWire(storedWire())
	d.Authority.Email = "not-an-email"
	if _, err := d.BuildWire(models.BuildModeUpdate); err != models.ErrInvalidAuthorityEmail {
		t.Fatalf("err = %v, want ErrInvalidAuthorityEmail", err)
	}

	d = models.DraftFromWire(storedWire())
	d.Authority.PhoneNumber = "12345"
	if _, err := d.BuildWire(models.BuildModeUpdate); err != models.ErrInvalidAuthorityPhone {
		t.Fatalf("err = %v, want ErrInvalidAuthorityPhone", err)
	}

	// empty contact details are fine; the store may still enforce its own rules
	d = models.DraftFromWire(storedWire())
	d.Authority.Email = ""
	d.Authority.PhoneNumber = ""
	if _, err := d.BuildWire(models.BuildModeUpdate); err != nil {
		t.Fatalf("BuildWire with empty contacts: %v", err)
	}
}

func TestWireRoundTripPreservesPassthroughFields(t *testing.T) {
	w := storedWire()
	w.NoticeTerms = models.NoticeTerms{
		FromLandlordDays:        90,
		FromVilDays:             60,
		TerminationRightsLessee: "after lock-in",
		HandoverCondition:       "bare shell",
		RentArea:                "carpet",
		PropertyType:            "commercial",
	}
	w.PenaltyApplicable = true
	w.PenaltyPercentage = "2"
	w.InterestPercentage = "1.5"
	w.RentDueDate = 5
	w.RentDueType = models.RentDueTypeArrears
	w.PurposeOfAgreement = "office space"
	w.LockInMonths = 36
	w.CustomFields = map[string]interface{}{
		"fit_out_period": "90 days",
		"unknown_key":    "kept verbatim",
	}

	out, err := models.DraftFromWire(w).BuildWire(models.BuildModeUpdate)
	if err != nil {
		t.Fatalf("BuildWire: %v", err)
	}

	if out.StartDate != w.StartDate || out.EndDate != w.EndDate {
		t.Errorf("dates changed: %q..%q", out.StartDate, out.EndDate)
	}
	if out.NoticeTerms != w.NoticeTerms {
		t.Errorf("notice terms changed: %+v", out.NoticeTerms)
	}
	if !out.PenaltyApplicable || out.PenaltyPercentage != "2.00" {
		t.Errorf("penalty = %v %q", out.PenaltyApplicable, out.PenaltyPercentage)
	}
	// interest percent survives even while the toggle is off
	if out.InterestApplicable || out.InterestPercentage != "1.50" {
		t.Errorf("interest = %v %q", out.InterestApplicable, out.InterestPercentage)
	}
	if out.RentDueDate != 5 || out.RentDueType != models.RentDueTypeArrears {
		t.Errorf("rent due = %d %q", out.RentDueDate, out.RentDueType)
	}
	if out.PurposeOfAgreement != "office space" || out.LockInMonths != 36 {
		t.Errorf("agreement terms changed")
	}
	if out.CustomFields["unknown_key"] != "kept verbatim" {
		t.Errorf("unknown custom field not preserved: %v", out.CustomFields)
	}
	if len(out.Parkings) != 1 || out.Parkings[0].GetId() != 101 {
		t.Errorf("parkings = %+v", out.Parkings)
	}
}

func TestMaximalRoundTripCarriesAgreementServices(t *testing.T) {
	w := storedWire()
	w.AgreementServices = []models.NewAgreementService{
		{
			HasId:              models.HasId{Id: 301},
			ServiceType:        "Housekeeping",
			Deposit:            dec("50000"),
			FixedMonthlyCharge: dec("12000"),
			BillingCycle:       models.BillingCycleMonthly,
			DueDate:            5,
			PaymentMode:        models.PaymentModeNEFT,
			ContactName:        "S Rao",
		},
		{
			HasId:        models.HasId{Id: 302},
			ServiceType:  "Generator",
			RatePerSqft:  dec("3.50"),
			BillingCycle: models.BillingCycleQuarterly,
			DueDate:      15,
			PaymentMode:  models.PaymentModeAutoDebit,
		},
	}

	d := models.DraftFromWire(w)
	if d.Services.Len() != 2 {
		t.Fatalf("Services.Len() = %d, want 2", d.Services.Len())
	}
	d.Services.RemoveAt(1)
	d.Services.Add(models.NewAgreementService{
		ServiceType:  "Water",
		BillingCycle: models.BillingCycleMonthly,
		DueDate:      1,
	})

	out, err := d.BuildWire(models.BuildModeUpdate)
	if err != nil {
		t.Fatalf("BuildWire: %v", err)
	}
	if len(out.AgreementServices) != 3 {
		t.Fatalf("services payload = %d entries, want 3", len(out.AgreementServices))
	}
	kept := out.AgreementServices[0]
	if kept.GetId() != 301 || kept.ServiceType != "Housekeeping" ||
		!kept.Deposit.Equal(dec("50000")) || kept.DueDate != 5 ||
		kept.PaymentMode != models.PaymentModeNEFT || kept.ContactName != "S Rao" {
		t.Errorf("kept service changed: %+v", kept)
	}
	added := out.AgreementServices[1]
	if added.GetId() != 0 || added.ServiceType != "Water" || added.IsDeleted() {
		t.Errorf("added service = %+v", added)
	}
	marker := out.AgreementServices[2]
	if marker.GetId() != 302 || !marker.IsDeleted() {
		t.Errorf("marker = id %d deleted %v, want id 302 deleted", marker.GetId(), marker.IsDeleted())
	}

	// create mode strips service identities and markers too
	out, err = d.BuildWire(models.BuildModeCreate)
	if err != nil {
		t.Fatalf("BuildWire create: %v", err)
	}
	if len(out.AgreementServices) != 2 {
		t.Fatalf("create services payload = %d entries, want 2", len(out.AgreementServices))
	}
	for _, s := range out.AgreementServices {
		if s.GetId() != 0 || s.IsDeleted() {
			t.Errorf("create payload service = id %d deleted %v", s.GetId(), s.IsDeleted())
		}
	}
}

func TestBuildWireRendersFixedPointStrings(t *testing.T) {
	d := models.DraftFromWire(storedWire())

	w, err := d.BuildWire(models.BuildModeUpdate)
	if err != nil {
		t.Fatalf("BuildWire: %v", err)
	}
	if w.BasicRent != "100000.00" {
		t.Errorf("BasicRent = %q, want \"100000.00\"", w.BasicRent)
	}
	if w.GstAmount != "18000.00" {
		t.Errorf("GstAmount = %q, want \"18000.00\"", w.GstAmount)
	}
	if w.MonthlyRent != "108000.00" {
		t.Errorf("MonthlyRent = %q, want \"108000.00\"", w.MonthlyRent)
	}
	if w.CgstPercentage != "9.00" {
		t.Errorf("CgstPercentage = %q, want \"9.00\"", w.CgstPercentage)
	}
}

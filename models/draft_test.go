package models_test

import (
	"testing"

	"github.com/helloakshay27/rental_backend/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", label, got.String(), want)
	}
}

func TestBasicRentDerivation(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("1200"))
	d.SetRatePerArea(dec("45.50"))

	assertDecimal(t, d.BasicRent, "54600", "BasicRent")

	// rate change recomputes
	d.SetRatePerArea(dec("50"))
	assertDecimal(t, d.BasicRent, "60000", "BasicRent after rate change")
}

func TestNegativeInputsCoerceToZero(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("-500"))
	d.SetRatePerArea(dec("45"))

	assertDecimal(t, d.Area, "0", "Area")
	assertDecimal(t, d.BasicRent, "0", "BasicRent")

	d.SetArea(dec("100"))
	d.SetRatePerArea(dec("-45"))
	assertDecimal(t, d.RatePerArea, "0", "RatePerArea")
	assertDecimal(t, d.BasicRent, "0", "BasicRent with negative rate")

	d.SetSecurityDeposit(dec("-1"))
	assertDecimal(t, d.SecurityDeposit, "0", "SecurityDeposit")
}

func TestGstIntraStateClearsIgst(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("1000"))
	d.SetRatePerArea(dec("100"))
	d.SetGstApplicable(true)

	d.SetIgst(dec("18"))
	assertDecimal(t, d.GstAmount, "18000", "GstAmount with IGST")

	// writing CGST clears IGST
	d.SetCgst(dec("9"))
	assertDecimal(t, d.IgstPercent, "0", "IgstPercent after SetCgst")
	assertDecimal(t, d.GstAmount, "9000", "GstAmount after SetCgst")

	d.SetSgst(dec("9"))
	assertDecimal(t, d.GstAmount, "18000", "GstAmount with CGST+SGST")
}

func TestGstInterStateClearsIntraStatePair(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("1000"))
	d.SetRatePerArea(dec("100"))
	d.SetGstApplicable(true)

	d.SetCgst(dec("9"))
	d.SetSgst(dec("9"))
	d.SetIgst(dec("18"))

	assertDecimal(t, d.CgstPercent, "0", "CgstPercent after SetIgst")
	assertDecimal(t, d.SgstPercent, "0", "SgstPercent after SetIgst")
	assertDecimal(t, d.GstAmount, "18000", "GstAmount")
}

func TestGstToggleRetainsPercents(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("1000"))
	d.SetRatePerArea(dec("100"))
	d.SetGstApplicable(true)
	d.SetCgst(dec("9"))
	d.SetSgst(dec("9"))

	d.SetGstApplicable(false)
	assertDecimal(t, d.GstAmount, "0", "GstAmount while disabled")
	assertDecimal(t, d.CgstPercent, "9", "CgstPercent while disabled")
	assertDecimal(t, d.SgstPercent, "9", "SgstPercent while disabled")

	d.SetGstApplicable(true)
	assertDecimal(t, d.GstAmount, "18000", "GstAmount after re-enable")
}

func TestTdsAmount(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("1000"))
	d.SetRatePerArea(dec("100"))

	d.SetTdsPercent(dec("10"))
	assertDecimal(t, d.TdsAmount, "0", "TdsAmount while not applicable")

	d.SetTdsApplicable(true)
	assertDecimal(t, d.TdsAmount, "10000", "TdsAmount")

	d.SetTdsApplicable(false)
	assertDecimal(t, d.TdsAmount, "0", "TdsAmount after disable")
	assertDecimal(t, d.TdsPercent, "10", "TdsPercent retained")
}

func TestTotalMonthlyRent(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("1000"))
	d.SetRatePerArea(dec("100"))
	d.SetGstApplicable(true)
	d.SetIgst(dec("18"))
	d.SetTdsApplicable(true)
	d.SetTdsPercent(dec("10"))

	// 100000 + 18000 - 10000
	assertDecimal(t, d.TotalMonthlyRent(), "108000", "TotalMonthlyRent")
}

func TestSubCentRentKeepsTaxPrecision(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("0.25"))
	d.SetRatePerArea(dec("0.25"))
	d.SetGstApplicable(true)
	d.SetIgst(dec("18"))
	d.SetTdsApplicable(true)
	d.SetTdsPercent(dec("10"))

	assertDecimal(t, d.BasicRent, "0.0625", "BasicRent")
	// 0.0625 × 18 / 100 = 0.01125, rounded at the final step only
	assertDecimal(t, d.GstAmount, "0.0113", "GstAmount")
	// 0.0625 × 10 / 100 = 0.00625
	assertDecimal(t, d.TdsAmount, "0.0063", "TdsAmount")
}

func TestLargeLeaseDerivation(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("30000"))
	d.SetRatePerArea(dec("50"))
	d.SetGstApplicable(true)
	d.SetCgst(dec("9"))
	d.SetSgst(dec("9"))
	d.SetTdsApplicable(true)
	d.SetTdsPercent(dec("10"))

	assertDecimal(t, d.BasicRent, "1500000", "BasicRent")
	assertDecimal(t, d.GstAmount, "270000", "GstAmount")
	assertDecimal(t, d.TdsAmount, "150000", "TdsAmount")
	assertDecimal(t, d.TotalMonthlyRent(), "1620000", "TotalMonthlyRent")
}

func TestProjectedRentLeavesBasicRentUntouched(t *testing.T) {
	d := models.NewLeaseDraft()
	d.SetArea(dec("1000"))
	d.SetRatePerArea(dec("100"))
	d.EscalationPercent = dec("5")

	assertDecimal(t, d.ProjectedRent(), "105000", "ProjectedRent")
	assertDecimal(t, d.BasicRent, "100000", "BasicRent after projection")
}

func TestNewDraftSeedsOneParkingRow(t *testing.T) {
	d := models.NewLeaseDraft()
	if d.Parkings.Len() != 1 {
		t.Fatalf("Parkings.Len() = %d, want 1", d.Parkings.Len())
	}
	p, ok := d.Parkings.At(0)
	if !ok {
		t.Fatal("Parkings.At(0) not found")
	}
	if p.VehicleType != models.VehicleTypeFourWheeler {
		t.Errorf("seed parking vehicle type = %q", p.VehicleType)
	}
	if p.ParkingBillingType != models.ParkingBillingTypeFree {
		t.Errorf("seed parking billing type = %q", p.ParkingBillingType)
	}
}

package models_test

import (
	"testing"

	"github.com/helloakshay27/rental_backend/models"
	"github.com/shopspring/decimal"
)

func validServiceInput() models.NewAgreementService {
	return models.NewAgreementService{
		ServiceType:        "Housekeeping",
		Deposit:            dec("50000"),
		FixedMonthlyCharge: dec("12000"),
		BillingCycle:       models.BillingCycleMonthly,
		DueDate:            5,
		PaymentMode:        models.PaymentModeNEFT,
		ContactName:        "S Rao",
		ContactPhone:       "9876501234",
	}
}

func TestServiceDueDateRange(t *testing.T) {
	for _, dueDate := range []int{0, 32, -3} {
		input := validServiceInput()
		input.DueDate = dueDate
		if _, err := input.Fillable(); err == nil {
			t.Errorf("Fillable() accepted due date %d", dueDate)
		}
		if _, err := input.MapInput(7); err == nil {
			t.Errorf("MapInput() accepted due date %d", dueDate)
		}
	}

	for _, dueDate := range []int{1, 15, 31} {
		input := validServiceInput()
		input.DueDate = dueDate
		if _, err := input.Fillable(); err != nil {
			t.Errorf("Fillable() rejected due date %d: %v", dueDate, err)
		}
		if _, err := input.MapInput(7); err != nil {
			t.Errorf("MapInput() rejected due date %d: %v", dueDate, err)
		}
	}
}

func TestServiceDestroyMarkerSkipsValidation(t *testing.T) {
	input := models.NewAgreementService{HasId: models.HasId{Id: 302}}
	input.MarkDestroyed()
	if _, err := input.Fillable(); err != nil {
		t.Fatalf("Fillable() on destroy marker: %v", err)
	}
}

func TestServiceMapInputNormalizesMoney(t *testing.T) {
	input := validServiceInput()
	input.Deposit = dec("-50000")
	input.RatePerSqft = dec("-3.50")

	svc, err := input.MapInput(7)
	if err != nil {
		t.Fatalf("MapInput: %v", err)
	}
	if svc.LeaseId != 7 {
		t.Errorf("LeaseId = %d, want 7", svc.LeaseId)
	}
	if !svc.Deposit.Equal(decimal.Zero) || !svc.RatePerSqft.Equal(decimal.Zero) {
		t.Errorf("negative money not zeroed: deposit %s rate %s", svc.Deposit, svc.RatePerSqft)
	}
	if !svc.FixedMonthlyCharge.Equal(dec("12000")) {
		t.Errorf("FixedMonthlyCharge = %s, want 12000", svc.FixedMonthlyCharge)
	}
}

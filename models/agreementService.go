package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AgreementService is an ancillary billable service attached to the lease
// (utilities, housekeeping, amenities) with its own billing cycle.
type AgreementService struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	LeaseId            int             `gorm:"index;not null" json:"lease_id"`
	ServiceType        string          `gorm:"size:100;not null" json:"service_type"`
	Deposit            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"deposit"`
	FixedMonthlyCharge decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"fixed_monthly_charge"`
	RatePerSqft        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate_per_sqft"`
	BillingCycle       BillingCycle    `gorm:"type:enum('Monthly','Quarterly','HalfYearly','Annual','OneTime');default:'Monthly'" json:"billing_cycle"`
	DueDate            int             `gorm:"default:1" json:"due_date"`
	PaymentMode        PaymentMode     `gorm:"size:20" json:"payment_mode"`
	ContactName        string          `gorm:"size:100" json:"contact_name"`
	ContactPhone       string          `gorm:"size:20" json:"contact_phone"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewAgreementService struct {
	HasId
	HasDestroy
	ServiceType        string          `json:"service_type"`
	Deposit            decimal.Decimal `json:"deposit"`
	FixedMonthlyCharge decimal.Decimal `json:"fixed_monthly_charge"`
	RatePerSqft        decimal.Decimal `json:"rate_per_sqft"`
	BillingCycle       BillingCycle    `json:"billing_cycle"`
	DueDate            int             `json:"due_date"`
	PaymentMode        PaymentMode     `json:"payment_mode"`
	ContactName        string          `json:"contact_name"`
	ContactPhone       string          `json:"contact_phone"`
}

func (s *AgreementService) Store(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (s *AgreementService) Delete(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Delete(s).Error
}

func (s *AgreementService) Update(tx *gorm.DB, ctx context.Context, fillable map[string]interface{}) error {
	return tx.WithContext(ctx).Model(s).Updates(fillable).Error
}

func (i NewAgreementService) validate() error {
	if i.IsDeleted() {
		return nil
	}
	if i.DueDate < 1 || i.DueDate > 31 {
		return errors.New("service due date must be between 1 and 31")
	}
	return nil
}

func (i NewAgreementService) Fillable() (map[string]interface{}, error) {
	if err := i.validate(); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"ServiceType":        i.ServiceType,
		"Deposit":            nonNegative(i.Deposit),
		"FixedMonthlyCharge": nonNegative(i.FixedMonthlyCharge),
		"RatePerSqft":        nonNegative(i.RatePerSqft),
		"BillingCycle":       i.BillingCycle,
		"DueDate":            i.DueDate,
		"PaymentMode":        i.PaymentMode,
		"ContactName":        i.ContactName,
		"ContactPhone":       i.ContactPhone,
	}, nil
}

func (i NewAgreementService) MapInput(leaseId int) (*AgreementService, error) {
	if err := i.validate(); err != nil {
		return nil, err
	}
	return &AgreementService{
		LeaseId:            leaseId,
		ServiceType:        i.ServiceType,
		Deposit:            nonNegative(i.Deposit),
		FixedMonthlyCharge: nonNegative(i.FixedMonthlyCharge),
		RatePerSqft:        nonNegative(i.RatePerSqft),
		BillingCycle:       i.BillingCycle,
		DueDate:            i.DueDate,
		PaymentMode:        i.PaymentMode,
		ContactName:        i.ContactName,
		ContactPhone:       i.ContactPhone,
	}, nil
}

func mapServiceInputs(services []AgreementService) []NewAgreementService {
	var inputs []NewAgreementService
	for _, s := range services {
		inputs = append(inputs, NewAgreementService{
			HasId:              HasId{Id: s.ID},
			ServiceType:        s.ServiceType,
			Deposit:            s.Deposit,
			FixedMonthlyCharge: s.FixedMonthlyCharge,
			RatePerSqft:        s.RatePerSqft,
			BillingCycle:       s.BillingCycle,
			DueDate:            s.DueDate,
			PaymentMode:        s.PaymentMode,
			ContactName:        s.ContactName,
			ContactPhone:       s.ContactPhone,
		})
	}
	return inputs
}

package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Parking struct {
	ID                 int                `gorm:"primary_key" json:"id"`
	LeaseId            int                `gorm:"index;not null" json:"lease_id"`
	VehicleType        VehicleType        `gorm:"type:enum('TwoWheeler','FourWheeler');default:'FourWheeler'" json:"vehicle_type"`
	ParkingBillingType ParkingBillingType `gorm:"type:enum('Free','Paid');default:'Free'" json:"parking_type"`
	Count              int                `gorm:"default:0" json:"count"`
	Charge             decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"charge"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewParking struct {
	HasId
	HasDestroy
	VehicleType        VehicleType        `json:"vehicle_type"`
	ParkingBillingType ParkingBillingType `json:"parking_type"`
	Count              int                `json:"count"`
	Charge             decimal.Decimal    `json:"charge"`
}

func (p *Parking) Store(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (p *Parking) Delete(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Delete(p).Error
}

func (p *Parking) Update(tx *gorm.DB, ctx context.Context, fillable map[string]interface{}) error {
	return tx.WithContext(ctx).Model(p).Updates(fillable).Error
}

func (i NewParking) Fillable() (map[string]interface{}, error) {
	return map[string]interface{}{
		"VehicleType":        i.VehicleType,
		"ParkingBillingType": i.ParkingBillingType,
		"Count":              i.normalizedCount(),
		"Charge":             i.normalizedCharge(),
	}, nil
}

func (i NewParking) MapInput(leaseId int) (*Parking, error) {
	return &Parking{
		LeaseId:            leaseId,
		VehicleType:        i.VehicleType,
		ParkingBillingType: i.ParkingBillingType,
		Count:              i.normalizedCount(),
		Charge:             i.normalizedCharge(),
	}, nil
}

func (i NewParking) normalizedCount() int {
	if i.Count < 0 {
		return 0
	}
	return i.Count
}

// charge has no meaning on a free allocation
func (i NewParking) normalizedCharge() decimal.Decimal {
	if i.ParkingBillingType != ParkingBillingTypePaid {
		return decimal.Zero
	}
	return nonNegative(i.Charge)
}

// convert persisted rows back to editable inputs
func mapParkingInputs(parkings []Parking) []NewParking {
	var inputs []NewParking
	for _, p := range parkings {
		inputs = append(inputs, NewParking{
			HasId:              HasId{Id: p.ID},
			VehicleType:        p.VehicleType,
			ParkingBillingType: p.ParkingBillingType,
			Count:              p.Count,
			Charge:             p.Charge,
		})
	}
	return inputs
}

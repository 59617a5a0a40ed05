package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/helloakshay27/rental_backend/config"
	"github.com/helloakshay27/rental_backend/utils"
	"github.com/shopspring/decimal"
)

type Property struct {
	ID           int             `gorm:"primary_key" json:"id"`
	BusinessId   string          `gorm:"index;not null" json:"business_id"`
	Name         string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Address      string          `gorm:"type:text" json:"address"`
	City         string          `gorm:"size:100" json:"city"`
	State        string          `gorm:"size:100" json:"state"`
	PinCode      string          `gorm:"size:10" json:"pin_code"`
	PropertyType string          `gorm:"size:100" json:"property_type"`
	CarpetArea   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"carpet_area"`
	IsActive     *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p Property) GetId() int {
	return p.ID
}

func (p Property) GetBusinessId() string {
	return p.BusinessId
}

type NewProperty struct {
	Name         string          `json:"name" binding:"required"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	PinCode      string          `json:"pin_code"`
	PropertyType string          `json:"property_type"`
	CarpetArea   decimal.Decimal `json:"carpet_area"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProperty) validate(ctx context.Context, businessId string, id int) error {
	return utils.ValidateUnique[Property](ctx, businessId, "name", input.Name, id)
}

func CreateProperty(ctx context.Context, input *NewProperty) (*Property, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	property := Property{
		BusinessId:   businessId,
		Name:         input.Name,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		PinCode:      input.PinCode,
		PropertyType: input.PropertyType,
		CarpetArea:   input.CarpetArea,
		IsActive:     utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&property).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("PropertyList:" + businessId); err != nil {
		return nil, err
	}
	return &property, nil
}

func UpdateProperty(ctx context.Context, id int, input *NewProperty) (*Property, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	property, err := utils.FetchModel[Property](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&property).Updates(map[string]interface{}{
		"Name":         input.Name,
		"Address":      input.Address,
		"City":         input.City,
		"State":        input.State,
		"PinCode":      input.PinCode,
		"PropertyType": input.PropertyType,
		"CarpetArea":   input.CarpetArea,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("Property:"+fmt.Sprint(id), "PropertyList:"+businessId); err != nil {
		return nil, err
	}
	return property, nil
}

func DeleteProperty(ctx context.Context, id int) (*Property, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Property](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	// refuse while agreements still point at it
	var count int64
	if err := db.WithContext(ctx).Model(&Lease{}).
		Where("property_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("property has leases")
	}

	// db action
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("Property:"+fmt.Sprint(id), "PropertyList:"+businessId); err != nil {
		return nil, err
	}
	return result, nil
}

func GetProperty(ctx context.Context, id int) (*Property, error) {
	return GetResource[Property](ctx, id)
}

func ListProperties(ctx context.Context) ([]*Property, error) {
	return ListAllResource[Property, Property](ctx, "name")
}

package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/helloakshay27/rental_backend/config"
	"github.com/helloakshay27/rental_backend/utils"
)

type Tenant struct {
	ID            int       `gorm:"primary_key" json:"id"`
	BusinessId    string    `gorm:"index;not null" json:"business_id"`
	Name          string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email         string    `gorm:"size:100" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Gstin         string    `gorm:"size:20" json:"gstin"`
	Pan           string    `gorm:"size:20" json:"pan"`
	ContactPerson string    `gorm:"size:100" json:"contact_person"`
	Address       string    `gorm:"type:text" json:"address"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t Tenant) GetId() int {
	return t.ID
}

func (t Tenant) GetBusinessId() string {
	return t.BusinessId
}

type NewTenant struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Gstin         string `json:"gstin"`
	Pan           string `json:"pan"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewTenant) validate(ctx context.Context, businessId string, id int) error {
	// name
	if err := utils.ValidateUnique[Tenant](ctx, businessId, "name", input.Name, id); err != nil {
		return err
	}
	// email
	if len(strings.TrimSpace(input.Email)) > 0 {
		if !utils.IsValidEmail(input.Email) {
			return errors.New("email is not valid")
		}
	}
	// phone
	if len(strings.TrimSpace(input.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	return nil
}

func CreateTenant(ctx context.Context, input *NewTenant) (*Tenant, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := input.validate(ctx, businessId, 0); err != nil {
		return nil, err
	}

	tenant := Tenant{
		BusinessId:    businessId,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Gstin:         input.Gstin,
		Pan:           input.Pan,
		ContactPerson: input.ContactPerson,
		Address:       input.Address,
		IsActive:      utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&tenant).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("TenantList:" + businessId); err != nil {
		return nil, err
	}
	return &tenant, nil
}

func UpdateTenant(ctx context.Context, id int, input *NewTenant) (*Tenant, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := input.validate(ctx, businessId, id); err != nil {
		return nil, err
	}

	tenant, err := utils.FetchModel[Tenant](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&tenant).Updates(map[string]interface{}{
		"Name":          input.Name,
		"Email":         input.Email,
		"Phone":         input.Phone,
		"Gstin":         input.Gstin,
		"Pan":           input.Pan,
		"ContactPerson": input.ContactPerson,
		"Address":       input.Address,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("Tenant:"+fmt.Sprint(id), "TenantList:"+businessId); err != nil {
		return nil, err
	}
	return tenant, nil
}

func DeleteTenant(ctx context.Context, id int) (*Tenant, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Tenant](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.WithContext(ctx).Model(&Lease{}).
		Where("tenant_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("tenant has leases")
	}

	// db action
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("Tenant:"+fmt.Sprint(id), "TenantList:"+businessId); err != nil {
		return nil, err
	}
	return result, nil
}

func GetTenant(ctx context.Context, id int) (*Tenant, error) {
	return GetResource[Tenant](ctx, id)
}

func ListTenants(ctx context.Context) ([]*Tenant, error) {
	return ListAllResource[Tenant, Tenant](ctx, "name")
}

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

// CustomFieldDefinition describes a business-defined extra field that lease
// records may carry in their custom_fields map.
type CustomFieldDefinition struct {
	ID         int             `gorm:"primary_key" json:"id"`
	BusinessId string          `gorm:"index;not null" json:"business_id"`
	Name       string          `gorm:"size:100;not null" json:"name" binding:"required"`
	FieldType  CustomFieldType `gorm:"type:enum('text','number','date','boolean');default:'text'" json:"field_type"`
	IsRequired *bool           `gorm:"not null;default:false" json:"is_required"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c CustomFieldDefinition) GetId() int {
	return c.ID
}

func (c CustomFieldDefinition) GetBusinessId() string {
	return c.BusinessId
}

type NewCustomFieldDefinition struct {
	Name       string          `json:"name" binding:"required"`
	FieldType  CustomFieldType `json:"field_type" binding:"required"`
	IsRequired *bool           `json:"is_required"`
}

func CreateCustomFieldDefinition(ctx context.Context, input *NewCustomFieldDefinition) (*CustomFieldDefinition, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := utils.ValidateUnique[CustomFieldDefinition](ctx, businessId, "name", input.Name, 0); err != nil {
		return nil, err
	}

	required := input.IsRequired
	if required == nil {
		required = utils.NewFalse()
	}
	definition := CustomFieldDefinition{
		BusinessId: businessId,
		Name:       input.Name,
		FieldType:  input.FieldType,
		IsRequired: required,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&definition).Error; err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("CustomFieldDefinitionList:" + businessId); err != nil {
		return nil, err
	}
	return &definition, nil
}

func DeleteCustomFieldDefinition(ctx context.Context, id int) (*CustomFieldDefinition, error) {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	result, err := utils.FetchModel[CustomFieldDefinition](ctx, businessId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}

	if err := config.RemoveRedisKey("CustomFieldDefinition:"+fmt.Sprint(id), "CustomFieldDefinitionList:"+businessId); err != nil {
		return nil, err
	}
	return result, nil
}

func ListCustomFieldDefinitions(ctx context.Context) ([]*CustomFieldDefinition, error) {
	return ListAllResource[CustomFieldDefinition, CustomFieldDefinition](ctx, "name")
}

// ValidateCustomFields checks a lease's custom_fields map against the
// business's definitions. Unknown keys are rejected, number fields must
// parse, and required fields must be present and non-empty.
func ValidateCustomFields(ctx context.Context, fields map[string]interface{}) error {
	definitions, err := ListCustomFieldDefinitions(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]*CustomFieldDefinition, len(definitions))
	for _, definition := range definitions {
		byName[definition.Name] = definition
	}

	for name, value := range fields {
		definition, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown custom field %q", name)
		}
		if definition.FieldType == CustomFieldTypeNumber {
			if _, err := decimal.NewFromString(fmt.Sprint(value)); err != nil {
				return fmt.Errorf("custom field %q must be a number", name)
			}
		}
	}

	for _, definition := range definitions {
		if definition.IsRequired == nil || !*definition.IsRequired {
			continue
		}
		value, ok := fields[definition.Name]
		if !ok || fmt.Sprint(value) == "" {
			return fmt.Errorf("custom field %q is required", definition.Name)
		}
	}
	return nil
}

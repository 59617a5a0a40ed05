package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// SigningAuthority is the person executing the agreement on the landlord's
// behalf. The lease store models authorities as a collection, but the editor
// only ever works with one per lease.
type SigningAuthority struct {
	ID            int           `gorm:"primary_key" json:"id"`
	LeaseId       int           `gorm:"index;not null" json:"lease_id"`
	Name          string        `gorm:"size:100" json:"name"`
	Designation   string        `gorm:"size:100" json:"designation"`
	Email         string        `gorm:"size:100" json:"email"`
	PhoneNumber   string        `gorm:"size:20" json:"phone_number"`
	AuthorityType AuthorityType `gorm:"type:enum('Landlord','Lessee');default:'Landlord'" json:"authority_type"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSigningAuthority struct {
	HasId
	HasDestroy
	Name          string        `json:"name"`
	Designation   string        `json:"designation"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phone_number"`
	AuthorityType AuthorityType `json:"authority_type"`
}

func (a *SigningAuthority) Store(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (a *SigningAuthority) Delete(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Delete(a).Error
}

func (a *SigningAuthority) Update(tx *gorm.DB, ctx context.Context, fillable map[string]interface{}) error {
	return tx.WithContext(ctx).Model(a).Updates(fillable).Error
}

func (i NewSigningAuthority) Fillable() (map[string]interface{}, error) {
	return map[string]interface{}{
		"Name":          i.Name,
		"Designation":   i.Designation,
		"Email":         i.Email,
		"PhoneNumber":   i.PhoneNumber,
		"AuthorityType": i.authorityTypeOrDefault(),
	}, nil
}

func (i NewSigningAuthority) MapInput(leaseId int) (*SigningAuthority, error) {
	return &SigningAuthority{
		LeaseId:       leaseId,
		Name:          i.Name,
		Designation:   i.Designation,
		Email:         i.Email,
		PhoneNumber:   i.PhoneNumber,
		AuthorityType: i.authorityTypeOrDefault(),
	}, nil
}

func (i NewSigningAuthority) authorityTypeOrDefault() AuthorityType {
	if i.AuthorityType == "" {
		return AuthorityTypeLandlord
	}
	return i.AuthorityType
}

func mapAuthorityInput(authorities []SigningAuthority) NewSigningAuthority {
	if len(authorities) == 0 {
		return NewSigningAuthority{}
	}
	a := authorities[0]
	return NewSigningAuthority{
		HasId:         HasId{Id: a.ID},
		Name:          a.Name,
		Designation:   a.Designation,
		Email:         a.Email,
		PhoneNumber:   a.PhoneNumber,
		AuthorityType: a.AuthorityType,
	}
}

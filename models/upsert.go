package models

import (
	"context"
	"slices"

	"gorm.io/gorm"
)

// Parking, AgreementService, SigningAuthority, Document
type Upserter interface {
	Store(tx *gorm.DB, ctx context.Context) error
	Delete(tx *gorm.DB, ctx context.Context) error
	Update(tx *gorm.DB, ctx context.Context, fillable map[string]interface{}) error
}

// NewParking, NewAgreementService, NewSigningAuthority, NewDocument
type Upsertable[ReturnType any] interface {
	Fillable() (map[string]interface{}, error)             // for updates
	MapInput(leaseId int) (ReturnType, error)              // for create
	IsDeleted() bool
	Identifier
}

// UpsertLeaseChildren applies one attributes array to a lease's sub-entity
// table: entries without an id are inserted, entries whose id belongs to the
// lease are updated in place, entries flagged `_destroy` are deleted. Ids
// that don't belong to the lease are treated as inserts rather than touching
// another lease's rows.
func UpsertLeaseChildren[ReturnType Upserter, InputType Upsertable[ReturnType]](
	ctx context.Context, tx *gorm.DB, inputSlice []InputType, leaseId int) ([]ReturnType, error) {

	var existingIds []int
	var temp ReturnType
	if err := tx.WithContext(ctx).
		Model(&temp).Where("lease_id = ?", leaseId).
		Select("id").Scan(&existingIds).Error; err != nil {
		return nil, err
	}

	var children []ReturnType
	for _, input := range inputSlice {
		var item ReturnType
		id := input.GetId()

		if slices.Contains(existingIds, id) {

			// fetch before update/delete
			if err := tx.WithContext(ctx).First(&item, id).Error; err != nil {
				return nil, err
			}

			if input.IsDeleted() {
				if err := item.Delete(tx, ctx); err != nil {
					return nil, err
				}
				// deleted rows don't come back in the result
				continue
			}

			update, err := input.Fillable()
			if err != nil {
				return nil, err
			}
			if err := item.Update(tx, ctx, update); err != nil {
				return nil, err
			}
		} else {
			// a destroy marker for a row that never persisted is a no-op
			if input.IsDeleted() {
				continue
			}
			item, err := input.MapInput(leaseId)
			if err != nil {
				return nil, err
			}
			if err := item.Store(tx, ctx); err != nil {
				return nil, err
			}
			children = append(children, item)
			continue
		}
		children = append(children, item)
	}

	return children, nil
}

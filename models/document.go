package models

import (
	"context"
	"time"

	"github.com/helloakshay27/rental_backend/config"
	"github.com/helloakshay27/rental_backend/utils"
	"gorm.io/gorm"
)

// Document is a stored file attached to a lease, property or tenant. The
// DocumentUrl column holds the object name inside the bucket, not a public
// URL; callers sign it on the way out.
type Document struct {
	ID            int       `gorm:"primary_key" json:"id"`
	DocumentUrl   string    `gorm:"size:512;not null" json:"document_url" binding:"required"`
	DocumentType  string    `gorm:"size:100" json:"document_type"`
	FileName      string    `gorm:"size:255" json:"file_name"`
	ReferenceType string    `gorm:"size:50;not null;index:idx_document_reference" json:"reference_type"`
	ReferenceId   int       `gorm:"not null;index:idx_document_reference" json:"reference_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d Document) GetId() int {
	return d.ID
}

func (d *Document) Store(tx *gorm.DB, ctx context.Context) error {
	return tx.WithContext(ctx).Create(d).Error
}

func (d *Document) Delete(tx *gorm.DB, ctx context.Context) error {
	if err := tx.WithContext(ctx).Delete(d).Error; err != nil {
		return err
	}
	// best effort; the row is gone either way
	if err := utils.DeleteDocumentFromGCS(ctx, d.DocumentUrl); err != nil {
		config.LogError(err, "failed to remove document object "+d.DocumentUrl)
	}
	return nil
}

func (d *Document) Update(tx *gorm.DB, ctx context.Context, fillable map[string]interface{}) error {
	return tx.WithContext(ctx).Model(d).Updates(fillable).Error
}

// GetDocumentUrls signs every attachment of a lease for direct download.
func GetDocumentUrls(ctx context.Context, documents []*Document) []string {
	urls := make([]string, 0, len(documents))
	for _, document := range documents {
		url, err := utils.GetSignedDocumentUrl(ctx, document.DocumentUrl)
		if err != nil {
			config.LogError(err, "failed to sign document url "+document.DocumentUrl)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func DeleteDocument(ctx context.Context, id int) error {
	db := config.GetDB()

	var document Document
	if err := db.WithContext(ctx).First(&document, id).Error; err != nil {
		return utils.ErrorRecordNotFound
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := document.Delete(tx, ctx); err != nil {
		return err
	}
	return tx.Commit().Error
}

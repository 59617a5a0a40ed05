package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/helloakshay27/rental_backend/config"
	"github.com/helloakshay27/rental_backend/models"
	"github.com/helloakshay27/rental_backend/utils"
	"github.com/sirupsen/logrus"
)

type uploadDocumentRequest struct {
	FileName      string `json:"file_name" binding:"required"`
	DocumentType  string `json:"document_type"`
	Base64Data    string `json:"base64_data" binding:"required"`
	ReferenceType string `json:"reference_type"`
	ReferenceId   int    `json:"reference_id"`
}

type uploadDocumentResponse struct {
	ObjectKey          string `json:"objectKey"`
	ThumbnailObjectKey string `json:"thumbnailObjectKey,omitempty"`
	DocumentId         int    `json:"documentId,omitempty"`
	DocumentUrl        string `json:"documentUrl"`
}

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

func uploadDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req uploadDocumentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(req.Base64Data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "base64_data is not valid base64"})
			return
		}
		if int64(len(decoded)) > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		ext := strings.ToLower(filepath.Ext(req.FileName))
		entity := "uploads"
		if req.ReferenceType != "" {
			entity = sanitizeSegment(strings.ToLower(req.ReferenceType))
		}
		objectKey := path.Join(user.BusinessId, entity, uuid.New().String()+ext)

		ctx := c.Request.Context()
		ctx = utils.SetBusinessIdInContext(ctx, user.BusinessId)
		ctx = utils.SetUserIdInContext(ctx, user.ID)

		if err := utils.SaveDocumentToGCS(ctx, objectKey, req.Base64Data); err != nil {
			logUploadError(logger, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		response := uploadDocumentResponse{ObjectKey: objectKey}

		if config.ThumbnailsEnabled() && isImagePayload(decoded) {
			thumbnailKey, err := createThumbnail(ctx, objectKey, decoded)
			if err != nil {
				logUploadError(logger, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate thumbnail"})
				return
			}
			response.ThumbnailObjectKey = thumbnailKey
		}

		if req.ReferenceType != "" && req.ReferenceId > 0 {
			db := config.GetDB()
			document := &models.Document{
				DocumentUrl:   objectKey,
				DocumentType:  req.DocumentType,
				FileName:      req.FileName,
				ReferenceType: sanitizeSegment(strings.ToLower(req.ReferenceType)),
				ReferenceId:   req.ReferenceId,
			}
			tx := db.Begin()
			if err := document.Store(tx, ctx); err != nil {
				tx.Rollback()
				logUploadError(logger, err)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := tx.Commit().Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			response.DocumentId = document.ID
		}

		url, err := utils.GetSignedDocumentUrl(ctx, objectKey)
		if err != nil {
			logUploadError(logger, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign url"})
			return
		}
		response.DocumentUrl = url

		logger.WithFields(logrus.Fields{
			"tenant_id":  user.BusinessId,
			"object_key": objectKey,
			"size":       len(decoded),
		}).Info("[upload.document]")

		c.JSON(http.StatusOK, gin.H{"data": response})
	}
}

// streams a stored object back to the caller
func downloadObjectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		objectKey := strings.TrimSpace(c.Query("key"))
		if objectKey == "" || strings.Contains(objectKey, "..") || strings.HasPrefix(objectKey, "/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
			return
		}

		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !strings.HasPrefix(objectKey, user.BusinessId+"/") {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		exists, err := utils.ObjectExistsInGCS(c.Request.Context(), objectKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage client error"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
			return
		}

		client, err := utils.GetGCSClient(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage client error"})
			return
		}
		defer client.Close()

		bucket := strings.TrimSpace(os.Getenv("GCS_BUCKET"))
		if bucket == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "GCS_BUCKET is required"})
			return
		}
		obj := client.Bucket(bucket).Object(objectKey)
		attrs, err := obj.Attrs(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
			return
		}
		reader, err := obj.NewReader(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
			return
		}
		defer reader.Close()

		if attrs != nil && attrs.ContentType != "" {
			c.Writer.Header().Set("Content-Type", attrs.ContentType)
		}
		if attrs != nil && attrs.Size > 0 {
			c.Writer.Header().Set("Content-Length", fmt.Sprintf("%d", attrs.Size))
		}
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, reader)
	}
}

func createThumbnail(ctx context.Context, objectKey string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", err
	}

	thumbnailKey := thumbnailObjectKey(objectKey)
	if err := utils.UploadBytesToGCS(ctx, thumbnailKey, buf.Bytes(), "image/jpeg"); err != nil {
		return "", err
	}
	return thumbnailKey, nil
}

func thumbnailObjectKey(objectKey string) string {
	dir := path.Dir(objectKey)
	filename := path.Base(objectKey)
	return path.Join(dir, "thumbnails", filename)
}

func isImagePayload(data []byte) bool {
	contentType := http.DetectContentType(data)
	return strings.HasPrefix(contentType, "image/")
}

func getSessionUser(ctx context.Context) (*models.User, error) {
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return nil, errors.New("unauthorized")
	}

	var user models.User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return nil, err
	}
	if !exists {
		db := config.GetDB()
		if db == nil {
			return nil, errors.New("db is nil")
		}
		if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Take(&user).Error; err != nil {
			return nil, errors.New("unauthorized")
		}
	}
	if user.BusinessId == "" {
		return nil, errors.New("unauthorized")
	}
	return &user, nil
}

func sanitizeSegment(input string) string {
	var out strings.Builder
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func logUploadError(logger *logrus.Logger, err error) {
	logger.WithFields(logrus.Fields{
		"error": err.Error(),
		"time":  time.Now().UTC().Format(time.RFC3339),
	}).Error("[upload.error]")
}

package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/helloakshay27/rental_backend/config"
	"github.com/helloakshay27/rental_backend/models"
	"github.com/helloakshay27/rental_backend/utils"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type signinRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}

		info, err := models.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": info})
	}
}

func signoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := models.Logout(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": ok})
	}
}

// hasLiveParking reports whether the payload carries at least one parking
// entry that is not a destroy marker. Submissions without one are refused
// before they reach the engine.
func hasLiveParking(w *models.LeaseWire) bool {
	for _, p := range w.Parkings {
		if !p.IsDeleted() {
			return true
		}
	}
	return false
}

// withSubmitLock serializes lease writes per business when the flag is on.
// The lock is best effort: losing Redis degrades to unserialized writes,
// it never blocks the request.
func withSubmitLock(c *gin.Context, fn func() error) error {
	if !config.LeaseSubmitLockEnabled() {
		return fn()
	}
	businessId, _ := utils.GetBusinessIdFromContext(c.Request.Context())
	redisLock := config.GetRedisLock()
	if redisLock == nil || businessId == "" {
		return fn()
	}

	lock, err := redisLock.Obtain(c.Request.Context(), fmt.Sprintf("lease-submit:%s", businessId), 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.GetLogger().WithFields(logrus.Fields{
			"field":       "withSubmitLock",
			"business_id": businessId,
		}).Warn("could not obtain redis lock; proceeding without redis lock")
		lock = nil
	} else if err != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"field":       "withSubmitLock",
			"business_id": businessId,
		}).Warn("redis lock error; proceeding without redis lock: " + err.Error())
		lock = nil
	}
	if lock != nil {
		defer lock.Release(c.Request.Context())
	}
	return fn()
}

func createLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var wire models.LeaseWire
		if err := c.ShouldBindJSON(&wire); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		if !hasLiveParking(&wire) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one parking entry is required"})
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "lease.create")
		defer span.End()

		var lease *models.Lease
		err := withSubmitLock(c, func() error {
			var err error
			lease, err = models.CreateLease(ctx, &wire)
			return err
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": lease.ToWire()})
	}
}

func updateLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lease id"})
			return
		}

		var wire models.LeaseWire
		if err := c.ShouldBindJSON(&wire); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		if !hasLiveParking(&wire) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one parking entry is required"})
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "lease.update")
		defer span.End()

		var lease *models.Lease
		err = withSubmitLock(c, func() error {
			var err error
			lease, err = models.EditLease(ctx, id, &wire)
			return err
		})
		if err != nil {
			if err == utils.ErrorRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": lease.ToWire()})
	}
}

func getLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lease id"})
			return
		}

		lease, err := models.GetLease(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		wire := lease.ToWire()
		c.JSON(http.StatusOK, gin.H{
			"data":          wire,
			"document_urls": models.GetDocumentUrls(c.Request.Context(), lease.Documents),
		})
	}
}

func listLeasesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		var after *string
		if cursor := c.Query("after"); cursor != "" {
			after = &cursor
		}

		conn, err := models.ListLeases(c.Request.Context(), limit, after)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": conn})
	}
}

func deleteLeaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lease id"})
			return
		}

		if err := models.DeleteLease(c.Request.Context(), id); err != nil {
			if err == utils.ErrorRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": true})
	}
}

func exportLeasesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
		if !ok || businessId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		db := config.GetDB()
		var leases []models.Lease
		if err := db.WithContext(c.Request.Context()).
			Where("business_id = ?", businessId).
			Order("created_at DESC").
			Find(&leases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		f := excelize.NewFile()
		sheet := "Sheet1"
		if _, err := f.NewSheet(sheet); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		headings := []string{"Id", "PropertyId", "TenantId", "StartDate", "EndDate",
			"Area", "RatePerArea", "BasicRent", "GstAmount", "TdsAmount", "MonthlyRent",
			"SecurityDeposit", "Status"}
		col := 'A'
		for _, h := range headings {
			f.SetCellValue(sheet, string(col)+"1", h)
			col++
		}

		for i, l := range leases {
			row := fmt.Sprint(i + 2)
			f.SetCellValue(sheet, "A"+row, l.ID)
			f.SetCellValue(sheet, "B"+row, l.PropertyId)
			f.SetCellValue(sheet, "C"+row, l.TenantId)
			f.SetCellValue(sheet, "D"+row, l.StartDate)
			f.SetCellValue(sheet, "E"+row, l.EndDate)
			f.SetCellValue(sheet, "F"+row, l.Area.StringFixed(2))
			f.SetCellValue(sheet, "G"+row, l.RatePerArea.StringFixed(2))
			f.SetCellValue(sheet, "H"+row, l.BasicRent.StringFixed(2))
			f.SetCellValue(sheet, "I"+row, l.GstAmount.StringFixed(2))
			f.SetCellValue(sheet, "J"+row, l.TdsAmount.StringFixed(2))
			f.SetCellValue(sheet, "K"+row, l.MonthlyRent.StringFixed(2))
			f.SetCellValue(sheet, "L"+row, l.SecurityDeposit.StringFixed(2))
			f.SetCellValue(sheet, "M"+row, string(l.Status))
		}

		c.Writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Writer.Header().Set("Content-Disposition", "attachment; filename=leases.xlsx")
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write file"})
		}
	}
}

/* reference data */

func listPropertiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.ListProperties(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	}
}

func createPropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProperty
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		result, err := models.CreateProperty(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": result})
	}
}

func updatePropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
			return
		}
		var input models.NewProperty
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		result, err := models.UpdateProperty(c.Request.Context(), id, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func deletePropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
			return
		}
		result, err := models.DeleteProperty(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func getPropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
			return
		}
		result, err := models.GetProperty(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func listTenantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.ListTenants(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	}
}

func createTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTenant
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		result, err := models.CreateTenant(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": result})
	}
}

func updateTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
			return
		}
		var input models.NewTenant
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		result, err := models.UpdateTenant(c.Request.Context(), id, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func deleteTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
			return
		}
		result, err := models.DeleteTenant(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func getTenantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant id"})
			return
		}
		result, err := models.GetTenant(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

func deleteDocumentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
			return
		}
		if err := models.DeleteDocument(c.Request.Context(), id); err != nil {
			if err == utils.ErrorRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": true})
	}
}

func listCustomFieldsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.ListCustomFieldDefinitions(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	}
}

func createCustomFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCustomFieldDefinition
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		result, err := models.CreateCustomFieldDefinition(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": result})
	}
}

func deleteCustomFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid custom field id"})
			return
		}
		result, err := models.DeleteCustomFieldDefinition(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

// internal (JWT-guarded) user lookup
func getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		user, err := models.GetUser(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user})
	}
}

// internal (JWT-guarded) user provisioning
func createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
			return
		}
		user, err := models.CreateUser(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": user})
	}
}

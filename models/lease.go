package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/helloakshay27/rental_backend/config"
	"github.com/helloakshay27/rental_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NoticeTerms is the nested notice/termination block of the agreement. On
// the wire it travels as the `notice_terms` sub-object; in the database it
// flattens into notice_-prefixed columns.
type NoticeTerms struct {
	FromLandlordDays        int    `gorm:"default:0" json:"from_landlord_days"`
	FromVilDays             int    `gorm:"default:0" json:"from_vil_days"`
	TerminationRightsLessee string `gorm:"size:255" json:"termination_rights_lessee"`
	TerminationRightsLessor string `gorm:"size:255" json:"termination_rights_lessor"`
	HandoverCondition       string `gorm:"size:255" json:"handover_condition"`
	RentArea                string `gorm:"size:100" json:"rent_area"`
	PropertyType            string `gorm:"size:100" json:"property_type"`
}

type Lease struct {
	ID         int         `gorm:"primary_key" json:"id"`
	BusinessId string      `gorm:"index;not null" json:"business_id"`
	PropertyId int         `gorm:"index;not null" json:"property_id" binding:"required"`
	TenantId   int         `gorm:"index;not null" json:"tenant_id" binding:"required"`
	Status     LeaseStatus `gorm:"type:enum('Draft','Active','Expired','Terminated');default:'Active'" json:"status"`

	StartDate string `gorm:"size:30" json:"start_date"`
	EndDate   string `gorm:"size:30" json:"end_date"`

	Area        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"area"`
	RatePerArea decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate_per_area"`
	BasicRent   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"basic_rent"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"monthly_rent"`

	GstApplicable  *bool           `gorm:"not null;default:false" json:"gst_applicable"`
	CgstPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cgst_percentage"`
	SgstPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sgst_percentage"`
	IgstPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"igst_percentage"`
	GstAmount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"gst_amount"`

	TdsApplicable *bool           `gorm:"not null;default:false" json:"tds_applicable"`
	TdsPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tds_percentage"`
	TdsAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tds_amount"`

	SecurityDeposit decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"security_deposit"`
	Charges         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"charges"`

	AnnualEscalationPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"annual_escalation_percentage"`
	EscalationType             EscalationType  `gorm:"type:enum('Monthly','Quarterly','Annual');default:'Annual'" json:"escalation_type"`
	EscalationInterval         int             `gorm:"default:1" json:"escalation_interval"`

	PenaltyApplicable  *bool           `gorm:"not null;default:false" json:"penalty_applicable"`
	PenaltyPercentage  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"penalty_percentage"`
	InterestApplicable *bool           `gorm:"not null;default:false" json:"interest_applicable"`
	InterestPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"interest_percentage"`

	RentDueDate int         `gorm:"default:1" json:"rent_due_date"`
	RentDueType RentDueType `gorm:"type:enum('Advance','Arrears');default:'Advance'" json:"rent_due_type"`

	PurposeOfAgreement string `gorm:"size:255" json:"purpose_of_agreement"`
	StampDutySharing   string `gorm:"size:100" json:"stamp_duty_sharing"`
	LockInMonths       int    `gorm:"default:0" json:"lock_in_months"`

	NoticeTerms NoticeTerms `gorm:"embedded;embeddedPrefix:notice_" json:"notice_terms"`

	Parkings           []Parking          `gorm:"foreignKey:LeaseId" json:"parkings"`
	AgreementServices  []AgreementService `gorm:"foreignKey:LeaseId" json:"agreement_services"`
	SigningAuthorities []SigningAuthority `gorm:"foreignKey:LeaseId" json:"signing_authorities"`
	Documents          []*Document        `gorm:"polymorphic:Reference" json:"documents"`

	CustomFields datatypes.JSONMap `json:"custom_fields"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l Lease) GetId() int {
	return l.ID
}

// returns decoded cursor string
func (l Lease) GetCursor() string {
	return l.CreatedAt.String()
}

func (l Lease) GetBusinessId() string {
	return l.BusinessId
}

// ToWire renders the persisted lease in the shape the editor consumes on
// edit-entry. Sub-collections become attribute arrays seeded with their ids.
func (l *Lease) ToWire() *LeaseWire {
	w := &LeaseWire{
		Id:         l.ID,
		TenantId:   l.TenantId,
		PropertyId: l.PropertyId,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,

		Area:        l.Area.StringFixed(2),
		RatePerArea: l.RatePerArea.StringFixed(2),
		BasicRent:   l.BasicRent.StringFixed(2),
		MonthlyRent: l.MonthlyRent.StringFixed(2),

		GstApplicable:  l.GstApplicable != nil && *l.GstApplicable,
		CgstPercentage: l.CgstPercentage.StringFixed(2),
		SgstPercentage: l.SgstPercentage.StringFixed(2),
		IgstPercentage: l.IgstPercentage.StringFixed(2),
		GstAmount:      l.GstAmount.StringFixed(2),

		TdsApplicable: l.TdsApplicable != nil && *l.TdsApplicable,
		TdsPercentage: l.TdsPercentage.StringFixed(2),
		TdsAmount:     l.TdsAmount.StringFixed(2),

		SecurityDeposit: l.SecurityDeposit.StringFixed(2),
		Charges:         l.Charges.StringFixed(2),

		AnnualEscalationPercentage: l.AnnualEscalationPercentage.StringFixed(2),
		EscalationType:             l.EscalationType,
		EscalationInterval:         l.EscalationInterval,

		PenaltyApplicable:  l.PenaltyApplicable != nil && *l.PenaltyApplicable,
		PenaltyPercentage:  l.PenaltyPercentage.StringFixed(2),
		InterestApplicable: l.InterestApplicable != nil && *l.InterestApplicable,
		InterestPercentage: l.InterestPercentage.StringFixed(2),

		RentDueDate: l.RentDueDate,
		RentDueType: l.RentDueType,

		PurposeOfAgreement: l.PurposeOfAgreement,
		StampDutySharing:   l.StampDutySharing,
		LockInMonths:       l.LockInMonths,

		NoticeTerms: l.NoticeTerms,

		Parkings:           mapParkingInputs(l.Parkings),
		AgreementServices:  mapServiceInputs(l.AgreementServices),
		SigningAuthorities: []NewSigningAuthority{mapAuthorityInput(l.SigningAuthorities)},
	}
	if len(l.CustomFields) > 0 {
		w.CustomFields = map[string]interface{}(l.CustomFields)
	}
	return w
}

// validate input for both create & update
func validateLeaseWire(ctx context.Context, businessId string, w *LeaseWire) error {
	if err := utils.ValidateResourceId[Property](ctx, businessId, w.PropertyId); err != nil {
		return errors.New("property not found")
	}
	if err := utils.ValidateResourceId[Tenant](ctx, businessId, w.TenantId); err != nil {
		return errors.New("tenant not found")
	}
	// 0 means the due date has not been chosen yet
	if w.RentDueDate != 0 && (w.RentDueDate < 1 || w.RentDueDate > 31) {
		return errors.New("rent due date must be between 1 and 31")
	}
	if len(w.CustomFields) > 0 {
		if err := ValidateCustomFields(ctx, w.CustomFields); err != nil {
			return err
		}
	}
	// the advisory 10-digit check ran in BuildWire; this is the stricter
	// numbering-plan check the storage side applies
	if len(w.SigningAuthorities) > 0 {
		if phone := strings.TrimSpace(w.SigningAuthorities[0].PhoneNumber); phone != "" {
			if err := utils.ValidatePhoneNumber(phone, utils.CountryCode); err != nil {
				return fmt.Errorf("signing authority phone is not valid: %w", err)
			}
		}
	}
	return nil
}

// applyDraft copies the recomputed draft values onto the lease columns.
// Client-sent derived amounts are never trusted.
func (l *Lease) applyDraft(d *LeaseDraft) {
	l.PropertyId = d.PropertyId
	l.TenantId = d.TenantId
	l.StartDate = d.StartDate
	l.EndDate = d.EndDate
	l.Area = d.Area
	l.RatePerArea = d.RatePerArea
	l.BasicRent = d.BasicRent
	l.MonthlyRent = d.TotalMonthlyRent()
	l.GstApplicable = &d.GstApplicable
	l.CgstPercentage = d.CgstPercent
	l.SgstPercentage = d.SgstPercent
	l.IgstPercentage = d.IgstPercent
	l.GstAmount = d.GstAmount
	l.TdsApplicable = &d.TdsApplicable
	l.TdsPercentage = d.TdsPercent
	l.TdsAmount = d.TdsAmount
	l.SecurityDeposit = d.SecurityDeposit
	l.Charges = d.MaintenanceCharges
	l.AnnualEscalationPercentage = d.EscalationPercent
	l.EscalationType = d.EscalationType
	l.EscalationInterval = d.EscalationInterval
	l.PenaltyApplicable = &d.PenaltyApplicable
	l.PenaltyPercentage = d.PenaltyPercent
	l.InterestApplicable = &d.InterestApplicable
	l.InterestPercentage = d.InterestPercent
	l.RentDueDate = d.RentDueDate
	l.RentDueType = d.RentDueType
	l.PurposeOfAgreement = d.PurposeOfAgreement
	l.StampDutySharing = d.StampDutySharing
	l.LockInMonths = d.LockInMonths
	l.NoticeTerms = d.NoticeTerms
	l.CustomFields = datatypes.JSONMap(d.CustomFields)
}

// CreateLease validates the submitted record, re-derives every money field
// through the draft calculators and persists the lease with all its
// sub-entities in one transaction.
func CreateLease(ctx context.Context, w *LeaseWire) (*Lease, error) {
	db := config.GetDB()

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := validateLeaseWire(ctx, businessId, w); err != nil {
		return nil, err
	}

	draft := DraftFromWire(w)
	// running the builder re-checks email/phone and normalizes the payload
	normalized, err := draft.BuildWire(BuildModeCreate)
	if err != nil {
		return nil, err
	}

	lease := &Lease{BusinessId: businessId, Status: LeaseStatusActive}
	lease.applyDraft(draft)

	tx := db.Begin()
	// always rollback on early-return or panic to avoid leaking DB locks
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Omit("Parkings", "AgreementServices", "SigningAuthorities", "Documents").Create(lease).Error; err != nil {
		return nil, err
	}

	parkings, err := UpsertLeaseChildren[*Parking](ctx, tx, normalized.Parkings, lease.ID)
	if err != nil {
		return nil, err
	}
	services, err := UpsertLeaseChildren[*AgreementService](ctx, tx, normalized.AgreementServices, lease.ID)
	if err != nil {
		return nil, err
	}
	authorities, err := UpsertLeaseChildren[*SigningAuthority](ctx, tx, normalized.SigningAuthorities, lease.ID)
	if err != nil {
		return nil, err
	}

	documents, err := storeLeaseDocuments(ctx, tx, w.Documents, lease.ID)
	if err != nil {
		return nil, err
	}

	for _, p := range parkings {
		lease.Parkings = append(lease.Parkings, *p)
	}
	for _, s := range services {
		lease.AgreementServices = append(lease.AgreementServices, *s)
	}
	for _, a := range authorities {
		lease.SigningAuthorities = append(lease.SigningAuthorities, *a)
	}
	lease.Documents = documents

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return lease, nil
}

// EditLease applies an update payload to an existing lease. Sub-entity
// entries without an id are inserted, entries with an id are updated, and
// `_destroy` markers delete the row they name.
func EditLease(ctx context.Context, id int, w *LeaseWire) (*Lease, error) {
	db := config.GetDB()

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	lease, err := GetLease(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateLeaseWire(ctx, businessId, w); err != nil {
		return nil, err
	}

	draft := DraftFromWire(w)
	draft.LeaseId = id
	// preserve destroy markers the client accumulated: DraftFromWire seeds
	// the trackers from the raw entries, so re-render through the builder
	normalized, err := draft.BuildWire(BuildModeUpdate)
	if err != nil {
		return nil, err
	}

	lease.applyDraft(draft)

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Omit("Parkings", "AgreementServices", "SigningAuthorities", "Documents").Save(lease).Error; err != nil {
		return nil, err
	}

	if _, err := UpsertLeaseChildren[*Parking](ctx, tx, normalized.Parkings, lease.ID); err != nil {
		return nil, err
	}
	if _, err := UpsertLeaseChildren[*AgreementService](ctx, tx, normalized.AgreementServices, lease.ID); err != nil {
		return nil, err
	}
	if _, err := UpsertLeaseChildren[*SigningAuthority](ctx, tx, normalized.SigningAuthorities, lease.ID); err != nil {
		return nil, err
	}
	if _, err := storeLeaseDocuments(ctx, tx, w.Documents, lease.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetLease(ctx, id)
}

func GetLease(ctx context.Context, id int) (*Lease, error) {
	db := config.GetDB()

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	var lease Lease
	err := db.WithContext(ctx).
		Where("business_id = ?", businessId).
		Preload("Parkings").
		Preload("AgreementServices").
		Preload("SigningAuthorities").
		Preload("Documents").
		First(&lease, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &lease, nil
}

func DeleteLease(ctx context.Context, id int) error {
	db := config.GetDB()

	lease, err := GetLease(ctx, id)
	if err != nil {
		return err
	}

	tx := db.Begin()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Where("lease_id = ?", id).Delete(&Parking{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("lease_id = ?", id).Delete(&AgreementService{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("lease_id = ?", id).Delete(&SigningAuthority{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("reference_type = ? AND reference_id = ?", "leases", id).Delete(&Document{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Delete(lease).Error; err != nil {
		return err
	}
	return tx.Commit().Error
}

type LeasesEdge Edge[Lease]

type LeasesConnection struct {
	Edges    []*LeasesEdge `json:"edges"`
	PageInfo *PageInfo     `json:"pageInfo"`
}

// ListLeases pages through the business's leases newest first.
func ListLeases(ctx context.Context, limit int, after *string) (*LeasesConnection, error) {
	db := config.GetDB()

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cursorTime, cursorId := DecodeCompositeCursor(after)

	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if cursorId > 0 {
		dbCtx = dbCtx.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursorTime, cursorTime, cursorId)
	}

	var leases []Lease
	if err := dbCtx.Order("created_at DESC, id DESC").Limit(limit + 1).Find(&leases).Error; err != nil {
		return nil, err
	}

	hasNext := len(leases) > limit
	if hasNext {
		leases = leases[:limit]
	}

	conn := &LeasesConnection{PageInfo: &PageInfo{HasNextPage: &hasNext}}
	for i := range leases {
		l := leases[i]
		cursor := EncodeCompositeCursor(l.CreatedAt.UTC().Format(time.RFC3339Nano), l.ID)
		conn.Edges = append(conn.Edges, &LeasesEdge{Node: &l, Cursor: cursor})
		if conn.PageInfo.StartCursor == "" {
			conn.PageInfo.StartCursor = cursor
		}
		conn.PageInfo.EndCursor = cursor
	}
	return conn, nil
}

// storeLeaseDocuments uploads newly attached files to object storage and
// records the document rows. Entries without base64 data are skipped.
func storeLeaseDocuments(ctx context.Context, tx *gorm.DB, inputs []NewLeaseDocument, leaseId int) ([]*Document, error) {
	var documents []*Document
	for _, input := range inputs {
		if strings.TrimSpace(input.Base64Data) == "" {
			continue
		}
		objectName := uuid.New().String()
		if err := utils.SaveDocumentToGCS(ctx, objectName, input.Base64Data); err != nil {
			return nil, err
		}
		document := &Document{
			DocumentUrl:   objectName,
			DocumentType:  input.DocumentType,
			FileName:      input.FileName,
			ReferenceType: "leases",
			ReferenceId:   leaseId,
		}
		if err := tx.WithContext(ctx).Create(document).Error; err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}
	return documents, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID when none is set. Keeps ID generation in the
// application so the same models work on PostgreSQL and the sqlite test DB.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// DefaultCurrency is the deployment-wide currency code. Aggregation assumes a
// single currency; there is no cross-currency conversion.
const DefaultCurrency = "ZAR"

// EntityStatus represents the status of a catalog entity (agency, brand, product...)
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusDisabled EntityStatus = "disabled"
)

// MediaGroup is the holding company / parent of an individual agency
type MediaGroup struct {
	BaseModel
	Name        string       `gorm:"type:varchar(191);not null;unique"`
	Description string       `gorm:"type:text"`
	Status      EntityStatus `gorm:"type:varchar(50);not null;default:'active';index"`
}

// Agency represents an advertising agency, optionally part of a media group
type Agency struct {
	BaseModel
	Name         string       `gorm:"type:varchar(191);not null;unique"`
	Description  string       `gorm:"type:text"`
	Status       EntityStatus `gorm:"type:varchar(50);not null;default:'active';index"`
	MediaGroupID *uuid.UUID   `gorm:"type:uuid;index;column:media_group_id"`
	MediaGroup   *MediaGroup  `gorm:"foreignKey:MediaGroupID"`
}

// OrgBusinessUnit is an internal sales business unit. Its manager must hold
// the BusinessUnitHead or SalesDirector role; the service layer enforces this.
type OrgBusinessUnit struct {
	BaseModel
	Name      string    `gorm:"type:varchar(191);not null;unique"`
	ManagerID uuid.UUID `gorm:"type:uuid;not null;index;column:manager_id"`
	Manager   *User     `gorm:"foreignKey:ManagerID"`
}

// Brand is a client brand tracked in the portfolio. Every brand is owned by an
// account manager and rolls up to an internal org business unit.
type Brand struct {
	BaseModel
	Name              string             `gorm:"type:varchar(191);not null;unique"`
	Description       string             `gorm:"type:text"`
	Status            EntityStatus       `gorm:"type:varchar(50);not null;default:'active';index"`
	UserID            uuid.UUID          `gorm:"type:uuid;not null;index;column:user_id"`
	User              *User              `gorm:"foreignKey:UserID"`
	AgencyID          *uuid.UUID         `gorm:"type:uuid;index;column:agency_id"`
	Agency            *Agency            `gorm:"foreignKey:AgencyID"`
	OrgBusinessUnitID uuid.UUID          `gorm:"type:uuid;not null;index;column:org_business_unit_id"`
	OrgBusinessUnit   *OrgBusinessUnit   `gorm:"foreignKey:OrgBusinessUnitID"`
	BusinessUnits     []BrandBusinessUnit `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
	Opportunities     []Opportunity       `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
}

// DefaultBusinessUnitName is the name of the business unit created alongside
// every new brand.
const DefaultBusinessUnitName = "Default Business Unit"

// BrandBusinessUnit is a client-side business unit within a brand
type BrandBusinessUnit struct {
	BaseModel
	Name        string       `gorm:"type:varchar(191);not null"`
	Description string       `gorm:"type:text"`
	Status      EntityStatus `gorm:"type:varchar(50);not null;default:'active';index"`
	BrandID     uuid.UUID    `gorm:"type:uuid;not null;index;column:brand_id"`
	Brand       *Brand       `gorm:"foreignKey:BrandID"`
	UserID      *uuid.UUID   `gorm:"type:uuid;index;column:user_id"`
	User        *User        `gorm:"foreignKey:UserID"`
}

// Product is a sellable media product
type Product struct {
	BaseModel
	Name        string       `gorm:"type:varchar(191);not null;unique"`
	Description string       `gorm:"type:text"`
	Status      EntityStatus `gorm:"type:varchar(50);not null;default:'active';index"`
}

// FiscalYear is a 12-period accounting year. At most one row has
// IsCurrent=true; FiscalYearRepository.SetCurrent enforces this transactionally.
type FiscalYear struct {
	BaseModel
	Year      int  `gorm:"not null;unique"`
	IsCurrent bool `gorm:"not null;default:false;column:is_current;index"`
}

// OpportunityStatus represents the status of an opportunity
type OpportunityStatus string

const (
	OpportunityStatusActive    OpportunityStatus = "active"
	OpportunityStatusDisabled  OpportunityStatus = "disabled"
	OpportunityStatusExpired   OpportunityStatus = "expired"
	OpportunityStatusWon       OpportunityStatus = "won"
	OpportunityStatusLost      OpportunityStatus = "lost"
	OpportunityStatusAbandoned OpportunityStatus = "abandoned"
)

// IsValid checks if the OpportunityStatus is a valid enum value
func (s OpportunityStatus) IsValid() bool {
	switch s {
	case OpportunityStatusActive, OpportunityStatusDisabled, OpportunityStatusExpired,
		OpportunityStatusWon, OpportunityStatusLost, OpportunityStatusAbandoned:
		return true
	}
	return false
}

// Opportunity is a tracked potential or confirmed sales deal tied to a brand,
// product and fiscal year. Unique per (brand, business unit, product, fiscal
// year). The per-status date fields are write-once: set on the first
// transition into the status and never overwritten.
type Opportunity struct {
	BaseModel
	Name           string             `gorm:"type:varchar(191);not null"`
	Description    string             `gorm:"type:text"`
	Status         OpportunityStatus  `gorm:"type:varchar(50);not null;default:'active';index"`
	BrandID        uuid.UUID          `gorm:"type:uuid;not null;index;column:brand_id;uniqueIndex:idx_opportunity_key"`
	Brand          *Brand             `gorm:"foreignKey:BrandID"`
	BusinessUnitID *uuid.UUID         `gorm:"type:uuid;index;column:business_unit_id;uniqueIndex:idx_opportunity_key"`
	BusinessUnit   *BrandBusinessUnit `gorm:"foreignKey:BusinessUnitID"`
	ProductID      uuid.UUID          `gorm:"type:uuid;not null;index;column:product_id;uniqueIndex:idx_opportunity_key"`
	Product        *Product           `gorm:"foreignKey:ProductID"`
	FiscalYearID   uuid.UUID          `gorm:"type:uuid;not null;index;column:fiscal_year_id;uniqueIndex:idx_opportunity_key"`
	FiscalYear     *FiscalYear        `gorm:"foreignKey:FiscalYearID"`
	Target         decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0"`
	TargetCurrency string             `gorm:"type:varchar(3);not null;default:'ZAR';column:target_currency"`

	Approved       bool       `gorm:"not null;default:false"`
	ApprovalUserID *uuid.UUID `gorm:"type:uuid;column:approval_user_id"`
	ApprovalUser   *User      `gorm:"foreignKey:ApprovalUserID"`

	WonDate       *time.Time `gorm:"type:date;column:won_date"`
	LostDate      *time.Time `gorm:"type:date;column:lost_date"`
	AbandonedDate *time.Time `gorm:"type:date;column:abandoned_date"`
	DisabledDate  *time.Time `gorm:"type:date;column:disabled_date"`
	ExpiredDate   *time.Time `gorm:"type:date;column:expired_date"`
	ApprovedDate  *time.Time `gorm:"type:date;column:approved_date"`
}

// statusDate returns a pointer to the write-once date field for a status, or
// nil when the status carries no date (active).
func (o *Opportunity) statusDate(status OpportunityStatus) **time.Time {
	switch status {
	case OpportunityStatusWon:
		return &o.WonDate
	case OpportunityStatusLost:
		return &o.LostDate
	case OpportunityStatusAbandoned:
		return &o.AbandonedDate
	case OpportunityStatusDisabled:
		return &o.DisabledDate
	case OpportunityStatusExpired:
		return &o.ExpiredDate
	}
	return nil
}

// ApplyStatus moves the opportunity to the given status, stamping the
// matching date field the first time the status is entered. Returns true when
// the date field was written.
func (o *Opportunity) ApplyStatus(status OpportunityStatus, now time.Time) bool {
	o.Status = status
	if field := o.statusDate(status); field != nil && *field == nil {
		t := now
		*field = &t
		return true
	}
	return false
}

// ApplyApproval flips the approved flag and stamps ApprovedDate once. A later
// re-approval never moves the original date.
func (o *Opportunity) ApplyApproval(approver uuid.UUID, now time.Time) bool {
	o.Approved = true
	if o.ApprovalUserID == nil {
		id := approver
		o.ApprovalUserID = &id
	}
	if o.ApprovedDate == nil {
		t := now
		o.ApprovedDate = &t
		return true
	}
	return false
}

// OpportunityPerformance anchors revenue tracking for one opportunity in one
// fiscal year. Unique per (opportunity, fiscal_year).
type OpportunityPerformance struct {
	BaseModel
	OpportunityID uuid.UUID           `gorm:"type:uuid;not null;column:opportunity_id;uniqueIndex:idx_performance_key"`
	Opportunity   *Opportunity        `gorm:"foreignKey:OpportunityID"`
	FiscalYearID  uuid.UUID           `gorm:"type:uuid;not null;column:fiscal_year_id;uniqueIndex:idx_performance_key"`
	FiscalYear    *FiscalYear         `gorm:"foreignKey:FiscalYearID"`
	Periods       []PeriodPerformance `gorm:"foreignKey:PerformanceID;constraint:OnDelete:CASCADE"`
}

// PeriodPerformance is one fiscal month's recorded revenue. Period runs 1-12.
type PeriodPerformance struct {
	BaseModel
	PerformanceID uuid.UUID               `gorm:"type:uuid;not null;column:performance_id;uniqueIndex:idx_period_key"`
	Performance   *OpportunityPerformance `gorm:"foreignKey:PerformanceID"`
	Period        int                     `gorm:"not null;uniqueIndex:idx_period_key"`
	Revenue       decimal.Decimal         `gorm:"type:decimal(14,2);not null;default:0"`
	Currency      string                  `gorm:"type:varchar(3);not null;default:'ZAR'"`
	FiscalYearID  uuid.UUID               `gorm:"type:uuid;not null;column:fiscal_year_id"`
	FiscalYear    *FiscalYear             `gorm:"foreignKey:FiscalYearID"`
}

// CalendarMonth maps the fiscal period onto a calendar month, given the fiscal
// year's start month and the fiscal year's calendar year.
func (p *PeriodPerformance) CalendarMonth(startMonth, year int) time.Time {
	month := (p.Period-1+startMonth-1)%12 + 1
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// User represents a user in the system; the email is the login identity
type User struct {
	BaseModel
	Email             string           `gorm:"type:varchar(255);not null;unique"`
	DisplayName       string           `gorm:"type:varchar(200);not null;column:display_name"`
	Role              Role             `gorm:"type:varchar(50);not null;default:'';index"`
	OrgBusinessUnitID *uuid.UUID       `gorm:"type:uuid;column:org_business_unit_id"`
	OrgBusinessUnit   *OrgBusinessUnit `gorm:"foreignKey:OrgBusinessUnitID"`
	IsActive          bool             `gorm:"not null;default:true;column:is_active"`
}

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs for API responses. Monetary values serialize as decimal strings.

type MediaGroupDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status"`
	CreatedAt   string       `json:"createdAt"` // ISO 8601
	UpdatedAt   string       `json:"updatedAt"` // ISO 8601
}

type AgencyDTO struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Status         EntityStatus `json:"status"`
	MediaGroupID   *uuid.UUID   `json:"mediaGroupId,omitempty"`
	MediaGroupName string       `json:"mediaGroupName,omitempty"`
	CreatedAt      string       `json:"createdAt"`
	UpdatedAt      string       `json:"updatedAt"`
}

type BrandDTO struct {
	ID                  uuid.UUID    `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description,omitempty"`
	Status              EntityStatus `json:"status"`
	UserID              uuid.UUID    `json:"userId"`
	UserName            string       `json:"userName,omitempty"`
	AgencyID            *uuid.UUID   `json:"agencyId,omitempty"`
	AgencyName          string       `json:"agencyName,omitempty"`
	OrgBusinessUnitID   uuid.UUID    `json:"orgBusinessUnitId"`
	OrgBusinessUnitName string       `json:"orgBusinessUnitName,omitempty"`
	CreatedAt           string       `json:"createdAt"`
	UpdatedAt           string       `json:"updatedAt"`
}

type BrandBusinessUnitDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status"`
	BrandID     uuid.UUID    `json:"brandId"`
	UserID      *uuid.UUID   `json:"userId,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

type OrgBusinessUnitDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ManagerID   uuid.UUID `json:"managerId"`
	ManagerName string    `json:"managerName,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type ProductDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

type FiscalYearDTO struct {
	ID        uuid.UUID `json:"id"`
	Year      int       `json:"year"`
	IsCurrent bool      `json:"isCurrent"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type OpportunityDTO struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Status           OpportunityStatus `json:"status"`
	BrandID          uuid.UUID         `json:"brandId"`
	BrandName        string            `json:"brandName,omitempty"`
	BusinessUnitID   *uuid.UUID        `json:"businessUnitId,omitempty"`
	BusinessUnitName string            `json:"businessUnitName,omitempty"`
	ProductID        uuid.UUID         `json:"productId"`
	ProductName      string            `json:"productName,omitempty"`
	FiscalYearID     uuid.UUID         `json:"fiscalYearId"`
	FiscalYear       int               `json:"fiscalYear,omitempty"`
	Target           decimal.Decimal   `json:"target"`
	TargetCurrency   string            `json:"targetCurrency"`
	Approved         bool              `json:"approved"`
	ApprovalUserID   *uuid.UUID        `json:"approvalUserId,omitempty"`
	ApprovedDate     *string           `json:"approvedDate,omitempty"`
	WonDate          *string           `json:"wonDate,omitempty"`
	LostDate         *string           `json:"lostDate,omitempty"`
	AbandonedDate    *string           `json:"abandonedDate,omitempty"`
	DisabledDate     *string           `json:"disabledDate,omitempty"`
	ExpiredDate      *string           `json:"expiredDate,omitempty"`
	CreatedAt        string            `json:"createdAt"`
	UpdatedAt        string            `json:"updatedAt"`
}

// OpportunityWithRevenueDTO is an opportunity enriched with its recorded
// revenue for the requested fiscal year. Sums default to zero when no
// performance rows exist.
type OpportunityWithRevenueDTO struct {
	OpportunityDTO
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Q1Revenue    decimal.Decimal `json:"q1Revenue"`
	Q2Revenue    decimal.Decimal `json:"q2Revenue"`
	Q3Revenue    decimal.Decimal `json:"q3Revenue"`
	Q4Revenue    decimal.Decimal `json:"q4Revenue"`
}

type PeriodPerformanceDTO struct {
	ID            uuid.UUID       `json:"id"`
	OpportunityID uuid.UUID       `json:"opportunityId"`
	FiscalYearID  uuid.UUID       `json:"fiscalYearId"`
	Period        int             `json:"period"`
	Revenue       decimal.Decimal `json:"revenue"`
	Currency      string          `json:"currency"`
	CalendarMonth string          `json:"calendarMonth,omitempty"` // yyyy-mm
}

type UserDTO struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	DisplayName       string     `json:"displayName"`
	Role              Role       `json:"role"`
	OrgBusinessUnitID *uuid.UUID `json:"orgBusinessUnitId,omitempty"`
	IsActive          bool       `json:"isActive"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Dashboard DTOs

// GrowBucket is the G.R.O.W. classification of an opportunity or brand
type GrowBucket string

const (
	BucketGameChanger     GrowBucket = "game_changer"
	BucketRealOpportunity GrowBucket = "real_opportunity"
	BucketOpen            GrowBucket = "open"
	BucketWish            GrowBucket = "wish"
)

// BrandDashboardRow is one brand line on the portfolio dashboard
type BrandDashboardRow struct {
	BrandID          uuid.UUID       `json:"brandId"`
	BrandName        string          `json:"brandName"`
	AgencyName       string          `json:"agencyName,omitempty"`
	OwnerName        string          `json:"ownerName,omitempty"`
	TotalTarget      decimal.Decimal `json:"totalTarget"`
	PriorYearRevenue decimal.Decimal `json:"priorYearRevenue"`
	Bucket           GrowBucket      `json:"bucket"`
}

// GrowBucketSummary aggregates targets and prior-year revenue per bucket
type GrowBucketSummary struct {
	Bucket           GrowBucket      `json:"bucket"`
	BrandCount       int             `json:"brandCount"`
	TotalTarget      decimal.Decimal `json:"totalTarget"`
	PriorYearRevenue decimal.Decimal `json:"priorYearRevenue"`
}

// TopBrandDTO is one entry of the top-N-brands-by-target widget. The final
// entry aggregates the remainder under the name "Other".
type TopBrandDTO struct {
	BrandName   string          `json:"brandName"`
	TotalTarget decimal.Decimal `json:"totalTarget"`
}

// StatusCountDTO is one opportunity-status slice of the status widget
type StatusCountDTO struct {
	Status OpportunityStatus `json:"status"`
	Count  int64             `json:"count"`
}

// TimeRemainingDTO describes how much of the current fiscal year is left
type TimeRemainingDTO struct {
	FiscalYear       int     `json:"fiscalYear"`
	CurrentPeriod    int     `json:"currentPeriod"`
	PeriodsRemaining int     `json:"periodsRemaining"`
	DaysRemaining    int     `json:"daysRemaining"`
	PercentElapsed   float64 `json:"percentElapsed"`
}

// Request DTOs

type CreateMediaGroupRequest struct {
	Name        string       `json:"name" validate:"required,max=191"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
}

type UpdateMediaGroupRequest struct {
	Name        string       `json:"name" validate:"required,max=191"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
}

type CreateAgencyRequest struct {
	Name         string       `json:"name" validate:"required,max=191"`
	Description  string       `json:"description,omitempty"`
	Status       EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
	MediaGroupID *uuid.UUID   `json:"mediaGroupId,omitempty"`
}

type UpdateAgencyRequest struct {
	Name         string       `json:"name" validate:"required,max=191"`
	Description  string       `json:"description,omitempty"`
	Status       EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
	MediaGroupID *uuid.UUID   `json:"mediaGroupId,omitempty"`
}

type CreateBrandRequest struct {
	Name              string       `json:"name" validate:"required,max=191"`
	Description       string       `json:"description,omitempty"`
	Status            EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
	UserID            uuid.UUID    `json:"userId" validate:"required"`
	AgencyID          *uuid.UUID   `json:"agencyId,omitempty"`
	OrgBusinessUnitID uuid.UUID    `json:"orgBusinessUnitId" validate:"required"`
}

type UpdateBrandRequest struct {
	Name              string       `json:"name" validate:"required,max=191"`
	Description       string       `json:"description,omitempty"`
	Status            EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
	UserID            uuid.UUID    `json:"userId" validate:"required"`
	AgencyID          *uuid.UUID   `json:"agencyId,omitempty"`
	OrgBusinessUnitID uuid.UUID    `json:"orgBusinessUnitId" validate:"required"`
}

type CreateBrandBusinessUnitRequest struct {
	Name        string     `json:"name" validate:"required,max=191"`
	Description string     `json:"description,omitempty"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
}

type UpdateBrandBusinessUnitRequest struct {
	Name        string       `json:"name" validate:"required,max=191"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
	UserID      *uuid.UUID   `json:"userId,omitempty"`
}

type CreateOrgBusinessUnitRequest struct {
	Name      string    `json:"name" validate:"required,max=191"`
	ManagerID uuid.UUID `json:"managerId" validate:"required"`
}

type UpdateOrgBusinessUnitRequest struct {
	Name      string    `json:"name" validate:"required,max=191"`
	ManagerID uuid.UUID `json:"managerId" validate:"required"`
}

type CreateProductRequest struct {
	Name        string       `json:"name" validate:"required,max=191"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
}

type UpdateProductRequest struct {
	Name        string       `json:"name" validate:"required,max=191"`
	Description string       `json:"description,omitempty"`
	Status      EntityStatus `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
}

type CreateFiscalYearRequest struct {
	Year      int  `json:"year" validate:"required,gte=2000,lte=2100"`
	IsCurrent bool `json:"isCurrent,omitempty"`
}

type CreateOpportunityRequest struct {
	Name           string           `json:"name" validate:"required,max=191"`
	Description    string           `json:"description,omitempty"`
	BrandID        uuid.UUID        `json:"brandId" validate:"required"`
	BusinessUnitID *uuid.UUID       `json:"businessUnitId,omitempty"`
	ProductID      uuid.UUID        `json:"productId" validate:"required"`
	FiscalYearID   *uuid.UUID       `json:"fiscalYearId,omitempty"` // defaults to the current fiscal year
	Target         *decimal.Decimal `json:"target,omitempty"`
	TargetCurrency string           `json:"targetCurrency,omitempty" validate:"omitempty,len=3"`
}

type UpdateOpportunityRequest struct {
	Name           string           `json:"name" validate:"required,max=191"`
	Description    string           `json:"description,omitempty"`
	BusinessUnitID *uuid.UUID       `json:"businessUnitId,omitempty"`
	ProductID      uuid.UUID        `json:"productId" validate:"required"`
	Target         *decimal.Decimal `json:"target,omitempty"`
	TargetCurrency string           `json:"targetCurrency,omitempty" validate:"omitempty,len=3"`
}

type UpdateOpportunityStatusRequest struct {
	Status OpportunityStatus `json:"status" validate:"required,oneof=active disabled expired won lost abandoned"`
}

type UpsertPeriodRevenueRequest struct {
	Revenue  decimal.Decimal `json:"revenue" validate:"required"`
	Currency string          `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type CreateUserRequest struct {
	Email             string     `json:"email" validate:"required,email,max=255"`
	DisplayName       string     `json:"displayName" validate:"required,max=200"`
	Role              Role       `json:"role,omitempty" validate:"omitempty,oneof=account_manager business_unit_head sales_director"`
	OrgBusinessUnitID *uuid.UUID `json:"orgBusinessUnitId,omitempty"`
}

type UpdateUserRequest struct {
	DisplayName       string     `json:"displayName" validate:"required,max=200"`
	Role              Role       `json:"role,omitempty" validate:"omitempty,oneof=account_manager business_unit_head sales_director"`
	OrgBusinessUnitID *uuid.UUID `json:"orgBusinessUnitId,omitempty"`
	IsActive          *bool      `json:"isActive,omitempty"`
}

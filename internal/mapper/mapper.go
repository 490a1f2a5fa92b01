// Package mapper converts domain models into API DTOs. Timestamps serialize
// as ISO 8601, date-only fields as yyyy-mm-dd.
package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

func ToMediaGroupDTO(g *domain.MediaGroup) domain.MediaGroupDTO {
	return domain.MediaGroupDTO{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Status:      g.Status,
		CreatedAt:   formatTime(g.CreatedAt),
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
}

func ToAgencyDTO(a *domain.Agency) domain.AgencyDTO {
	dto := domain.AgencyDTO{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		Status:       a.Status,
		MediaGroupID: a.MediaGroupID,
		CreatedAt:    formatTime(a.CreatedAt),
		UpdatedAt:    formatTime(a.UpdatedAt),
	}
	if a.MediaGroup != nil {
		dto.MediaGroupName = a.MediaGroup.Name
	}
	return dto
}

func ToBrandDTO(b *domain.Brand) domain.BrandDTO {
	dto := domain.BrandDTO{
		ID:                b.ID,
		Name:              b.Name,
		Description:       b.Description,
		Status:            b.Status,
		UserID:            b.UserID,
		AgencyID:          b.AgencyID,
		OrgBusinessUnitID: b.OrgBusinessUnitID,
		CreatedAt:         formatTime(b.CreatedAt),
		UpdatedAt:         formatTime(b.UpdatedAt),
	}
	if b.User != nil {
		dto.UserName = b.User.DisplayName
	}
	if b.Agency != nil {
		dto.AgencyName = b.Agency.Name
	}
	if b.OrgBusinessUnit != nil {
		dto.OrgBusinessUnitName = b.OrgBusinessUnit.Name
	}
	return dto
}

func ToBrandBusinessUnitDTO(u *domain.BrandBusinessUnit) domain.BrandBusinessUnitDTO {
	return domain.BrandBusinessUnitDTO{
		ID:          u.ID,
		Name:        u.Name,
		Description: u.Description,
		Status:      u.Status,
		BrandID:     u.BrandID,
		UserID:      u.UserID,
		CreatedAt:   formatTime(u.CreatedAt),
		UpdatedAt:   formatTime(u.UpdatedAt),
	}
}

func ToOrgBusinessUnitDTO(u *domain.OrgBusinessUnit) domain.OrgBusinessUnitDTO {
	dto := domain.OrgBusinessUnitDTO{
		ID:        u.ID,
		Name:      u.Name,
		ManagerID: u.ManagerID,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
	if u.Manager != nil {
		dto.ManagerName = u.Manager.DisplayName
	}
	return dto
}

func ToProductDTO(p *domain.Product) domain.ProductDTO {
	return domain.ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func ToFiscalYearDTO(y *domain.FiscalYear) domain.FiscalYearDTO {
	return domain.FiscalYearDTO{
		ID:        y.ID,
		Year:      y.Year,
		IsCurrent: y.IsCurrent,
		CreatedAt: formatTime(y.CreatedAt),
		UpdatedAt: formatTime(y.UpdatedAt),
	}
}

func ToOpportunityDTO(o *domain.Opportunity) domain.OpportunityDTO {
	dto := domain.OpportunityDTO{
		ID:             o.ID,
		Name:           o.Name,
		Description:    o.Description,
		Status:         o.Status,
		BrandID:        o.BrandID,
		BusinessUnitID: o.BusinessUnitID,
		ProductID:      o.ProductID,
		FiscalYearID:   o.FiscalYearID,
		Target:         o.Target,
		TargetCurrency: o.TargetCurrency,
		Approved:       o.Approved,
		ApprovalUserID: o.ApprovalUserID,
		ApprovedDate:   formatDate(o.ApprovedDate),
		WonDate:        formatDate(o.WonDate),
		LostDate:       formatDate(o.LostDate),
		AbandonedDate:  formatDate(o.AbandonedDate),
		DisabledDate:   formatDate(o.DisabledDate),
		ExpiredDate:    formatDate(o.ExpiredDate),
		CreatedAt:      formatTime(o.CreatedAt),
		UpdatedAt:      formatTime(o.UpdatedAt),
	}
	if o.Brand != nil {
		dto.BrandName = o.Brand.Name
	}
	if o.BusinessUnit != nil {
		dto.BusinessUnitName = o.BusinessUnit.Name
	}
	if o.Product != nil {
		dto.ProductName = o.Product.Name
	}
	if o.FiscalYear != nil {
		dto.FiscalYear = o.FiscalYear.Year
	}
	return dto
}

func ToPeriodPerformanceDTO(p *domain.PeriodPerformance, opportunityID uuid.UUID, startMonth, year int) domain.PeriodPerformanceDTO {
	return domain.PeriodPerformanceDTO{
		ID:            p.ID,
		OpportunityID: opportunityID,
		FiscalYearID:  p.FiscalYearID,
		Period:        p.Period,
		Revenue:       p.Revenue,
		Currency:      p.Currency,
		CalendarMonth: p.CalendarMonth(startMonth, year).Format("2006-01"),
	}
}

func ToUserDTO(u *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:                u.ID,
		Email:             u.Email,
		DisplayName:       u.DisplayName,
		Role:              u.Role,
		OrgBusinessUnitID: u.OrgBusinessUnitID,
		IsActive:          u.IsActive,
	}
}

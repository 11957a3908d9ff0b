package lending

import (
	"time"

	"lending-ledger-backend/internal/domain/apperr"
	domain "lending-ledger-backend/internal/domain/lending"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// CreateInput carries already-parsed values; the HTTP edge owns string parsing.
type CreateInput struct {
	Name           string
	Amount         decimal.Decimal
	RateOfInterest decimal.Decimal
	StartDate      time.Time
	RenewalDate    time.Time
	Notes          string

	// FormatErrors are values the caller could not decode; they are
	// reported together with the domain violations.
	FormatErrors []apperr.FieldError
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name           *string
	Amount         *decimal.Decimal
	RateOfInterest *decimal.Decimal
	StartDate      *time.Time
	RenewalDate    *time.Time
	Status         *string
	Notes          *string
	FormatErrors   []apperr.FieldError
}

type ListInput struct {
	Page         int
	Limit        int
	Search       string
	Status       string
	SortBy       string
	SortOrder    string
	StartFrom    *time.Time
	StartTo      *time.Time
	FormatErrors []apperr.FieldError
}

type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

type ExportInput struct {
	RecordIDs    []string
	Format       ExportFormat
	FormatErrors []apperr.FieldError
}

type RecordDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	RateOfInterest decimal.Decimal `json:"rateOfInterest"`
	StartDate      string          `json:"startDate"`
	RenewalDate    string          `json:"renewalDate"`
	Interest       decimal.Decimal `json:"interest"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type ListOutput struct {
	Records     []RecordDTO `json:"records"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Total       int64       `json:"total"`
	Limit       int         `json:"limit"`
	HasNextPage bool        `json:"hasNextPage"`
	HasPrevPage bool        `json:"hasPrevPage"`
}

type SummaryDTO struct {
	TotalAmountLended     decimal.Decimal `json:"totalAmountLended"`
	TotalInterestExpected decimal.Decimal `json:"totalInterestExpected"`
	InterestNext1Month    decimal.Decimal `json:"interestNext1Month"`
	InterestNext6Months   decimal.Decimal `json:"interestNext6Months"`
	InterestNext1Year     decimal.Decimal `json:"interestNext1Year"`
	ActiveRecords         int64           `json:"activeRecords"`
	CompletedRecords      int64           `json:"completedRecords"`
	OverdueRecords        int64           `json:"overdueRecords"`
	TotalRecords          int64           `json:"totalRecords"`
}

type PreviewDTO struct {
	Interest decimal.Decimal `json:"interest"`
	Total    decimal.Decimal `json:"total"`
	Days     int64           `json:"days"`
}

func toDTO(r *domain.Record) RecordDTO {
	return RecordDTO{
		ID:             r.RecordID,
		Name:           r.Name,
		Amount:         r.Amount,
		RateOfInterest: r.RateOfInterest,
		StartDate:      r.StartDate.UTC().Format(time.DateOnly),
		RenewalDate:    r.RenewalDate.UTC().Format(time.DateOnly),
		Interest:       r.Interest,
		Total:          r.Total,
		Status:         string(r.Status),
		Notes:          r.Notes,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toSummaryDTO(s *domain.Summary) *SummaryDTO {
	return &SummaryDTO{
		TotalAmountLended:     s.TotalAmountLended,
		TotalInterestExpected: s.TotalInterestExpected,
		InterestNext1Month:    s.InterestNext1Month,
		InterestNext6Months:   s.InterestNext6Months,
		InterestNext1Year:     s.InterestNext1Year,
		ActiveRecords:         s.ActiveRecords,
		CompletedRecords:      s.CompletedRecords,
		OverdueRecords:        s.OverdueRecords,
		TotalRecords:          s.TotalRecords,
	}
}

package lending

import (
	"fmt"
	"time"

	"lending-ledger-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusOverdue   Status = "Overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

var ErrNotFound = fmt.Errorf("lending record %w", apperr.ErrNotFound)

// Record is a single loan. Interest and Total are derived from the other fields.
type Record struct {
	ID             uint64          `gorm:"primaryKey;column:id"`
	RecordID       string          `gorm:"size:32;not null;uniqueIndex:ux_lending_records_record_id"`
	Name           string          `gorm:"size:100;not null;index:idx_lending_records_name"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RateOfInterest decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	StartDate      time.Time       `gorm:"not null;index:idx_lending_records_start_date"`
	RenewalDate    time.Time       `gorm:"not null;index:idx_lending_records_renewal_date"`
	Interest       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status         Status          `gorm:"size:16;not null;default:'Active';index:idx_lending_records_status"`
	Notes          string          `gorm:"size:500"`
	CreatedBy      string          `gorm:"size:32;not null;index"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (Record) TableName() string { return "lending_records" }

// Filter narrows List. Zero values mean "no constraint".
type Filter struct {
	Search    string
	Status    Status
	StartFrom *time.Time
	StartTo   *time.Time
}

// SortField is a whitelisted column name usable in ORDER BY.
type SortField string

const (
	SortName           SortField = "name"
	SortAmount         SortField = "amount"
	SortRateOfInterest SortField = "rate_of_interest"
	SortStartDate      SortField = "start_date"
	SortRenewalDate    SortField = "renewal_date"
	SortInterest       SortField = "interest"
	SortTotal          SortField = "total"
	SortStatus         SortField = "status"
	SortCreatedAt      SortField = "created_at"
	SortUpdatedAt      SortField = "updated_at"
)

// SortFields maps the public (JSON) field names to columns.
var SortFields = map[string]SortField{
	"name":           SortName,
	"amount":         SortAmount,
	"rateOfInterest": SortRateOfInterest,
	"startDate":      SortStartDate,
	"renewalDate":    SortRenewalDate,
	"interest":       SortInterest,
	"total":          SortTotal,
	"status":         SortStatus,
	"createdAt":      SortCreatedAt,
	"updatedAt":      SortUpdatedAt,
}

type Page struct {
	Number int // 1-based
	Size   int
	Sort   SortField
	Desc   bool
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// Summary is the dashboard aggregate, computed from persisted interest values.
type Summary struct {
	TotalAmountLended     decimal.Decimal
	TotalInterestExpected decimal.Decimal
	InterestNext1Month    decimal.Decimal
	InterestNext6Months   decimal.Decimal
	InterestNext1Year     decimal.Decimal
	ActiveRecords         int64
	CompletedRecords      int64
	OverdueRecords        int64
	TotalRecords          int64
}

// Interest windows measured from "now", both ends inclusive.
const (
	WindowOneMonth  = 30 * 24 * time.Hour
	WindowSixMonths = 180 * 24 * time.Hour
	WindowOneYear   = 365 * 24 * time.Hour
)

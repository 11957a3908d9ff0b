package lending

import (
	"strings"
	"time"
	"unicode/utf8"

	"lending-ledger-backend/internal/domain/apperr"
	"lending-ledger-backend/pkg/accrual"

	"github.com/shopspring/decimal"
)

const (
	MaxNameLen  = 100
	MaxNotesLen = 500
)

var MaxAmount = decimal.NewFromInt(10_000_000)

// Draft holds the caller-settable fields of a new record.
type Draft struct {
	Name           string
	Amount         decimal.Decimal
	RateOfInterest decimal.Decimal
	StartDate      time.Time
	RenewalDate    time.Time
	Notes          string
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name           *string
	Amount         *decimal.Decimal
	RateOfInterest *decimal.Decimal
	StartDate      *time.Time
	RenewalDate    *time.Time
	Status         *Status
	Notes          *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Amount == nil && p.RateOfInterest == nil &&
		p.StartDate == nil && p.RenewalDate == nil && p.Status == nil && p.Notes == nil
}

// Validate collects every field violation of the draft.
func (d Draft) Validate() *apperr.ValidationError {
	ve := &apperr.ValidationError{}
	checkName(ve, d.Name)
	checkAmount(ve, d.Amount)
	checkRate(ve, d.RateOfInterest)
	checkNotes(ve, d.Notes)
	if d.StartDate.IsZero() {
		ve.Add("startDate", "is required")
	}
	if d.RenewalDate.IsZero() {
		ve.Add("renewalDate", "is required")
	}
	if !d.StartDate.IsZero() && !d.RenewalDate.IsZero() && !d.RenewalDate.After(d.StartDate) {
		ve.Add("renewalDate", "must be after start date")
	}
	return ve
}

// Preview runs the accrual for an unsaved draft.
func (d Draft) Preview() (accrual.Result, error) {
	if err := d.Validate().OrNil(); err != nil {
		return accrual.Result{}, err
	}
	return accrual.Compute(accrual.Input{
		Amount:         d.Amount,
		RateOfInterest: d.RateOfInterest,
		StartDate:      d.StartDate,
		RenewalDate:    d.RenewalDate,
	})
}

// NewRecord builds an Active record with derived fields already computed.
func NewRecord(recordID, createdBy string, d Draft) (*Record, error) {
	if err := d.Validate().OrNil(); err != nil {
		return nil, err
	}
	r := &Record{
		RecordID:       recordID,
		Name:           strings.TrimSpace(d.Name),
		Amount:         d.Amount,
		RateOfInterest: d.RateOfInterest,
		StartDate:      d.StartDate,
		RenewalDate:    d.RenewalDate,
		Status:         StatusActive,
		Notes:          d.Notes,
		CreatedBy:      createdBy,
	}
	if err := r.accrue(); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply merges p into r and re-derives Interest and Total from the merged
// fields. On error r is left unchanged.
func (r *Record) Apply(p Patch) error {
	ve := &apperr.ValidationError{}
	next := *r

	if p.Name != nil {
		checkName(ve, *p.Name)
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Amount != nil {
		checkAmount(ve, *p.Amount)
		next.Amount = *p.Amount
	}
	if p.RateOfInterest != nil {
		checkRate(ve, *p.RateOfInterest)
		next.RateOfInterest = *p.RateOfInterest
	}
	if p.StartDate != nil {
		next.StartDate = *p.StartDate
	}
	if p.RenewalDate != nil {
		next.RenewalDate = *p.RenewalDate
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			ve.Add("status", "must be one of Active, Completed, Overdue")
		}
		next.Status = *p.Status
	}
	if p.Notes != nil {
		checkNotes(ve, *p.Notes)
		next.Notes = *p.Notes
	}
	if !next.RenewalDate.After(next.StartDate) {
		ve.Add("renewalDate", "must be after start date")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}
	if err := next.accrue(); err != nil {
		return err
	}
	*r = next
	return nil
}

func (r *Record) accrue() error {
	res, err := accrual.Compute(accrual.Input{
		Amount:         r.Amount,
		RateOfInterest: r.RateOfInterest,
		StartDate:      r.StartDate,
		RenewalDate:    r.RenewalDate,
	})
	if err != nil {
		return err
	}
	r.Interest = res.Interest
	r.Total = res.Total
	return nil
}

func checkName(ve *apperr.ValidationError, name string) {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		ve.Add("name", "is required")
	} else if n > MaxNameLen {
		ve.Add("name", "must be at most 100 characters")
	}
}

func checkAmount(ve *apperr.ValidationError, amount decimal.Decimal) {
	if !amount.IsPositive() {
		ve.Add("amount", "must be greater than 0")
	} else if amount.GreaterThan(MaxAmount) {
		ve.Add("amount", "cannot exceed 10000000")
	}
}

func checkRate(ve *apperr.ValidationError, rate decimal.Decimal) {
	if rate.IsNegative() {
		ve.Add("rateOfInterest", "cannot be negative")
	} else if rate.GreaterThan(decimal.NewFromInt(100)) {
		ve.Add("rateOfInterest", "cannot exceed 100")
	}
}

func checkNotes(ve *apperr.ValidationError, notes string) {
	if utf8.RuneCountInString(notes) > MaxNotesLen {
		ve.Add("notes", "must be at most 500 characters")
	}
}

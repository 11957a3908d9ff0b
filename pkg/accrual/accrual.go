// Package accrual computes simple interest over a lending period.
//
// The same Compute function backs both persisted records and the preview
// endpoint, so stored and previewed figures can never disagree.
package accrual

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerYear is fixed; leap years are not adjusted for.
const DaysPerYear = 365

var ErrInvalidAccrualInput = errors.New("invalid accrual input")

var (
	maxRate       = decimal.NewFromInt(100)
	yearPercent   = decimal.NewFromInt(DaysPerYear * 100)
	hoursInOneDay = 24.0
)

type Input struct {
	Amount         decimal.Decimal
	RateOfInterest decimal.Decimal // annual percentage, 0..100
	StartDate      time.Time
	RenewalDate    time.Time
}

type Result struct {
	Interest decimal.Decimal
	Total    decimal.Decimal
	Days     int64
}

// Days returns the whole number of days between start and renewal, rounding
// any partial day up.
func Days(start, renewal time.Time) int64 {
	return int64(math.Ceil(renewal.Sub(start).Hours() / hoursInOneDay))
}

// Compute returns interest = round(amount * rate * days / 36500) with
// half-away-from-zero rounding to whole units, and total = amount + interest.
func Compute(in Input) (Result, error) {
	if !in.Amount.IsPositive() || in.RateOfInterest.IsNegative() || in.RateOfInterest.GreaterThan(maxRate) {
		return Result{}, ErrInvalidAccrualInput
	}
	if !in.RenewalDate.After(in.StartDate) {
		return Result{}, ErrInvalidAccrualInput
	}

	days := Days(in.StartDate, in.RenewalDate)
	interest := in.Amount.
		Mul(in.RateOfInterest).
		Mul(decimal.NewFromInt(days)).
		Div(yearPercent).
		Round(0)

	return Result{
		Interest: interest,
		Total:    in.Amount.Add(interest),
		Days:     days,
	}, nil
}

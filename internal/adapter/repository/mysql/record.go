package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"lending-ledger-backend/internal/domain/lending"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

func (r *RecordRepository) Create(ctx context.Context, rec *lending.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecordRepository) Save(ctx context.Context, rec *lending.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *RecordRepository) GetByRecordID(ctx context.Context, recordID string) (*lending.Record, error) {
	var out lending.Record
	err := r.db.WithContext(ctx).Where("record_id = ?", recordID).First(&out).Error
	if err != nil {
		return nil, notFound(err, lending.ErrNotFound)
	}
	return &out, nil
}

func (r *RecordRepository) GetByRecordIDForUpdate(ctx context.Context, recordID string) (*lending.Record, error) {
	var out lending.Record
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("record_id = ?", recordID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, lending.ErrNotFound)
	}
	return &out, nil
}

func (r *RecordRepository) DeleteByRecordID(ctx context.Context, recordID string) error {
	res := r.db.WithContext(ctx).Where("record_id = ?", recordID).Delete(&lending.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lending.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) List(ctx context.Context, f lending.Filter, p lending.Page) ([]lending.Record, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := p.Sort
	if sort == "" {
		sort = lending.SortCreatedAt
	}
	var out []lending.Record
	err := r.filtered(ctx, f).
		Order(clause.OrderByColumn{Column: clause.Column{Name: string(sort)}, Desc: p.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: p.Desc}).
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *RecordRepository) filtered(ctx context.Context, f lending.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&lending.Record{})
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(s))+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartFrom != nil {
		q = q.Where("start_date >= ?", *f.StartFrom)
	}
	if f.StartTo != nil {
		q = q.Where("start_date <= ?", *f.StartTo)
	}
	return q
}

func (r *RecordRepository) FindByRecordIDs(ctx context.Context, recordIDs []string) ([]lending.Record, error) {
	var out []lending.Record
	if len(recordIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("record_id IN ?", recordIDs).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

type sumRow struct {
	Amount   decimal.NullDecimal
	Interest decimal.NullDecimal
}

type statusCount struct {
	Status lending.Status
	Count  int64
}

// Summary aggregates persisted amounts and interest; it never recomputes
// accrual, so it is only as correct as the write path that stored them.
func (r *RecordRepository) Summary(ctx context.Context, now time.Time) (*lending.Summary, error) {
	open := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&lending.Record{}).Where("status <> ?", lending.StatusCompleted)
	}

	var all sumRow
	if err := open().Select("SUM(amount) AS amount, SUM(interest) AS interest").Scan(&all).Error; err != nil {
		return nil, err
	}

	window := func(d time.Duration) (decimal.Decimal, error) {
		var row sumRow
		err := open().
			Where("renewal_date >= ? AND renewal_date <= ?", now, now.Add(d)).
			Select("SUM(interest) AS interest").
			Scan(&row).Error
		return row.Interest.Decimal, err
	}

	out := &lending.Summary{
		TotalAmountLended:     all.Amount.Decimal,
		TotalInterestExpected: all.Interest.Decimal,
	}
	var err error
	if out.InterestNext1Month, err = window(lending.WindowOneMonth); err != nil {
		return nil, err
	}
	if out.InterestNext6Months, err = window(lending.WindowSixMonths); err != nil {
		return nil, err
	}
	if out.InterestNext1Year, err = window(lending.WindowOneYear); err != nil {
		return nil, err
	}

	var counts []statusCount
	err = r.db.WithContext(ctx).Model(&lending.Record{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		switch c.Status {
		case lending.StatusActive:
			out.ActiveRecords = c.Count
		case lending.StatusCompleted:
			out.CompletedRecords = c.Count
		case lending.StatusOverdue:
			out.OverdueRecords = c.Count
		}
		out.TotalRecords += c.Count
	}
	return out, nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }

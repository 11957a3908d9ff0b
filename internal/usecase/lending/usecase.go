package lending

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lending-ledger-backend/internal/domain/apperr"
	domain "lending-ledger-backend/internal/domain/lending"
	"lending-ledger-backend/internal/domain/uow"
	"lending-ledger-backend/pkg/id"
	"lending-ledger-backend/pkg/sl"
)

// SummaryCache stores the last computed dashboard aggregate.
// Get returns (nil, nil) on a miss.
type SummaryCache interface {
	Get(ctx context.Context) (*domain.Summary, error)
	Set(ctx context.Context, s *domain.Summary) error
	Invalidate(ctx context.Context) error
}

// WriteRecorder counts successful record writes by operation.
type WriteRecorder interface {
	RecordWritten(op string)
}

type Usecase struct {
	repo    domain.Repository
	uow     uow.UnitOfWork
	cache   SummaryCache
	metrics WriteRecorder
	log     *slog.Logger
	now     func() time.Time
}

type Option func(*Usecase)

func WithSummaryCache(c SummaryCache) Option { return func(u *Usecase) { u.cache = c } }
func WithMetrics(m WriteRecorder) Option { return func(u *Usecase) { u.metrics = m } }
func WithLogger(l *slog.Logger) Option { return func(u *Usecase) { u.log = l } }
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// NewUsecase: the repo serves reads, the UoW serves locked updates.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{repo: r, uow: tx, log: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, createdBy string, in CreateInput) (*RecordDTO, error) {
	d := domain.Draft{
		Name:           in.Name,
		Amount:         in.Amount,
		RateOfInterest: in.RateOfInterest,
		StartDate:      in.StartDate,
		RenewalDate:    in.RenewalDate,
		Notes:          in.Notes,
	}
	ve := d.Validate()
	if !in.StartDate.IsZero() && in.StartDate.Before(u.earliestStart()) {
		ve.Add("startDate", "cannot be more than 1 day in the past")
	}
	if err := apperr.Merge(in.FormatErrors, ve.OrNil()); err != nil {
		return nil, err
	}

	rec, err := domain.NewRecord(id.NewID32(), createdBy, d)
	if err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	u.written(ctx, "create")

	dto := toDTO(rec)
	return &dto, nil
}

func (u *Usecase) Update(ctx context.Context, recordID string, in UpdateInput) (*RecordDTO, error) {
	p := domain.Patch{
		Name:           in.Name,
		Amount:         in.Amount,
		RateOfInterest: in.RateOfInterest,
		StartDate:      in.StartDate,
		RenewalDate:    in.RenewalDate,
		Notes:          in.Notes,
	}
	if in.Status != nil {
		s := domain.Status(*in.Status)
		p.Status = &s
	}

	var dto RecordDTO
	err := u.uow.WithinRecordTx(ctx, recordID, func(r uow.Repos, rec *domain.Record) error {
		// on format errors the merged record is discarded and the tx rolls back
		if err := apperr.Merge(in.FormatErrors, rec.Apply(p)); err != nil {
			return err
		}
		if err := r.Records.Save(ctx, rec); err != nil {
			return fmt.Errorf("save record: %w", err)
		}
		dto = toDTO(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.written(ctx, "update")
	return &dto, nil
}

func (u *Usecase) Delete(ctx context.Context, recordID string) error {
	if err := u.repo.DeleteByRecordID(ctx, recordID); err != nil {
		return err
	}
	u.written(ctx, "delete")
	return nil
}

func (u *Usecase) Get(ctx context.Context, recordID string) (*RecordDTO, error) {
	rec, err := u.repo.GetByRecordID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(rec)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ve := &apperr.ValidationError{}

	page := domain.Page{Number: in.Page, Size: in.Limit, Sort: domain.SortCreatedAt, Desc: true}
	if page.Number < 1 {
		page.Number = DefaultPage
	}
	if page.Size < 1 {
		page.Size = DefaultLimit
	}
	if page.Size > MaxLimit {
		page.Size = MaxLimit
	}
	if in.SortBy != "" {
		col, ok := domain.SortFields[in.SortBy]
		if !ok {
			ve.Add("sortBy", "is not a sortable field")
		}
		page.Sort = col
	}
	switch strings.ToLower(in.SortOrder) {
	case "", "desc":
	case "asc":
		page.Desc = false
	default:
		ve.Add("sortOrder", "must be asc or desc")
	}

	f := domain.Filter{Search: in.Search, StartFrom: in.StartFrom, StartTo: in.StartTo}
	if in.Status != "" {
		f.Status = domain.Status(in.Status)
		if !f.Status.Valid() {
			ve.Add("status", "must be one of Active, Completed, Overdue")
		}
	}
	if in.StartFrom != nil && in.StartTo != nil && in.StartTo.Before(*in.StartFrom) {
		ve.Add("endDate", "must not be before startDate")
	}
	if err := apperr.Merge(in.FormatErrors, ve.OrNil()); err != nil {
		return nil, err
	}

	recs, total, err := u.repo.List(ctx, f, page)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := &ListOutput{
		Records:     make([]RecordDTO, 0, len(recs)),
		CurrentPage: page.Number,
		Total:       total,
		Limit:       page.Size,
		TotalPages:  int((total + int64(page.Size) - 1) / int64(page.Size)),
	}
	for i := range recs {
		out.Records = append(out.Records, toDTO(&recs[i]))
	}
	out.HasNextPage = out.CurrentPage < out.TotalPages
	out.HasPrevPage = out.CurrentPage > 1
	return out, nil
}

// Summary serves from cache when possible. Cache failures degrade to a
// fresh computation and are only logged.
func (u *Usecase) Summary(ctx context.Context) (*SummaryDTO, error) {
	if u.cache != nil {
		s, err := u.cache.Get(ctx)
		if err != nil {
			u.log.WarnContext(ctx, "summary cache read failed", sl.Err(err))
		} else if s != nil {
			return toSummaryDTO(s), nil
		}
	}

	s, err := u.repo.Summary(ctx, u.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, s); err != nil {
			u.log.WarnContext(ctx, "summary cache write failed", sl.Err(err))
		}
	}
	return toSummaryDTO(s), nil
}

func (u *Usecase) Export(ctx context.Context, in ExportInput) ([]RecordDTO, error) {
	ve := &apperr.ValidationError{}
	if len(in.RecordIDs) == 0 {
		ve.Add("recordIds", "no records selected for download")
	}
	switch in.Format {
	case "", FormatJSON, FormatCSV:
	default:
		ve.Add("format", "must be json or csv")
	}
	if err := apperr.Merge(in.FormatErrors, ve.OrNil()); err != nil {
		return nil, err
	}

	recs, err := u.repo.FindByRecordIDs(ctx, in.RecordIDs)
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}
	out := make([]RecordDTO, 0, len(recs))
	for i := range recs {
		out = append(out, toDTO(&recs[i]))
	}
	return out, nil
}

// Preview runs the same accrual as Create without persisting anything.
func (u *Usecase) Preview(in CreateInput) (*PreviewDTO, error) {
	res, err := domain.Draft{
		Name:           in.Name,
		Amount:         in.Amount,
		RateOfInterest: in.RateOfInterest,
		StartDate:      in.StartDate,
		RenewalDate:    in.RenewalDate,
		Notes:          in.Notes,
	}.Preview()
	if err := apperr.Merge(in.FormatErrors, err); err != nil {
		return nil, err
	}
	return &PreviewDTO{Interest: res.Interest, Total: res.Total, Days: res.Days}, nil
}

// earliestStart is one day before the current instant.
func (u *Usecase) earliestStart() time.Time {
	return u.now().UTC().Add(-24 * time.Hour)
}

func (u *Usecase) written(ctx context.Context, op string) {
	if u.metrics != nil {
		u.metrics.RecordWritten(op)
	}
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx); err != nil {
		u.log.WarnContext(ctx, "summary cache invalidation failed", slog.String("op", op), sl.Err(err))
	}
}

package http

import (
	"bytes"
	"net/http"
	"time"

	"lending-ledger-backend/internal/adapter/middleware"
	"lending-ledger-backend/internal/usecase/lending"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const csvFilename = "lending-records.csv"

type LendingHandler struct {
	uc   *lending.Usecase
	errs ErrorWriter
}

func NewLendingHandler(uc *lending.Usecase, errs ErrorWriter) *LendingHandler {
	return &LendingHandler{uc: uc, errs: errs}
}

// Field presence and ranges are checked by the domain; the tags only cover
// wire formats, and their findings travel with the input so every
// violation is reported together.
type recordReq struct {
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	RateOfInterest decimal.Decimal `json:"rateOfInterest"`
	StartDate      string          `json:"startDate"   validate:"omitempty,datetime=2006-01-02"`
	RenewalDate    string          `json:"renewalDate" validate:"omitempty,datetime=2006-01-02"`
	Notes          string          `json:"notes"`
}

func (r recordReq) input(format []FieldError) lending.CreateInput {
	return lending.CreateInput{
		Name:           r.Name,
		Amount:         r.Amount,
		RateOfInterest: r.RateOfInterest,
		StartDate:      parseDate(r.StartDate),
		RenewalDate:    parseDate(r.RenewalDate),
		Notes:          r.Notes,
		FormatErrors:   format,
	}
}

type updateRecordReq struct {
	Name           *string          `json:"name"`
	Amount         *decimal.Decimal `json:"amount"`
	RateOfInterest *decimal.Decimal `json:"rateOfInterest"`
	StartDate      *string          `json:"startDate"   validate:"omitempty,datetime=2006-01-02"`
	RenewalDate    *string          `json:"renewalDate" validate:"omitempty,datetime=2006-01-02"`
	Status         *string          `json:"status"`
	Notes          *string          `json:"notes"`
}

type listRecordsQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	Status    string `query:"status"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate"   validate:"omitempty,datetime=2006-01-02"`
}

type downloadReq struct {
	RecordIDs []string `json:"recordIds" validate:"dive,hex32"`
	Format    string   `json:"format"`
}

type recordResponse struct {
	Message string             `json:"message"`
	Record  *lending.RecordDTO `json:"record"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *LendingHandler) List(c echo.Context) error {
	var q listRecordsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	out, err := h.uc.List(c.Request().Context(), lending.ListInput{
		Page:         q.Page,
		Limit:        q.Limit,
		Search:       q.Search,
		Status:       q.Status,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
		StartFrom:    optionalDate(q.StartDate),
		StartTo:      optionalDate(q.EndDate),
		FormatErrors: formatErrors(c.Validate(&q)),
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LendingHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LendingHandler) Create(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	dto, err := h.uc.Create(c.Request().Context(), p.UserID, req.input(formatErrors(c.Validate(&req))))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusCreated, recordResponse{Message: "Lending record created successfully", Record: dto})
}

func (h *LendingHandler) Update(c echo.Context) error {
	var req updateRecordReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	in := lending.UpdateInput{
		Name:           req.Name,
		Amount:         req.Amount,
		RateOfInterest: req.RateOfInterest,
		Status:         req.Status,
		Notes:          req.Notes,
		FormatErrors:   formatErrors(c.Validate(&req)),
	}
	if req.StartDate != nil {
		in.StartDate = optionalDate(*req.StartDate)
	}
	if req.RenewalDate != nil {
		in.RenewalDate = optionalDate(*req.RenewalDate)
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, recordResponse{Message: "Record updated successfully", Record: dto})
}

func (h *LendingHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Record deleted successfully"})
}

func (h *LendingHandler) Summary(c echo.Context) error {
	dto, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LendingHandler) Preview(c echo.Context) error {
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	dto, err := h.uc.Preview(req.input(formatErrors(c.Validate(&req))))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LendingHandler) Download(c echo.Context) error {
	var req downloadReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	format := lending.ExportFormat(req.Format)
	recs, err := h.uc.Export(c.Request().Context(), lending.ExportInput{
		RecordIDs:    req.RecordIDs,
		Format:       format,
		FormatErrors: formatErrors(c.Validate(&req)),
	})
	if err != nil {
		return h.errs.write(c, err)
	}

	if format != lending.FormatCSV {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Records retrieved successfully",
			"records": recs,
		})
	}
	var buf bytes.Buffer
	if err := lending.WriteCSV(&buf, recs); err != nil {
		return h.errs.write(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+csvFilename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// parseDate yields the zero time for empty or malformed input; the domain
// reports it as missing and the datetime tag's message takes precedence.
func parseDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func optionalDate(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}

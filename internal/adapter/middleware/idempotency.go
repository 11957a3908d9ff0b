package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lending-ledger-backend/pkg/sl"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"

	pendingTTL   = 60 * time.Second
	maxClockSkew = 10 * time.Minute
)

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency replays the stored response of a repeated mutating request.
// Key = method + route + authenticated user + Ax-Request-Id. Requests that
// carry neither header pass straight through, and so does everything when
// rdb is nil. Must run after RequireAuth.
func Idempotency(rdb *redis.Client, ttl time.Duration, log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	store := replayStore{rdb: rdb, lock: pendingTTL, keep: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			if rdb == nil {
				return next(c)
			}

			rawID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			rawAt := strings.TrimSpace(req.Header.Get(HeaderRequestAt))
			if rawID == "" && rawAt == "" {
				return next(c)
			}
			if rawID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing " + HeaderRequestID})
			}
			if !validRequestID(rawID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderRequestID + " format"})
			}
			reqAt, err := parseRequestAt(rawAt)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			if skew := time.Since(reqAt); skew > maxClockSkew || skew < -maxClockSkew {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": HeaderRequestAt + " too skewed"})
			}

			p, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			sum := digest(body)
			key := replayKey(p.UserID, method, c.Path(), rawID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			first, err := store.claim(ctx, key, replay{Digest: sum, RequestAt: reqAt.UnixMilli()})
			if err != nil {
				log.WarnContext(ctx, "idempotency store unavailable", slog.String("key", key), sl.Err(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !first {
				prev, err := store.load(ctx, key)
				if err != nil {
					log.WarnContext(ctx, "idempotency entry load failed", slog.String("key", key), sl.Err(err))
				}
				switch {
				case !prev.sameBody(sum):
					return c.JSON(http.StatusConflict, map[string]string{"error": HeaderRequestID + " reused with different body"})
				case prev.done():
					ct := prev.ContentType
					if ct == "" {
						ct = echo.MIMEApplicationJSON
					}
					return c.Blob(prev.Status, ct, prev.Body)
				default:
					return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
				}
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// failed attempts are not kept; the client may retry with the same id
			if rec.code >= http.StatusInternalServerError {
				if err := store.release(context.Background(), key); err != nil {
					log.Warn("idempotency release failed", slog.String("key", key), sl.Err(err))
				}
				return nil
			}
			done := replay{
				Status:      rec.code,
				ContentType: rec.Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
				Digest:      sum,
				RequestAt:   reqAt.UnixMilli(),
			}
			if err := store.complete(context.Background(), key, done); err != nil {
				log.Warn("idempotency save failed", slog.String("key", key), sl.Err(err))
			}
			return nil
		}
	}
}

package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
)

const (
	IdempotencyKeyHeader  = "Idempotency-Key"
	ReplayedHeader        = "X-Idempotency-Replayed"
	DefaultIdempotencyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware.
// Zero TTL and nil Now fall back to DefaultIdempotencyTTL and time.Now.
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *logger.Logger
	TTL    time.Duration
	Now    func() time.Time
}

func (cfg IdempotencyConfig) now() time.Time {
	if cfg.Now != nil {
		return cfg.Now()
	}
	return time.Now()
}

func (cfg IdempotencyConfig) ttl() time.Duration {
	if cfg.TTL > 0 {
		return cfg.TTL
	}
	return DefaultIdempotencyTTL
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key already seen for the same admin. Reusing a key with a
// different body is a 409. Only 2xx responses are recorded so a failed
// attempt can be retried under the same key.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		// Without authentication every caller shares admin 0
		adminID, _ := AuthenticatedAdmin(c)

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(payload))
		sum := sha256.Sum256(payload)
		hash := hex.EncodeToString(sum[:])

		existing, err := cfg.Repo.Find(ctx, adminID, key, cfg.now())
		if err != nil {
			cfg.Logger.Warnw("idempotency lookup failed", "key", key, "admin_id", adminID, "error", err)
			c.Next()
			return
		}
		if existing != nil {
			if existing.RequestHash != hash {
				response.Error(c, apperror.NewConflictError("Idempotency-Key was already used with a different request"))
				c.Abort()
				return
			}
			c.Header(ReplayedHeader, "true")
			c.Data(existing.Status, "application/json; charset=utf-8", []byte(existing.Body))
			c.Abort()
			return
		}

		capture := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		now := cfg.now()
		err = cfg.Repo.Save(ctx, &entity.IdempotencyKey{
			AdminID:     adminID,
			Key:         key,
			Route:       c.Request.Method + " " + c.FullPath(),
			RequestHash: hash,
			Status:      status,
			Body:        capture.body.String(),
			CreatedAt:   now,
			ExpiresAt:   now.Add(cfg.ttl()),
		})
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			cfg.Logger.Infow("idempotency key recorded concurrently", "key", key, "admin_id", adminID)
		case err != nil:
			cfg.Logger.Warnw("failed to store idempotency key", "key", key, "admin_id", adminID, "error", err)
		}
	}
}

// SweepIdempotencyKeys purges expired keys every interval until stop is
// closed
func SweepIdempotencyKeys(cfg IdempotencyConfig, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := cfg.Repo.Purge(context.Background(), cfg.now())
			if err != nil {
				cfg.Logger.Warnw("failed to purge idempotency keys", "error", err)
				continue
			}
			if n > 0 {
				cfg.Logger.Debugw("purged idempotency keys", "count", n)
			}
		case <-stop:
			return
		}
	}
}

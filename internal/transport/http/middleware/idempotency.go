package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"

	"hrerp/internal/platform/querier"
	"hrerp/internal/transport/http/api"
)

const IdempotencyHeader = "Idempotency-Key"

var ErrIdempotencyConflict = errors.New("idempotency key conflicts with existing request")

// StoredResponse is what a replay sends back.
type StoredResponse struct {
	Status int
	Body   json.RawMessage
}

type IdempotencyStore struct {
	db querier.Querier
}

func NewIdempotencyStore(db querier.Querier) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (s *IdempotencyStore) Check(ctx context.Context, tenantID, userID, endpoint, key, requestHash string) (StoredResponse, bool, error) {
	var storedHash string
	var stored StoredResponse
	err := s.db.QueryRow(ctx, `
    SELECT request_hash, status, response_json
    FROM idempotency_keys
    WHERE tenant_id = $1 AND user_id = $2 AND key = $3 AND endpoint = $4
  `, tenantID, userID, key, endpoint).Scan(&storedHash, &stored.Status, &stored.Body)
	if errors.Is(err, pgx.ErrNoRows) {
		return StoredResponse{}, false, nil
	}
	if err != nil {
		return StoredResponse{}, false, err
	}
	if storedHash != requestHash {
		return StoredResponse{}, false, ErrIdempotencyConflict
	}
	return stored, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, tenantID, userID, endpoint, key, requestHash string, resp StoredResponse) error {
	tag, err := s.db.Exec(ctx, `
    INSERT INTO idempotency_keys (tenant_id, user_id, key, endpoint, request_hash, status, response_json)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (tenant_id, user_id, key, endpoint)
    DO UPDATE SET response_json = EXCLUDED.response_json, status = EXCLUDED.status
    WHERE idempotency_keys.request_hash = EXCLUDED.request_hash
  `, tenantID, userID, key, endpoint, requestHash, resp.Status, []byte(resp.Body))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIdempotencyConflict
	}
	return nil
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}

// Idempotency replays the first successful response of a POST, PUT or PATCH
// carrying an Idempotency-Key header. Reusing a key with a different body is
// a 409. Requests without the header or without a user pass straight through.
func Idempotency(store *IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if store == nil || key == "" || !isWrite(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			user, ok := GetUser(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			requestID := GetRequestID(r.Context())

			payload, err := io.ReadAll(r.Body)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
					return
				}
				api.Fail(w, http.StatusBadRequest, "invalid_body", "failed to read request body", requestID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(payload))

			endpoint := r.Method + " " + r.URL.Path
			hash := RequestHash(payload)
			stored, found, err := store.Check(r.Context(), user.TenantID, user.UserID, endpoint, key, hash)
			if errors.Is(err, ErrIdempotencyConflict) {
				api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key was used with a different request", requestID)
				return
			}
			if err != nil {
				slog.Error("idempotency check failed", "err", err, "request_id", requestID)
				api.Fail(w, http.StatusInternalServerError, "idempotency_error", "idempotency check failed", requestID)
				return
			}
			if found {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Idempotent-Replayed", "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}

			capture := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(capture, r)
			if capture.status < 200 || capture.status >= 300 || !json.Valid(capture.body.Bytes()) {
				return
			}
			resp := StoredResponse{Status: capture.status, Body: capture.body.Bytes()}
			if err := store.Save(r.Context(), user.TenantID, user.UserID, endpoint, key, hash, resp); err != nil {
				slog.Warn("idempotency save failed", "err", err, "request_id", requestID)
			}
		})
	}
}

func isWrite(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

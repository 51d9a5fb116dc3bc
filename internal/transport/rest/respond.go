package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/genius-progression/internal/domain"
	"github.com/heartmarshall/genius-progression/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON object from the body. Unknown fields are
// rejected so typos in client payloads surface as 400s.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// handleError maps domain errors to HTTP statuses. Unexpected errors are
// logged and reported as a generic 500.
func handleError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		resp := errorResponse{Error: "validation error"}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
			}
		}
		writeJSON(w, http.StatusBadRequest, resp)

	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")

	case errors.Is(err, domain.ErrNoHearts):
		writeError(w, http.StatusConflict, "no hearts left")

	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")

	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")

	default:
		attrs := append([]slog.Attr{slog.String("error", err.Error())}, ctxutil.LogAttrs(ctx)...)
		log.LogAttrs(ctx, slog.LevelError, "unexpected error", attrs...)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// logWarning reports a persistence warning attached to a successful result.
func logWarning(ctx context.Context, log *slog.Logger, op string, warning error) {
	if warning == nil {
		return
	}
	attrs := append([]slog.Attr{
		slog.String("op", op),
		slog.String("error", warning.Error()),
	}, ctxutil.LogAttrs(ctx)...)
	log.LogAttrs(ctx, slog.LevelWarn, "state not persisted", attrs...)
}

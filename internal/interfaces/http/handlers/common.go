package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

// DefaultMaxBodySize bounds request bodies when the handler is not given a
// limit.
const DefaultMaxBodySize int64 = 4 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeAppError maps err to its HTTP status through the error code table.
// Server-side failures are logged and their message masked.
func writeAppError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	resp := ErrorResponse{RequestID: logging.RequestIDFromContext(r.Context())}
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	if appErr, ok := errors.AsAppError(err); ok {
		resp.Code = string(appErr.Code)
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	} else {
		resp.Code = string(errors.ErrCodeInternal)
	}

	if status >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error("request failed",
			logging.String("path", r.URL.Path),
			logging.String(logging.FieldErrorCode, resp.Code),
			logging.Err(err))
		resp.Message = errors.DefaultMessageForCode(errors.ErrorCode(resp.Code))
		resp.Detail = ""
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads a single JSON document of at most limit bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) error {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return errors.Newf(errors.CodeInvalidParam, "request body exceeds %d bytes", limit)
		}
		if stderrors.Is(err, io.EOF) {
			return errors.InvalidParam("request body is required")
		}
		return errors.Wrap(err, errors.CodeInvalidParam, fmt.Sprintf("malformed JSON body: %v", err))
	}
	return nil
}

//Personal.AI order the ending

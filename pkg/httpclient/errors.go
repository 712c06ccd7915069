package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
)

// errorBody accepts both the versioned envelope {"error":{"code","message"}}
// and the flat {"success":false,"error":"..."} shape.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

type structuredError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// maps it to an error carrying the same semantics.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", upstream, resp.StatusCode, err)
	}

	message := string(raw)
	var body errorBody
	if json.Unmarshal(raw, &body) == nil && len(body.Error) > 0 {
		var structured structuredError
		var flat string
		switch {
		case json.Unmarshal(body.Error, &structured) == nil && structured.Message != "":
			message = structured.Message
		case json.Unmarshal(body.Error, &flat) == nil:
			message = flat
		}
	}

	qualified := fmt.Sprintf("%s: %s", upstream, message)
	switch status := resp.StatusCode; {
	case status == http.StatusNotFound:
		return apperrors.NotFound(upstream, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusTooManyRequests:
		return apperrors.RateLimited()
	case status >= 500:
		return apperrors.Unavailable(upstream, fmt.Errorf("status %d: %s", status, message))
	default:
		return fmt.Errorf("%s returned status %d: %s", upstream, status, message)
	}
}

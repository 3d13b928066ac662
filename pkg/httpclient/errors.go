package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/mohamed-2473/Store/pkg/errors"
)

// maxErrorBody bounds how much of an error reply is read.
const maxErrorBody = 1 << 20

// upstreamErrorBody covers the error shapes seen from catalog APIs:
// {"message": "..."} and {"error": {"code": "...", "message": "..."}}.
type upstreamErrorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError: 404 becomes a not-found error, every other status a
// network error carrying the upstream status.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apperrors.Network(
			fmt.Sprintf("%s returned status %d", serviceName, resp.StatusCode),
			resp.StatusCode,
			fmt.Errorf("read body: %w", err),
		)
	}

	message := string(bodyBytes)
	var body upstreamErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		switch {
		case body.Error != nil && body.Error.Message != "":
			message = body.Error.Message
		case body.Message != "":
			message = body.Message
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return mapUpstreamError(resp.StatusCode, message, serviceName)
}

// mapUpstreamError translates an upstream status code into the error taxonomy.
func mapUpstreamError(status int, message, serviceName string) error {
	if status == http.StatusNotFound {
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("%s: %s", serviceName, message),
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	}
	return apperrors.Network(
		fmt.Sprintf("%s returned status %d: %s", serviceName, status, message),
		status, nil,
	)
}

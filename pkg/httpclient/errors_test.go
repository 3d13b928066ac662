package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mohamed-2473/Store/pkg/errors"
)

// makeResponse creates an *http.Response with the given status code and body string.
func makeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(301))
	assert.False(t, IsSuccess(404))
}

func TestParseResponseError_MessageBody_NotFound(t *testing.T) {
	resp := makeResponse(http.StatusNotFound, `{"message":"Product with id '999' not found"}`)
	err := ParseResponseError(resp, "catalog")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Contains(t, appErr.Message, "Product with id '999' not found")
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsNetwork(err))
}

func TestParseResponseError_StructuredBody(t *testing.T) {
	resp := makeResponse(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"no such product"}}`)
	err := ParseResponseError(resp, "catalog")

	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "no such product")
}

func TestParseResponseError_BadRequestIsNetwork(t *testing.T) {
	resp := makeResponse(http.StatusBadRequest, `{"message":"Invalid product id 'abc'"}`)
	err := ParseResponseError(resp, "catalog")

	assert.True(t, apperrors.IsNetwork(err))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, err.Error(), "Invalid product id")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := makeResponse(http.StatusBadGateway, `<html>bad gateway</html>`)
	err := ParseResponseError(resp, "catalog")

	assert.True(t, apperrors.IsNetwork(err))
	assert.Contains(t, err.Error(), "<html>bad gateway</html>")
	assert.Contains(t, err.Error(), "502")
}

func TestParseResponseError_EmptyBodyUsesStatusText(t *testing.T) {
	resp := makeResponse(http.StatusServiceUnavailable, ``)
	err := ParseResponseError(resp, "catalog")

	assert.True(t, apperrors.IsNetwork(err))
	assert.Contains(t, err.Error(), "Service Unavailable")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestParseResponseError_BodyReadFailure(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusInternalServerError, Body: io.NopCloser(failingReader{})}
	err := ParseResponseError(resp, "catalog")

	assert.True(t, apperrors.IsNetwork(err))
	assert.Contains(t, err.Error(), "read failed")
}

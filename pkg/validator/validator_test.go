package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name    string `validate:"required"`
	BaseURL string `validate:"required,url"`
	Page    int    `validate:"gte=1,lte=1000"`
}

func TestValidate_Success(t *testing.T) {
	s := testStruct{Name: "catalog", BaseURL: "https://dummyjson.com", Page: 3}
	assert.NoError(t, Validate(s))
}

func TestValidate_PointerToStruct(t *testing.T) {
	s := &testStruct{Name: "catalog", BaseURL: "https://dummyjson.com", Page: 1}
	assert.NoError(t, Validate(s))
}

func TestValidate_MissingRequired(t *testing.T) {
	s := testStruct{BaseURL: "https://dummyjson.com", Page: 1}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_InvalidURL(t *testing.T) {
	s := testStruct{Name: "catalog", BaseURL: "not a url", Page: 1}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid URL", valErr.Fields()["BaseURL"])
}

func TestValidate_OutOfRange(t *testing.T) {
	s := testStruct{Name: "catalog", BaseURL: "https://dummyjson.com", Page: 0}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Page"], "greater than or equal to 1")
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(testStruct{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "BaseURL")
	assert.Contains(t, fields, "Page")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(testStruct{BaseURL: "https://dummyjson.com", Page: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Name'")
	assert.Contains(t, err.Error(), "is required")
}

type oneofStruct struct {
	Sort string `validate:"oneof=default price-asc price-desc"`
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(oneofStruct{Sort: "random"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Sort"], "one of")
	assert.Contains(t, valErr.Fields()["Sort"], "price-asc")
}

type minMaxStruct struct {
	Short string `validate:"min=3"`
	Long  string `validate:"max=5"`
}

func TestValidate_MinMax(t *testing.T) {
	err := Validate(minMaxStruct{Short: "ab", Long: "toolongstring"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields["Short"], "at least 3")
	assert.Contains(t, fields["Long"], "at most 5")
}

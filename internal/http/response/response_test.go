package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reporting", nil)

	WriteError(rr, req, "Missing token")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"error": "Missing token"}, body)
}

func TestWriteRows_EmptySliceIsArray(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reporting", nil)

	WriteRows(rr, req, []int{})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestValidationError(t *testing.T) {
	type query struct {
		Period string `validate:"omitempty,len=7"`
		Year   string `validate:"omitempty,numeric,len=4"`
	}

	err := validator.New().Struct(query{Period: "2024-3", Year: "20x4"})
	require.Error(t, err)

	msg := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, msg, "field Period must be 7 characters long")
	assert.Contains(t, msg, "field Year can contain only numbers")
}

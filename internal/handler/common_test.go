package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePagination_Defaults(t *testing.T) {
	page, size, offset := parsePagination(ctxWithQuery(t, ""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
	assert.Equal(t, 0, offset)
}

func TestParsePagination_ExplicitValues(t *testing.T) {
	page, size, offset := parsePagination(ctxWithQuery(t, "page=3&page_size=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)
	assert.Equal(t, 50, offset)
}

func TestParsePagination_CapsPageSize(t *testing.T) {
	_, size, _ := parsePagination(ctxWithQuery(t, "page_size=500"))
	assert.Equal(t, 100, size)
}

func TestParsePagination_IgnoresGarbage(t *testing.T) {
	page, size, offset := parsePagination(ctxWithQuery(t, "page=abc&page_size=-4"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
	assert.Equal(t, 0, offset)
}

func TestGetUserID_Representations(t *testing.T) {
	e := echo.New()
	for _, v := range []interface{}{uint64(7), int(7), int64(7), float64(7), "7"} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set("user_id", v)
		got, err := getUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, uint64(7), got)
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := getUserID(c)
	assert.Error(t, err)
}

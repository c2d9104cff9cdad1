package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Giuseppe84/vespera/internal/service"
)

func performFail(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fail(c, err)
	return w
}

func TestFailStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &service.Error{Kind: service.KindNotFound, Message: "lamp not found"}, http.StatusNotFound},
		{"bad request", &service.Error{Kind: service.KindBadRequest, Message: "cart is empty"}, http.StatusBadRequest},
		{"forbidden", &service.Error{Kind: service.KindForbidden, Message: "access denied"}, http.StatusForbidden},
		{"conflict", &service.Error{Kind: service.KindConflict, Message: "duplicate"}, http.StatusConflict},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performFail(tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestFailHidesInternalDetails(t *testing.T) {
	w := performFail(errors.New("dsn user:pass@tcp(db:3306)/vespera"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "dsn")
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = paramID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/f3rnandojr/newapp-coffe/internal/apierror"
	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newErrorRouter mounts a route that fails with err through respondError,
// behind the same ErrorHandler middleware chain the real router uses.
func newErrorRouter(err error) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		respondError(c, err)
	})
	return r
}

func TestRespondErrorInternalWritesSingleResponse(t *testing.T) {
	r := newErrorRouter(errors.New("pq: connection reset"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Erro interno do servidor", body.Message)

	// The internal detail is never echoed to the client.
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestRespondErrorNotFound(t *testing.T) {
	r := newErrorRouter(apierror.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "registro não encontrado")
}

func TestRespondErrorInsufficientStock(t *testing.T) {
	r := newErrorRouter(&apierror.InsufficientStockError{Available: 2})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Estoque atual: 2")
}

func newQueryRouter(bound *dto.ProductFilter) *gin.Engine {
	r := gin.New()
	r.GET("/list", func(c *gin.Context) {
		var filter dto.ProductFilter
		if !bindQuery(c, &filter) {
			return
		}
		*bound = filter
		c.Status(http.StatusOK)
	})
	return r
}

func TestBindQueryRejectsOversizedLimit(t *testing.T) {
	var bound dto.ProductFilter
	r := newQueryRouter(&bound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/list?limit=10000", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "max", body.Fields["Limit"])
}

func TestBindQueryRejectsZeroPage(t *testing.T) {
	var bound dto.ProductFilter
	r := newQueryRouter(&bound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/list?page=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBindQueryAppliesDefaults(t *testing.T) {
	var bound dto.ProductFilter
	r := newQueryRouter(&bound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/list?category=Bebidas", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bebidas", bound.Category)
	assert.Equal(t, 1, bound.Page)
	assert.Equal(t, 50, bound.Limit)
}

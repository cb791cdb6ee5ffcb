package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/f3rnandojr/newapp-coffe/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, validationFields(err))
		return false
	}
	return true
}

// bindQuery binds the query string and runs the filter's validator tags, so
// bounds like limit's max actually reject oversized requests.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, validationFields(err))
		return false
	}
	return true
}

func validationFields(err error) *apierror.ValidationError {
	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return apierror.NewValidation(fields)
}

// respondError maps service errors to HTTP statuses:
//
//	ErrNotFound                → 404
//	InsufficientStockError     → 400 (message carries the current stock)
//	InsufficientBalanceError   → 400 (message carries the remaining balance)
//	ValidationError            → 422
//	anything else              → attached to the context; the ErrorHandler
//	                             middleware logs it and writes the single 500
func respondError(c *gin.Context, err error) {
	var (
		validationErr *apierror.ValidationError
		stockErr      *apierror.InsufficientStockError
		balanceErr    *apierror.InsufficientBalanceError
	)
	switch {
	case errors.Is(err, apierror.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(apierror.ErrNotFound.Error()))
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, apierror.New(stockErr.Error()))
	case errors.As(err, &balanceErr):
		c.JSON(http.StatusBadRequest, apierror.New(balanceErr.Error()))
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, validationErr)
	default:
		_ = c.Error(err)
		c.Abort()
	}
}

// parseID parses the :id route parameter as a UUID; writes the 400
// response itself on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

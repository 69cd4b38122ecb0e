package handler

import (
	"errors"
	"net/http"
	"reflect"

	"tillpos/internal/apierror"
	"tillpos/internal/integration"
	"tillpos/internal/model"
	"tillpos/internal/money"
	"tillpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Register money.Money as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type money.Money").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(money.Money); ok {
			f, _ := v.Decimal().Float64()
			return f
		}
		return nil
	}, money.Money{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeSaleError maps register errors onto HTTP statuses. Unknown errors
// become a 400 with the error text; the register never leaks internals
// through its error strings.
func writeSaleError(c *gin.Context, err error) {
	var notFound *integration.NotFoundError
	var sysErr *service.SystemError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &sysErr), errors.Is(err, integration.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, apierror.New("a required provider is unavailable"))
	case errors.Is(err, service.ErrNoActiveSale), errors.Is(err, model.ErrIllegalState):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

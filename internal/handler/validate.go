package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

// newValidator reports violations under the json field name clients actually
// sent, not the Go struct field name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// bindAndValidate decodes the body and runs struct validation, turning the
// first violation into a 400 that names the offending field.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if ok := isValidationErrors(err, &verrs); ok && len(verrs) > 0 {
			field := verrs[0].Field()
			return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
				Message: field + " is missing or invalid",
				Field:   field,
			})
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	return nil
}

func isValidationErrors(err error, out *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*out = verrs
	}
	return ok
}

package v1

import (
	"errors"
	"net/http"
	"strings"

	"go-placement-backend/pkg/apperror"
	"go-placement-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// bindError converts a request binding failure into a 400 with one readable
// message per violated field
func bindError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.New(http.StatusBadRequest, strings.Join(validation.FormatErrors(verrs), "; "), err)
	}
	return apperror.BadRequest(err.Error())
}

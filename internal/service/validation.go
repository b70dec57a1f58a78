package service

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports violations under the field's `msg` tag, which holds
// the message key shown to the user.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if key := fld.Tag.Get("msg"); key != "" {
			return key
		}
		return fld.Name
	})
	return v
}

// uploadGuard rejects a submission with neither a file nor text.
type uploadGuard struct {
	HasFile bool
	Text    string `validate:"required_without=HasFile" msg:"error.noInput"`
}

// askGuard checks the session before the question.
type askGuard struct {
	SessionID string `validate:"required" msg:"error.noSession"`
	Question  string `validate:"required" msg:"error.emptyQuestion"`
}

// violation returns the message key of the first failed check, or "".
func violation(guard any) string {
	err := validate.Struct(guard)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return "error.generic"
}

package models

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/harentsoaR/doctor-portfolio-api/internal/apperrors"
)

// DateLayout is the ISO 8601 calendar date accepted for appointments.
const DateLayout = "2006-01-02"

// NormalizeEmail lowercases the domain of addr. The local part is kept as
// given since it may be case sensitive.
func NormalizeEmail(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return addr
	}
	return addr[:at+1] + strings.ToLower(addr[at+1:])
}

var registerOnce sync.Once

// RegisterValidators installs the custom rules and json field naming on
// gin's binding validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("isodate", isISODate)
	})
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

var ruleMessages = map[string]string{
	"required": "field required",
	"email":    "value is not a valid email address",
	"isodate":  "must be a date in YYYY-MM-DD format",
}

// BindError converts an error from gin's ShouldBindJSON into a
// ValidationError with field-level detail.
func BindError(err error) *apperrors.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &apperrors.ValidationError{}
		for _, fe := range verrs {
			msg, ok := ruleMessages[fe.Tag()]
			if !ok && fe.Tag() == "oneof" {
				msg = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
			} else if !ok {
				msg = "failed rule " + fe.Tag()
			}
			out.Fields = append(out.Fields, apperrors.FieldError{Field: fe.Field(), Message: msg})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperrors.NewValidationError(field, "wrong type, expected "+typeErr.Type.String())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperrors.NewValidationError("body", "invalid JSON body")
	}

	return apperrors.NewValidationError("body", err.Error())
}

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var (
	// ISO-8601 instant in UTC, seconds required, fraction optional.
	iso8601Pattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
)

// Validator checks decoded request bodies against their struct tags.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the iso8601 and username rules registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("iso8601", isISO8601)
	_ = v.RegisterValidation("username", isUsername)
	return &Validator{v: v}
}

// Struct validates s, reporting failures as common.ErrorValidation.
func (v *Validator) Struct(s any) error {
	if err := v.v.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// Decode reads exactly one JSON object from the request body into T,
// rejecting unknown fields and trailing data, then validates it.
func Decode[T any](v *Validator, r *http.Request) (T, error) {
	var out T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return out, fmt.Errorf("%w: unexpected data after JSON body", common.ErrorValidation)
	}
	if err := v.Struct(out); err != nil {
		return out, err
	}
	return out, nil
}

func isISO8601(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !iso8601Pattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

func isUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

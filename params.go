package datamall

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ParamSkip is the offset parameter accepted by list endpoints. The service
// returns at most 500 records per call; callers page by passing multiples of
// 500.
const ParamSkip = "$skip"

// Params builds query parameters, dropping empty values.
//
// Example:
//
//	p := datamall.Params("BusStopCode", "83139", "ServiceNo", "")
//	// p.Encode() == "BusStopCode=83139"
func Params(kv ...string) url.Values {
	v := make(url.Values, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			v.Set(kv[i], kv[i+1])
		}
	}
	return v
}

// SkipParams returns the $skip parameter, or nil when skip is zero.
func SkipParams(skip int) url.Values {
	if skip <= 0 {
		return nil
	}
	return url.Values{ParamSkip: []string{strconv.Itoa(skip)}}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateParams checks a struct of call parameters against its `validate`
// tags. Failures are reported as KindResolve errors for op.
func ValidateParams(op string, params any) error {
	err := paramValidator().Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe.Field(), fe))
		}
		return &Error{Kind: KindResolve, Op: op, Message: strings.Join(msgs, "; "), Err: err}
	}
	return ResolveError(op, err)
}

func formatFieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of [" + fe.Param() + "]"
	case "len":
		return field + " must be " + fe.Param() + " characters"
	case "numeric":
		return field + " must be numeric"
	case "latitude", "longitude":
		return field + " must be a valid " + fe.Tag()
	default:
		if fe.Param() != "" {
			return field + " failed " + fe.Tag() + "=" + fe.Param()
		}
		return field + " failed " + fe.Tag()
	}
}

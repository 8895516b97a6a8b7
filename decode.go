package datamall

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	snippetLen         = 200
	upstreamMessageLen = 256
)

// Envelope is the {"value": ...} wrapper the service puts around most
// payloads. Decoding fails if the value member is missing.
type Envelope[T any] struct {
	Metadata string `json:"odata.metadata,omitempty"`
	Value    T      `json:"value"`
}

// UnmarshalJSON requires the value member to be present and non-null.
func (e *Envelope[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Metadata string          `json:"odata.metadata"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Value) == 0 || bytes.Equal(bytes.TrimSpace(raw.Value), []byte("null")) {
		return errors.New(`missing "value" member`)
	}
	var v T
	if err := json.Unmarshal(raw.Value, &v); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	e.Metadata = raw.Metadata
	e.Value = v
	return nil
}

func (e *Envelope[T]) payload() any { return e.Value }

// decodeInto unmarshals body into a fresh value of dst's element type and
// assigns it to *dst only on success.
func decodeInto(body []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("destination must be a non-nil pointer, got %T", dst)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errors.New("empty body")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return errors.New("null body")
	}

	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(trimmed, tmp.Interface()); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}

	decoded := tmp.Interface()
	if env, ok := decoded.(interface{ payload() any }); ok {
		decoded = env.payload()
	}
	if err := checkShape(reflect.ValueOf(decoded)); err != nil {
		return err
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}

// checkShape runs the `validate` tags of every struct reachable through
// pointers, slices and arrays in v.
func checkShape(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return checkShape(v.Elem())
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := checkShape(v.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	case reflect.Struct:
		if !v.CanInterface() {
			return nil
		}
		err := paramValidator().Struct(v.Interface())
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, formatFieldError(fe.Namespace(), fe))
			}
			return fmt.Errorf("unexpected shape: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// upstreamMessage extracts the service's error message from a failure body.
func upstreamMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var doc struct {
		Fault struct {
			FaultString string `json:"faultstring"`
		} `json:"fault"`
		Message string `json:"message"`
		Error   string `json:"error"`
		OData   struct {
			Message struct {
				Value string `json:"value"`
			} `json:"message"`
		} `json:"odata.error"`
	}
	if json.Unmarshal(trimmed, &doc) == nil {
		switch {
		case doc.Fault.FaultString != "":
			return doc.Fault.FaultString
		case doc.Message != "":
			return doc.Message
		case doc.OData.Message.Value != "":
			return doc.OData.Message.Value
		case doc.Error != "":
			return doc.Error
		}
	}
	return snippet(trimmed, upstreamMessageLen)
}

// snippet returns at most n bytes of body as a single-line string.
func snippet(body []byte, n int) string {
	if len(body) > n {
		body = body[:n]
		for i := 0; i < utf8.UTFMax && len(body) > 0 && !utf8.Valid(body); i++ {
			body = body[:len(body)-1]
		}
		if !utf8.Valid(body) {
			return strconv.Quote(string(body))
		}
	}
	return strings.Join(strings.Fields(string(body)), " ")
}

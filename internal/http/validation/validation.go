package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError maps a gin bind error to form field -> message. dst is the
// struct pointer that was bound; its form tags name the fields.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(dst, fe.StructField())] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// type mismatches and malformed bodies
	out["_"] = "The form could not be read."
	return out
}

// First returns any one message, preferring field errors over the generic one.
func (fe FieldErrors) First() string {
	for k, v := range fe {
		if k != "_" {
			return v
		}
	}
	return fe["_"]
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "min", "gte":
		return "Must be at least " + param + "."
	case "max", "lte":
		return "Must be at most " + param + "."
	case "uuid", "uuid4":
		return "Must be a valid identifier."
	default:
		return "Invalid value."
	}
}

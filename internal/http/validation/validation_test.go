package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type form struct {
	ProductID int64 `form:"product_id" validate:"required,gte=1"`
	Quantity  int   `form:"quantity,omitempty" validate:"omitempty,gte=1,lte=99"`
	Note      string
}

func TestFromBindError(t *testing.T) {
	v := validator.New()

	err := v.Struct(form{Quantity: 120})
	fe := FromBindError(err, &form{})
	assert.Equal(t, FieldErrors{
		"product_id": "This field is required.",
		"quantity":   "Must be at most 99.",
	}, fe)

	fe = FromBindError(errors.New("strconv.ParseInt: parsing \"x\""), &form{})
	assert.Equal(t, "The form could not be read.", fe.First())
}

func TestFieldErrors_First(t *testing.T) {
	assert.Equal(t, "a", FieldErrors{"_": "generic", "quantity": "a"}.First())
	assert.Equal(t, "", FieldErrors{}.First())
}

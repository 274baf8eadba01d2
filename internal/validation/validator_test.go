package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `json:"email" validate:"required,email"`
	Number int    `json:"surah_number" validate:"min=1,max=114"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(sample{Email: "a@b.co", Number: 2}))

	err := v.Validate(sample{Email: "nope", Number: 115, Role: "root"})
	require.Error(t, err)

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must not exceed 114", fields["surah_number"])
	assert.Equal(t, "must be one of: user admin", fields["role"])
	assert.Contains(t, err.Error(), "validation failed")
}

package validator

import (
	"testing"

	domainerrors "minibank/internal/domain/errors"
	"minibank/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationForm struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FirstName   string  `json:"firstName" validate:"required,max=100"`
	LastName    string  `json:"lastName" validate:"required,max=100"`
	PhoneNumber *string `json:"phoneNumber"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type renameForm struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
}

func asAppError(t *testing.T, err error) domainerrors.AppError {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))

	return appErr
}

func TestValidate_ValidInputPasses(t *testing.T) {
	v := New()

	phone := "+886912345678"
	err := v.Validate(&registrationForm{
		Email:       "alice@example.com",
		Password:    "correct horse battery",
		FirstName:   "Alice",
		LastName:    "Lidell",
		PhoneNumber: &phone,
	})

	assert.NoError(t, err)
}

func TestValidate_NilOptionalPointersPass(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&renameForm{}))
}

func TestValidate_AllViolationsReportedInFieldOrder(t *testing.T) {
	v := New()

	dob := "not-a-timestamp"
	err := v.Validate(&registrationForm{
		Email:       "not-an-email",
		Password:    "short",
		DateOfBirth: &dob,
	})
	require.Error(t, err)

	appErr := asAppError(t, err)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t,
		"email must be a valid email, "+
			"password must be at least 8 characters long, "+
			"firstName is required, "+
			"lastName is required, "+
			"dateOfBirth must be a valid ISO 8601 timestamp",
		appErr.Message())
}

func TestValidate_MessageWording(t *testing.T) {
	v := New()

	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'a'
	}

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{
			name: "required",
			input: &struct {
				Email string `json:"email" validate:"required"`
			}{},
			want: "email is required",
		},
		{
			name: "email format",
			input: &struct {
				Email string `json:"email" validate:"email"`
			}{Email: "nope"},
			want: "email must be a valid email",
		},
		{
			name: "minimum length",
			input: &struct {
				Password string `json:"password" validate:"min=8"`
			}{Password: "short"},
			want: "password must be at least 8 characters long",
		},
		{
			name: "empty when present",
			input: func() any {
				empty := ""
				return &renameForm{FirstName: &empty}
			}(),
			want: "firstName must not be empty",
		},
		{
			name: "maximum length",
			input: &struct {
				FirstName string `json:"firstName" validate:"max=100"`
			}{FirstName: string(longName)},
			want: "firstName must be at most 100 characters long",
		},
		{
			name: "timestamp format",
			input: &struct {
				DateOfBirth string `json:"dateOfBirth" validate:"datetime=2006-01-02T15:04:05Z07:00"`
			}{DateOfBirth: "1990-06-15"},
			want: "dateOfBirth must be a valid ISO 8601 timestamp",
		},
		{
			name: "unmapped tag falls back to generic wording",
			input: &struct {
				ID string `json:"id" validate:"uuid"`
			}{ID: "nope"},
			want: "id is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.want, asAppError(t, err).Message())
		})
	}
}

func TestValidate_JSONNamesNotGoNames(t *testing.T) {
	v := New()

	err := v.Validate(&struct {
		EmailAddress string `json:"email" validate:"required"`
	}{})
	require.Error(t, err)

	msg := asAppError(t, err).Message()
	assert.Equal(t, "email is required", msg)
	assert.NotContains(t, msg, "EmailAddress")
}

func TestValidate_NonStructInput(t *testing.T) {
	v := New()

	err := v.Validate(42)
	require.Error(t, err)
	assert.Equal(t, "invalid request payload", asAppError(t, err).Message())
}

package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCollectsAllFieldFailures(t *testing.T) {
	fields := []Field{
		{Name: "email", Validators: []Validator{Required(), Email()}},
		{Name: "title", Validators: []Validator{Required()}},
		{Name: "time_spent", Validators: []Validator{Required(), PositiveInt()}},
	}
	values := Values{"email": "", "title": "", "time_spent": "-1"}

	errs := Run(context.Background(), values, fields)

	assert.Len(t, errs, 3)
	assert.Equal(t, "this field is required", errs["email"])
	assert.Equal(t, "this field is required", errs["title"])
	assert.Equal(t, "must be a positive number greater than 0", errs["time_spent"])
}

func TestRunShortCircuitsPerField(t *testing.T) {
	// With an empty value, Required fails first and Email never runs.
	fields := []Field{
		{Name: "email", Validators: []Validator{Required(), Email()}},
	}

	errs := Run(context.Background(), Values{"email": ""}, fields)

	assert.Equal(t, "this field is required", errs["email"])
}

func TestRunValidForm(t *testing.T) {
	fields := []Field{
		{Name: "email", Validators: []Validator{Required(), Email()}},
		{Name: "time_spent", Validators: []Validator{Required(), PositiveInt()}},
	}
	values := Values{"email": "a@example.com", "time_spent": "3"}

	errs := Run(context.Background(), values, fields)

	assert.Empty(t, errs)
}

func TestEmail(t *testing.T) {
	v := Email()
	ctx := context.Background()

	assert.NoError(t, v(ctx, nil, "a@example.com"))
	assert.Error(t, v(ctx, nil, "not-an-email"))
	assert.Error(t, v(ctx, nil, "Someone <a@example.com>"))
}

func TestMinLength(t *testing.T) {
	v := MinLength(2)
	ctx := context.Background()

	assert.Error(t, v(ctx, nil, "a"))
	assert.NoError(t, v(ctx, nil, "ab"))
}

func TestEqualTo(t *testing.T) {
	v := EqualTo("password2", "passwords must match")
	ctx := context.Background()

	form := Values{"password": "pw", "password2": "pw"}
	assert.NoError(t, v(ctx, form, "pw"))

	form["password2"] = "other"
	err := v(ctx, form, "pw")
	assert.EqualError(t, err, "passwords must match")
}

func TestPositiveInt(t *testing.T) {
	v := PositiveInt()
	ctx := context.Background()

	assert.Error(t, v(ctx, nil, ""))
	assert.Error(t, v(ctx, nil, "0"))
	assert.Error(t, v(ctx, nil, "-5"))
	assert.Error(t, v(ctx, nil, "three"))
	assert.NoError(t, v(ctx, nil, "1"))
	assert.NoError(t, v(ctx, nil, "12"))
}

func TestISODate(t *testing.T) {
	v := ISODate()
	ctx := context.Background()

	assert.NoError(t, v(ctx, nil, "2024-01-01"))
	assert.Error(t, v(ctx, nil, "01/01/2024"))
	assert.Error(t, v(ctx, nil, "2024-13-01"))
}

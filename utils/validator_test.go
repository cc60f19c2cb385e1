package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCustomFormatValidations(t *testing.T) {
	v := validator.New()
	RegisterCustomValidations(v)

	type payload struct {
		Start string `validate:"timeformat"`
		Date  string `validate:"dateformat"`
	}

	if err := v.Struct(payload{Start: "09:30", Date: "2024-05-01"}); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
	if err := v.Struct(payload{Start: "9:30am", Date: "2024-05-01"}); err == nil {
		t.Error("bad time format accepted")
	}
	if err := v.Struct(payload{Start: "09:30", Date: "01/05/2024"}); err == nil {
		t.Error("bad date format accepted")
	}
	if err := v.Struct(payload{Start: "25:00", Date: "2024-05-01"}); err == nil {
		t.Error("out-of-range hour accepted")
	}
}

func TestTimeAfterComparesClockOrder(t *testing.T) {
	v := validator.New()
	RegisterCustomValidations(v)

	type interval struct {
		Start string `validate:"timeformat"`
		End   string `validate:"timeformat,timeafter=Start"`
	}

	// Same-length HH:MM strings order lexicographically.
	if err := v.Struct(interval{Start: "10:00", End: "10:30"}); err != nil {
		t.Errorf("valid interval rejected: %v", err)
	}
	if err := v.Struct(interval{Start: "10:30", End: "10:00"}); err == nil {
		t.Error("inverted interval accepted")
	}
	if err := v.Struct(interval{Start: "10:00", End: "10:00"}); err == nil {
		t.Error("empty interval accepted")
	}
}

func TestTranslateValidationError(t *testing.T) {
	v := validator.New()
	RegisterCustomValidations(v)

	type payload struct {
		Email string `validate:"required,email"`
		Start string `validate:"timeformat"`
	}

	err := v.Struct(payload{Email: "", Start: "nope"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	msg := TranslateValidationError(err)
	if msg == "" || msg == err.Error() {
		t.Errorf("translation did not humanise the error: %q", msg)
	}
}

package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-calculations/internal/calculator"
	"github.com/sbilibin2017/gw-calculations/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("operation", func(fl validator.FieldLevel) bool {
		_, err := models.ParseOperationType(fl.Field().String())
		return err == nil
	})

	v.RegisterStructValidation(calculationRequestRules, CalculationRequest{})
	v.RegisterStructValidation(calculationUpdateRequestRules, CalculationUpdateRequest{})

	return v
}

// calculationRequestRules requires both operands and a non-zero divisor.
func calculationRequestRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(CalculationRequest)
	a, b := req.operands()
	if a == nil {
		sl.ReportError(req.A, "a", "A", "required", "")
	}
	if b == nil {
		sl.ReportError(req.B, "b", "B", "required", "")
		return
	}
	if op, err := models.ParseOperationType(req.Type); err == nil && op == models.OperationDivide && *b == 0 {
		sl.ReportError(req.B, "b", "B", "divisor", "")
	}
}

// calculationUpdateRequestRules rejects a zero divisor when the request
// itself names both.
func calculationUpdateRequestRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(CalculationUpdateRequest)
	_, b := req.operands()
	if b == nil || req.Type == nil {
		return
	}
	if op, err := models.ParseOperationType(*req.Type); err == nil && op == models.OperationDivide && *b == 0 {
		sl.ReportError(req.B, "b", "B", "divisor", "")
	}
}

// validationMessage turns validator errors into a single client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param()))
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must contain exactly %s numbers", fe.Field(), fe.Param()))
		case "operation":
			msgs = append(msgs, fmt.Sprintf("%s must be one of Add, Subtract, Multiply, Divide", fe.Field()))
		case "divisor":
			msgs = append(msgs, calculator.ErrDivisionByZero.Error())
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

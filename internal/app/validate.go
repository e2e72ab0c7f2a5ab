package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// Input forms checked before any store or catalog call.

type searchInput struct {
	Query string `validate:"required,max=100"`
}

type timerInput struct {
	Minutes int    `validate:"gte=0,lte=999"`
	Seconds int    `validate:"gte=0,lte=3599"`
	Total   int    `validate:"gt=0"`
	Label   string `validate:"max=40"`
}

type collectionInput struct {
	Name        string `validate:"required,max=50"`
	Description string `validate:"max=200"`
}

type ratingInput struct {
	Rating int `validate:"min=1,max=5"`
}

type servingsInput struct {
	Servings int `validate:"min=1,max=50"`
}

type noteInput struct {
	Text string `validate:"max=2000"`
}

type fontInput struct {
	Size string `validate:"oneof=small medium large xlarge"`
}

type inputValidator struct {
	validate *validator.Validate
}

func newInputValidator() *inputValidator {
	return &inputValidator{validate: validator.New()}
}

// check validates s and folds any failure into one readable
// domain.ErrInvalidInput.
func (v *inputValidator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max", "lte":
			if e.Kind() == reflect.String {
				msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
			}
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be more than %s", field, e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

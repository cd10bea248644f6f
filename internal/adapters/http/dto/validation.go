package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

// tagParts is the number of parts when splitting a struct tag by comma.
const tagParts = 2

// ErrValidation indicates a struct failed validation.
var ErrValidation = errors.New("validation failed")

var (
	validate     *validator.Validate
	validateOnce sync.Once

	conform     *mold.Transformer
	conformOnce sync.Once
)

// Validator returns the singleton validator instance.
// Field names in errors come from the uri or form tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"uri", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", tagParts)[0]
				if name != "" && name != "-" {
					return name
				}
			}

			return ""
		})

		_ = validate.RegisterValidation("slug", validateSlug)
	})

	return validate
}

// Conformer returns the singleton input scrubber.
func Conformer() *mold.Transformer {
	conformOnce.Do(func() {
		conform = modifiers.New()
	})

	return conform
}

// Validate validates a struct using the validator instance.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindQuery reads the request query string into query.Params, first value per
// key, with surrounding whitespace trimmed from every value.
func BindQuery(c *gin.Context) (query.Params, error) {
	params := query.FromValues(c.Request.URL.Query())

	for k, v := range params {
		if err := Conformer().Field(c.Request.Context(), &v, "trim"); err != nil {
			return nil, fmt.Errorf("scrubbing %s: %w", k, err)
		}
		params[k] = v
	}

	return params, nil
}

// PathParams are the identifiers accepted in resource paths.
type PathParams struct {
	ID   string `uri:"id" mod:"trim" validate:"omitempty,max=128,printascii"`
	Slug string `uri:"slug" mod:"trim,lcase" validate:"omitempty,max=200,slug"`
}

// BindPath binds and scrubs path parameters. An identifier that can never
// exist is reported as not found so storage is never consulted.
func BindPath(c *gin.Context) (PathParams, error) {
	var p PathParams
	if err := c.ShouldBindUri(&p); err != nil {
		return p, domain.NewNotFoundError("resource", "")
	}

	if err := Conformer().Struct(c.Request.Context(), &p); err != nil {
		return p, fmt.Errorf("scrubbing path: %w", err)
	}

	if err := Validate(p); err != nil {
		return p, domain.NewNotFoundError("resource", "")
	}

	return p, nil
}

// validateSlug accepts lowercase letters, digits and hyphens.
func validateSlug(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r != '-' && !unicode.IsDigit(r) && !unicode.IsLower(r) {
			return false
		}
	}

	return true
}

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
)

const tagRedisURL = "redis_url"

var validate = newValidator()

// newValidator reports fields by their koanf keys so that errors name the
// same paths an operator writes in YAML or APP_* variables.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strcase.ToSnake(f.Name)
		}

		return name
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c, _ := sl.Current().Interface().(CacheConfig)
		if c.Driver == CacheDriverRedis && c.Redis.URL == "" {
			sl.ReportError(c.Redis.URL, "redis.url", "URL", tagRedisURL, "")
		}
	}, CacheConfig{})

	return v
}

// Validate checks every section and reports all violations at once. The
// service refuses to start on error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

func describe(fe validator.FieldError) string {
	path := keyPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return path + " is required"
	case tagRedisURL:
		return path + " is required when cache.driver is redis"
	case "required_if":
		field, value, _ := strings.Cut(fe.Param(), " ")
		return fmt.Sprintf("%s is required when %s is %s", path, sibling(path, field), value)
	case "min":
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", path, sibling(path, fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", path, fe.Param())
	case "url":
		return path + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %q validation", path, fe.Tag())
	}
}

// keyPath drops the root type name: "Config.cache.redis.url" becomes
// "cache.redis.url".
func keyPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

// sibling names the Go field goField next to path using its snake_case key.
func sibling(path, goField string) string {
	key := strcase.ToSnake(goField)

	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i+1] + key
	}

	return key
}

package middleware

import (
	"errors"
	"fmt"
	"os"
)

// ValidatorFunc is a business rule checked before the action runs, such as
// a numeric limit or a path that must exist.
type ValidatorFunc func(ctx Context) error

// NamedValidator associates a name with a ValidatorFunc for error reporting.
type NamedValidator struct {
	Name string
	Fn   ValidatorFunc
}

// Custom wraps an arbitrary ValidatorFunc with a name for reporting.
func Custom(name string, fn ValidatorFunc) NamedValidator {
	return NamedValidator{Name: name, Fn: fn}
}

// Validate runs the validators in order and stops at the first failure.
// Errors that are not already a *ValidationError are wrapped in one named
// after the validator.
//
// Example:
//
//	middleware.Validate(
//	    middleware.Max("x", 100),
//	    middleware.File("config"),
//	)
func Validate(validators ...NamedValidator) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			for _, v := range validators {
				if v.Fn == nil {
					continue
				}
				if err := v.Fn(ctx); err != nil {
					var validationErr *ValidationError
					if errors.As(err, &validationErr) {
						return validationErr
					}
					return &ValidationError{Field: v.Name, Message: "validation failed", Cause: err}
				}
			}
			return next(ctx)
		}
	}
}

// lookup reads a parameter first, then an option.
func lookup(ctx Context, name string) (any, bool) {
	if v, ok := ctx.Param(name); ok {
		return v, true
	}
	return ctx.Option(name)
}

// numbers flattens a single number or a variadic list of numbers.
func numbers(v any) []float64 {
	switch value := v.(type) {
	case float64:
		return []float64{value}
	case []any:
		out := make([]float64, 0, len(value))
		for _, item := range value {
			if f, ok := item.(float64); ok {
				out = append(out, f)
			}
		}
		return out
	default:
		return nil
	}
}

// Range rejects numeric values of the named parameters or options outside
// [lower, upper]. Absent values pass.
func Range(lower, upper float64, names ...string) NamedValidator {
	return NamedValidator{Name: "range", Fn: func(ctx Context) error {
		for _, name := range names {
			v, ok := lookup(ctx, name)
			if !ok {
				continue
			}
			for _, f := range numbers(v) {
				if f < lower || f > upper {
					return &ValidationError{
						Field:   name,
						Value:   f,
						Message: fmt.Sprintf("%s must be between %g and %g", name, lower, upper),
					}
				}
			}
		}
		return nil
	}}
}

// Max rejects numeric values of the named parameter or option above limit.
func Max(name string, limit float64) NamedValidator {
	v := Range(-1<<53, limit, name)
	v.Name = "max"
	return v
}

// File ensures the named string parameters or options point to existing
// files.
func File(names ...string) NamedValidator {
	return NamedValidator{Name: "file_exists", Fn: pathCheck(names, validateFileExists, "file")}
}

// Dir ensures the named string parameters or options point to existing
// directories.
func Dir(names ...string) NamedValidator {
	return NamedValidator{Name: "directory_exists", Fn: pathCheck(names, validateDirectoryExists, "directory")}
}

func pathCheck(names []string, check func(string) error, kind string) ValidatorFunc {
	return func(ctx Context) error {
		for _, name := range names {
			v, ok := lookup(ctx, name)
			if !ok {
				continue
			}
			path, isString := v.(string)
			if !isString || path == "" {
				continue
			}
			if err := check(path); err != nil {
				return &ValidationError{
					Field:   name,
					Value:   path,
					Message: fmt.Sprintf("%s validation failed for '%s'", kind, name),
					Cause:   err,
				}
			}
		}
		return nil
	}
}

func validateFileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func validateDirectoryExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// Package validation checks request payloads against their struct tags and
// renders the failures as per-field messages plus a one-line summary.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("email_pattern", isEmail); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("password_strength", isStrongPassword); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("max_bytes", hasMaxBytes); err != nil {
		panic(err)
	}
}

// Error is a validation failure. Message summarizes the first failure,
// Fields maps each failing field path to its messages.
type Error struct {
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error for a single field.
func NewError(field, message string) *Error {
	return &Error{
		Message: summary(field, message, 1),
		Fields:  map[string][]string{field: {message}},
	}
}

// Struct validates v and returns *Error when any field fails.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Fields: make(map[string][]string, len(fieldErrs))}
	for i, fe := range fieldErrs {
		path := fieldPath(fe)
		msg := message(fe)
		out.Fields[path] = append(out.Fields[path], msg)
		if i == 0 {
			out.Message = summary(path, msg, len(fieldErrs))
		}
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace, "RegisterRequest.email" becomes "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Is required"
	case "min":
		if fe.Param() == "1" {
			return "Is required"
		}
		return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "max_bytes":
		return fmt.Sprintf("Must contain at most %s byte(s)", fe.Param())
	case "email_pattern":
		return "Is not valid format"
	case "password_strength":
		return "At least contain lower char, upper char & number"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "Is not valid"
	}
}

// summary renders "Email is required & 2 other errors".
func summary(path, msg string, total int) string {
	var b strings.Builder
	b.WriteString(capitalize(path))
	b.WriteByte(' ')
	b.WriteString(lowerFirst(msg))
	if rest := total - 1; rest > 0 {
		noun := "errors"
		if rest == 1 {
			noun = "error"
		}
		fmt.Fprintf(&b, " & %d other %s", rest, noun)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func isEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// hasMaxBytes limits the encoded length, which is what bcrypt counts.
func hasMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(err)
	}
	return len(fl.Field().String()) <= limit
}

func isStrongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

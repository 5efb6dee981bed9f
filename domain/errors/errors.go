// Package errors provides the runtime's error taxonomy.
// Every error type matches its sentinel through errors.Is and can be
// inspected with errors.As.
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/yan-lang/yan-runtime/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// Sentinels for errors.Is checks.
var (
	ErrAttributeMissing           = stdErrors.New("attribute missing")
	ErrNotConstructible           = stdErrors.New("not constructible")
	ErrUnsupportedNativeModule    = stdErrors.New("unsupported native module")
	ErrInvalidImportSpecification = stdErrors.New("invalid import specification")
	ErrModuleNotFound             = stdErrors.New("module not found")
	ErrParseFailure               = stdErrors.New("parse failure")
	ErrNotImplemented             = stdErrors.New("not implemented")
	ErrArity                      = stdErrors.New("wrong number of arguments")
	ErrArgumentType               = stdErrors.New("wrong argument type")
	ErrUnknownBuiltin             = stdErrors.New("unknown builtin")
	ErrGuestPanic                 = stdErrors.New("panic")
	ErrInvalidMode                = stdErrors.New("invalid file open mode")
	ErrFormat                     = stdErrors.New("bad format string")
)

// DetailedError is implemented by error types that can describe themselves
// as a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// AttributeMissingError is returned when reading a key absent from an object.
type AttributeMissingError struct {
	Name string
}

func (e *AttributeMissingError) Error() string {
	return fmt.Sprintf("attribute %q not found", e.Name)
}

func (e *AttributeMissingError) Is(target error) bool {
	return target == ErrAttributeMissing
}

// ToErrorDetail implements DetailedError.
func (e *AttributeMissingError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "attribute", Code: e.Name, IsNotFound: true}
}

// NotConstructibleError is returned when an object without the constructor
// markers is called as a constructor.
type NotConstructibleError struct {
	Keys   []string // key set of the object at the time of the call
	Reason string
}

func (e *NotConstructibleError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing __cls__ or __init__"
	}
	return fmt.Sprintf("object is not constructible (%s); keys: [%s]", reason, strings.Join(e.Keys, ", "))
}

func (e *NotConstructibleError) Is(target error) bool {
	return target == ErrNotConstructible
}

// ToErrorDetail implements DetailedError.
func (e *NotConstructibleError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "construct",
		Details: map[string]any{"keys": e.Keys},
	}
}

// UnsupportedNativeModuleError is returned for "@"-prefixed module names.
type UnsupportedNativeModuleError struct {
	Name      string
	Operation string // "require" or "import"
}

func (e *UnsupportedNativeModuleError) Error() string {
	op := e.Operation
	if op == "" {
		op = "require"
	}
	return fmt.Sprintf("%s of native module %q is not supported by the host runtime", op, e.Name)
}

func (e *UnsupportedNativeModuleError) Is(target error) bool {
	return target == ErrUnsupportedNativeModule
}

// ToErrorDetail implements DetailedError.
func (e *UnsupportedNativeModuleError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "module", Code: "native"}
}

// InvalidImportSpecificationError is returned for malformed module names.
type InvalidImportSpecificationError struct {
	Name   string
	Reason string
}

func (e *InvalidImportSpecificationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid import specification %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid import specification %q", e.Name)
}

func (e *InvalidImportSpecificationError) Is(target error) bool {
	return target == ErrInvalidImportSpecification
}

// ToErrorDetail implements DetailedError.
func (e *InvalidImportSpecificationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "module", Code: "invalid_spec"}
}

// ModuleNotFoundError is returned when no host finder can supply a module.
type ModuleNotFoundError struct {
	Name     string
	Searched []string
}

func (e *ModuleNotFoundError) Error() string {
	if len(e.Searched) > 0 {
		return fmt.Sprintf("module %q not found (searched: %s)", e.Name, strings.Join(e.Searched, ", "))
	}
	return fmt.Sprintf("module %q not found", e.Name)
}

func (e *ModuleNotFoundError) Is(target error) bool {
	return target == ErrModuleNotFound
}

// ToErrorDetail implements DetailedError.
func (e *ModuleNotFoundError) ToErrorDetail() *entities.ErrorDetail {
	d := entities.NewErrorDetail("module", e.Error()).
		WithCode("not_found").
		WithDetails(map[string]any{"name": e.Name, "searched": e.Searched})
	d.IsNotFound = true
	return d
}

// ParseFailureError is returned by textual-to-numeric conversions.
type ParseFailureError struct {
	Err   error
	Input string
	Kind  string // "int" or "float"
}

func (e *ParseFailureError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s: %v", e.Input, e.Kind, e.Err)
}

func (e *ParseFailureError) Unwrap() error {
	return e.Err
}

func (e *ParseFailureError) Is(target error) bool {
	return target == ErrParseFailure
}

// ToErrorDetail implements DetailedError.
func (e *ParseFailureError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "parse", Code: e.Kind}
}

// NotImplementedError marks operations this runtime deliberately refuses.
type NotImplementedError struct {
	Operation string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("unsupported operation in host runtime: %s", e.Operation)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// ToErrorDetail implements DetailedError.
func (e *NotImplementedError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "unsupported", Code: e.Operation}
}

// ArityError is returned when a builtin receives the wrong number of arguments.
type ArityError struct {
	Builtin string
	Min     int
	Max     int // -1 for variadic
	Got     int
}

func (e *ArityError) Error() string {
	switch {
	case e.Min == e.Max:
		return fmt.Sprintf("%s() takes %d argument(s), got %d", e.Builtin, e.Min, e.Got)
	case e.Max < 0:
		return fmt.Sprintf("%s() takes at least %d argument(s), got %d", e.Builtin, e.Min, e.Got)
	default:
		return fmt.Sprintf("%s() takes %d to %d arguments, got %d", e.Builtin, e.Min, e.Max, e.Got)
	}
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// ToErrorDetail implements DetailedError.
func (e *ArityError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("argument", e.Error()).
		WithCode("arity").
		WithDetails(map[string]any{"builtin": e.Builtin, "min": e.Min, "max": e.Max, "got": e.Got})
}

// ArgumentTypeError is returned when a builtin argument has the wrong kind.
type ArgumentTypeError struct {
	Builtin  string
	Position int // 1-based
	Expected string
	Got      string
}

func (e *ArgumentTypeError) Error() string {
	if e.Builtin == "" {
		return fmt.Sprintf("argument %d: expected %s, got %s", e.Position, e.Expected, e.Got)
	}
	return fmt.Sprintf("%s() argument %d: expected %s, got %s", e.Builtin, e.Position, e.Expected, e.Got)
}

func (e *ArgumentTypeError) Is(target error) bool {
	return target == ErrArgumentType
}

// ToErrorDetail implements DetailedError.
func (e *ArgumentTypeError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("argument", e.Error()).
		WithCode("type").
		WithDetails(map[string]any{
			"builtin":  e.Builtin,
			"position": e.Position,
			"expected": e.Expected,
			"got":      e.Got,
		})
}

// UnknownBuiltinError is returned when invoking a name outside the catalogue.
type UnknownBuiltinError struct {
	Name string
}

func (e *UnknownBuiltinError) Error() string {
	return fmt.Sprintf("unknown builtin function: %s", e.Name)
}

func (e *UnknownBuiltinError) Is(target error) bool {
	return target == ErrUnknownBuiltin
}

// ToErrorDetail implements DetailedError.
func (e *UnknownBuiltinError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "builtin", Code: e.Name, IsNotFound: true}
}

// GuestPanicError carries a guest panic(...) or a recovered host panic.
type GuestPanicError struct {
	Value string
	Stack []byte
}

func (e *GuestPanicError) Error() string {
	return "panic: " + e.Value
}

func (e *GuestPanicError) Is(target error) bool {
	return target == ErrGuestPanic
}

// ToErrorDetail implements DetailedError.
func (e *GuestPanicError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "panic", Stack: e.Stack}
}

// InvalidModeError is returned by fs.Open for an unknown open mode.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid file open mode: %q", e.Mode)
}

func (e *InvalidModeError) Is(target error) bool {
	return target == ErrInvalidMode
}

// ToErrorDetail implements DetailedError.
func (e *InvalidModeError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "io", Code: "mode"}
}

// FormatError is returned by string.Format when the format string and its
// arguments disagree.
type FormatError struct {
	Format   string
	Reason   string
	Position int // 1-based argument position, 0 when not tied to an argument
}

func (e *FormatError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("format %q: argument %d: %s", e.Format, e.Position, e.Reason)
	}
	return fmt.Sprintf("format %q: %s", e.Format, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ToErrorDetail implements DetailedError.
func (e *FormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "argument", Code: "format"}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// IOError represents a failed file or process operation in the host facade.
type IOError struct {
	Err       error
	Operation string
	Path      string
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *IOError) ToErrorDetail() *entities.ErrorDetail {
	d := entities.NewErrorDetail("io", e.Error()).WithCode(e.Operation)
	if e.Path != "" {
		d.WithDetails(map[string]any{"path": e.Path})
	}
	return d
}

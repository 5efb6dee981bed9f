package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

const schemaResource = "config.json"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})
	return v
}

// Schema returns the JSON Schema describing Config.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	b, err := json.MarshalIndent(reflector.Reflect(&Config{}), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return b, nil
}

var (
	compiledOnce   sync.Once
	compiledSchema *schemavalidator.Schema
	compileErr     error
)

func compiled() (*schemavalidator.Schema, error) {
	compiledOnce.Do(func() {
		b, err := Schema()
		if err != nil {
			compileErr = err
			return
		}
		compiler := schemavalidator.NewCompiler()
		if err := compiler.AddResource(schemaResource, strings.NewReader(string(b))); err != nil {
			compileErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, compileErr
}

// validateDocument checks a generic document against Schema.
func validateDocument(doc map[string]any) error {
	sch, err := compiled()
	if err != nil {
		return &errors.ConfigError{Err: err}
	}

	// Round-trip through JSON so the validator sees JSON kinds only.
	b, err := json.Marshal(doc)
	if err != nil {
		return &errors.ConfigError{Err: err}
	}
	var obj any
	if err := json.Unmarshal(b, &obj); err != nil {
		return &errors.ConfigError{Err: err}
	}

	if err := sch.Validate(obj); err != nil {
		var ve *schemavalidator.ValidationError
		if stderrors.As(err, &ve) {
			leaf := leafCause(ve)
			return &errors.ConfigError{Field: pointerToField(leaf.InstanceLocation), Err: fmt.Errorf("%s", leaf.Message)}
		}
		return &errors.ConfigError{Err: err}
	}
	return nil
}

func leafCause(ve *schemavalidator.ValidationError) *schemavalidator.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToField turns a JSON pointer like /log/level into log.level.
func pointerToField(ptr string) string {
	return strings.ReplaceAll(strings.TrimPrefix(ptr, "/"), "/", ".")
}

// Validate runs the struct-level rules on cfg.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		return &errors.ConfigError{
			Field: field,
			Err:   fmt.Errorf("failed on the '%s' rule", fe.Tag()),
		}
	}
	return &errors.ConfigError{Err: err}
}

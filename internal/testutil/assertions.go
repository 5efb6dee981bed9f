// Package testutil provides common assertions for runtime tests.
package testutil

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/object"
)

// RequireErrorIs fails the test unless err wraps target.
func RequireErrorIs(t *testing.T, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	require.ErrorIs(t, err, target, msgAndArgs...)
}

// RequireErrorAs fails the test unless err wraps an error of type *E and
// returns it.
func RequireErrorAs[E error](t *testing.T, err error) E {
	t.Helper()
	var target E
	require.Error(t, err)
	require.True(t, stderrors.As(err, &target), "error %v (%T) is not %T", err, err, target)
	return target
}

// AssertDetail asserts the structured detail type and code of err.
func AssertDetail(t *testing.T, err error, wantType, wantCode string) {
	t.Helper()
	detail := errors.ToErrorDetail(err)
	require.NotNil(t, detail)
	assert.Equal(t, wantType, detail.Type)
	if wantCode != "" {
		assert.Equal(t, wantCode, detail.Code)
	}
}

// AssertJSONEqual compares two JSON documents for equality, ignoring formatting.
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertList asserts that v is a *object.List holding exactly want.
func AssertList(t *testing.T, want []any, v any, msgAndArgs ...interface{}) {
	t.Helper()
	l, ok := v.(*object.List)
	require.True(t, ok, "expected *object.List, got %T", v)
	assert.Equal(t, want, l.Items(), msgAndArgs...)
}

// AssertAttrs asserts that obj binds every name in want to the given value.
func AssertAttrs(t *testing.T, want map[string]any, obj *object.DynamicObject) {
	t.Helper()
	for name, expected := range want {
		actual, err := obj.Get(name)
		if assert.NoError(t, err, "attribute %q", name) {
			assert.Equal(t, expected, actual, "attribute %q", name)
		}
	}
}

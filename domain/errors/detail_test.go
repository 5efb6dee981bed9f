package errors_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yanerrors "github.com/yan-lang/yan-runtime/domain/errors"
	"github.com/yan-lang/yan-runtime/internal/testutil"
)

func TestToErrorDetail_Details(t *testing.T) {
	t.Run("module not found", func(t *testing.T) {
		err := &yanerrors.ModuleNotFoundError{Name: "sdl2", Searched: []string{"builtin", "wasm"}}
		b, merr := json.Marshal(err.ToErrorDetail())
		require.NoError(t, merr)
		testutil.AssertJSONEqual(t, `{
			"message": "module \"sdl2\" not found (searched: builtin, wasm)",
			"type": "module",
			"code": "not_found",
			"is_not_found": true,
			"details": {"name": "sdl2", "searched": ["builtin", "wasm"]}
		}`, string(b))
	})

	t.Run("arity", func(t *testing.T) {
		detail := (&yanerrors.ArityError{Builtin: "len", Min: 1, Max: 1, Got: 3}).ToErrorDetail()
		assert.Equal(t, "arity", detail.Code)
		assert.Equal(t, map[string]any{"builtin": "len", "min": 1, "max": 1, "got": 3}, detail.Details)
	})

	t.Run("argument type", func(t *testing.T) {
		detail := (&yanerrors.ArgumentTypeError{Builtin: "range", Position: 2, Expected: "Int", Got: "String"}).ToErrorDetail()
		assert.Equal(t, "type", detail.Code)
		assert.Equal(t, 2, detail.Details["position"])
		assert.Equal(t, "Int", detail.Details["expected"])
	})

	t.Run("io without path", func(t *testing.T) {
		detail := (&yanerrors.IOError{Operation: "read", Err: fmt.Errorf("eof")}).ToErrorDetail()
		assert.Equal(t, "read", detail.Code)
		assert.Nil(t, detail.Details)
	})
}

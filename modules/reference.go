package modules

import (
	"strings"

	"github.com/yan-lang/yan-runtime/domain/entities"
	"github.com/yan-lang/yan-runtime/domain/errors"
)

// ParseReference splits a guest module name into its module and attribute
// components. A leading "@" marks a native request; the sigil is kept out of
// Module. More than two components, or an empty component, is an
// InvalidImportSpecificationError.
func ParseReference(raw string) (entities.ModuleReference, error) {
	ref := entities.ModuleReference{Raw: raw}
	name := raw
	if strings.HasPrefix(name, entities.NativeSigil) {
		ref.Native = true
		name = strings.TrimPrefix(name, entities.NativeSigil)
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return ref, &errors.InvalidImportSpecificationError{Name: raw, Reason: "more than two components"}
	}
	for _, p := range parts {
		if p == "" {
			return ref, &errors.InvalidImportSpecificationError{Name: raw, Reason: "empty component"}
		}
	}

	ref.Module = parts[0]
	if len(parts) == 2 {
		ref.Attr = parts[1]
	}
	return ref, nil
}

// IsPublic reports whether a module symbol is spliced by require.
func IsPublic(symbol string) bool {
	return !strings.HasPrefix(symbol, "_")
}

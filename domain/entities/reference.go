package entities

// NativeSigil prefixes module names reserved for the guest runtime's own
// native-extension loader.
const NativeSigil = "@"

// ModuleReference is a parsed guest import name.
type ModuleReference struct {
	// Raw is the name exactly as the guest wrote it.
	Raw string `json:"raw"`

	// Module is the module component (moduleFile).
	Module string `json:"module"`

	// Attr is the attribute component (moduleAttr); empty for whole-module names.
	Attr string `json:"attr,omitempty"`

	// Native is set when Raw starts with NativeSigil.
	Native bool `json:"native,omitempty"`
}

// Qualified reports whether the reference names a single attribute.
func (r ModuleReference) Qualified() bool {
	return r.Attr != ""
}

// String returns the canonical dotted form.
func (r ModuleReference) String() string {
	if r.Attr == "" {
		return r.Module
	}
	return r.Module + "." + r.Attr
}

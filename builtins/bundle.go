package builtins

// Bundle is a pre-configured set of related builtins.
// Bundles allow registering several builtins at once.
type Bundle interface {
	// Builtins returns the bundle's entries.
	Builtins() []Builtin
}

// staticBundle implements Bundle with a fixed set of builtins.
type staticBundle struct {
	builtins []Builtin
}

func (b *staticBundle) Builtins() []Builtin {
	return b.builtins
}

// NewBundle creates a bundle from a fixed list of builtins.
func NewBundle(builtins ...Builtin) Bundle {
	return &staticBundle{builtins: builtins}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []Bundle
}

func (b *compositeBundle) Builtins() []Builtin {
	var result []Builtin
	for _, bundle := range b.bundles {
		result = append(result, bundle.Builtins()...)
	}
	return result
}

// Combine merges bundles. Duplicate names surface as registry errors.
func Combine(bundles ...Bundle) Bundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers all builtins from a bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for _, bi := range bundle.Builtins() {
			if err := b.addBuiltin(bi); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

package builtins

// CatalogueVersion identifies the set of builtin names and arities exposed to
// guest programs. It changes whenever a name is added, removed or re-shaped.
const CatalogueVersion = "1.2.0"

// Catalogue returns every builtin that does not depend on the module
// resolver. The runtime adds builtins, require and import on top.
func Catalogue(console IO) Bundle {
	return Combine(
		CoreBundle(console),
		MathBundle(),
		ListBundle(),
	)
}

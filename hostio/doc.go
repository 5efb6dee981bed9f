// Package hostio is the host-side file and process facade behind the fs, os
// and rand builtin modules.
//
// Nothing here closes files implicitly; a FileObject stays open until its
// Close method is called.
package hostio

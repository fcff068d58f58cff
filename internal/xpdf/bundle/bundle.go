// Package bundle holds the Xpdf executables shipped with the module.
//
// Executables live under xpdf/<os>-<bits>/, for example
// xpdf/linux-64/pdftotext or xpdf/windows-64/pdfinfo.exe. Release builds
// drop the binaries in place before compiling; a source checkout only
// carries the README, in which case tools must be configured with an
// explicit executable path.
package bundle

import "embed"

// FS is rooted above the xpdf/ directory.
//
//go:embed xpdf
var FS embed.FS

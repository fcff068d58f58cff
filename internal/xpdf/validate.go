package xpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CanonicalPath returns the absolute, symlink-free form of path. Paths that
// do not exist yet are returned absolute and cleaned.
func CanonicalPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("path contains a null byte")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// ValidateInput checks that the input PDF exists.
func ValidateInput(pdfFile string) error {
	if pdfFile == "" || strings.ContainsRune(pdfFile, 0) {
		return NewValidationError("PdfFile does not exist")
	}
	if _, err := os.Stat(pdfFile); err != nil {
		return NewValidationError("PdfFile does not exist")
	}
	return nil
}

// ValidateOutputPath checks that an optional output location can be
// canonicalized. field names the request field in the error message.
func ValidateOutputPath(field, path string) error {
	if path == "" {
		return nil
	}
	if _, err := CanonicalPath(path); err != nil {
		return NewValidationError("Invalid path given for " + field)
	}
	return nil
}

// ValidatePages checks the optional page bounds.
func ValidatePages(start, stop *int) error {
	if start != nil && *start <= 0 {
		return NewValidationError("PageStart must be greater than zero")
	}
	if stop != nil && *stop <= 0 {
		return NewValidationError("PageStop must be greater than zero")
	}
	if start != nil && stop != nil && *start > *stop {
		return NewValidationError("PageStop must be greater than or equal to PageStart")
	}
	return nil
}

// ValidateEnum rejects enum values missing from the lookup table.
func ValidateEnum[T ~string](field string, v T, table map[T][]string) error {
	if v == "" {
		return nil
	}
	if _, ok := table[v]; !ok {
		return NewValidationError(fmt.Sprintf("%s must be one of: %s",
			field, strings.Join(Variants(table), ", ")))
	}
	return nil
}

// Package core defines the pipeline interfaces for unorm.
// Each stage of the pipeline is a clean, testable interface.
package core

// Reader loads the full content of a text file as validated UTF-8.
type Reader interface {
	Read(path string) (string, error)
}

// Normalizer rewrites text into the given Unicode normalization form.
type Normalizer interface {
	Normalize(text string, form Form) (string, error)
}

// Writer persists text to a destination path, creating or replacing it.
type Writer interface {
	Write(path string, text string) error
}

// Package normalize implements the Normalizer interface.
// It rewrites text into one of the four Unicode normalization forms using the
// decomposition and composition tables shipped with golang.org/x/text.
package normalize

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/gaurav-prasanna/unorm/core"
)

// UnicodeNormalizer applies NFC, NFD, NFKC or NFKD to whole text buffers.
type UnicodeNormalizer struct{}

// New creates a UnicodeNormalizer.
func New() *UnicodeNormalizer {
	return &UnicodeNormalizer{}
}

// Normalize returns text rewritten into the given form.
func (n *UnicodeNormalizer) Normalize(text string, form core.Form) (string, error) {
	f, err := normForm(form)
	if err != nil {
		return "", err
	}
	return f.String(text), nil
}

func normForm(form core.Form) (norm.Form, error) {
	switch form {
	case core.NFC:
		return norm.NFC, nil
	case core.NFD:
		return norm.NFD, nil
	case core.NFKC:
		return norm.NFKC, nil
	case core.NFKD:
		return norm.NFKD, nil
	default:
		return 0, core.NewError(core.InvalidArgument, "normalize", fmt.Sprintf("unsupported normalization form: %q", string(form)))
	}
}

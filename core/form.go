package core

import "fmt"

// Form identifies one of the four Unicode normalization forms.
type Form string

const (
	NFC  Form = "NFC"
	NFD  Form = "NFD"
	NFKC Form = "NFKC"
	NFKD Form = "NFKD"
)

// DefaultForm is applied when no form is requested.
const DefaultForm = NFC

// Forms lists the accepted forms in the order they are shown to users.
var Forms = []Form{NFC, NFKD, NFD, NFKC}

func (f Form) String() string {
	return string(f)
}

// Valid reports whether f is one of the recognized forms.
func (f Form) Valid() bool {
	switch f {
	case NFC, NFD, NFKC, NFKD:
		return true
	}
	return false
}

// ParseForm validates a form identifier. Matching is exact and case-sensitive.
func ParseForm(s string) (Form, error) {
	f := Form(s)
	if !f.Valid() {
		return "", NewError(InvalidArgument, "parse form", fmt.Sprintf("invalid normalization form: %q (want one of %v)", s, Forms))
	}
	return f, nil
}

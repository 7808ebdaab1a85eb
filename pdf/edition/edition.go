// Package edition enumerates the revisions of the PDF language.
//
// An edition selects which identifiers are reserved keywords and which
// literal shapes the lexer accepts without complaint.
package edition

import (
	"errors"
	"fmt"
	"strings"
)

type Edition uint8

const (
	Pdf10 Edition = iota
	Pdf11
	Pdf12
	Pdf13
	Pdf14
	Pdf15
	Pdf16
	Pdf17
	Pdf20
)

// Latest is used whenever the caller does not name an edition.
const Latest = Pdf20

var ErrUnknown = errors.New("unknown edition")

var editionNames = [...]string{
	Pdf10: "1.0",
	Pdf11: "1.1",
	Pdf12: "1.2",
	Pdf13: "1.3",
	Pdf14: "1.4",
	Pdf15: "1.5",
	Pdf16: "1.6",
	Pdf17: "1.7",
	Pdf20: "2.0",
}

func (e Edition) String() string {
	if int(e) < len(editionNames) {
		return editionNames[e]
	}
	return fmt.Sprintf("Edition(%d)", uint8(e))
}

// AtLeast reports whether e is the same revision as other or newer.
func (e Edition) AtLeast(other Edition) bool {
	return e >= other
}

// All returns every known edition, oldest first.
func All() []Edition {
	all := make([]Edition, 0, len(editionNames))
	for i := range editionNames {
		all = append(all, Edition(i))
	}
	return all
}

// Parse accepts "1.7", "pdf-1.7", "PDF-1.7", "pdf17" and similar spellings.
// The empty string yields Latest.
func Parse(s string) (Edition, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "latest" {
		return Latest, nil
	}
	s = strings.TrimPrefix(s, "pdf")
	s = strings.TrimPrefix(s, "-")
	if len(s) == 2 && !strings.Contains(s, ".") {
		s = s[:1] + "." + s[1:]
	}
	for i, name := range editionNames {
		if name == s {
			return Edition(i), nil
		}
	}
	return Latest, fmt.Errorf("%w: %q", ErrUnknown, s)
}

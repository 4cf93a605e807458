package domain

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// DomainName is a canonical second-level registration, e.g. "premium.example".
type DomainName struct {
	label string
	tld   string
}

// ParseDomainName canonicalizes a name to its A-label form and splits it into the
// registered label and the TLD it belongs to.
func ParseDomainName(name string) (DomainName, error) {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(name, "."))
	if err != nil {
		return DomainName{}, fmt.Errorf("%w: %q: %v", ErrInvalidDomainName, name, err)
	}
	label, tld, ok := strings.Cut(ascii, ".")
	if !ok || label == "" || tld == "" {
		return DomainName{}, fmt.Errorf("%w: %q has no tld", ErrInvalidDomainName, name)
	}
	return DomainName{label: label, tld: tld}, nil
}

// Label returns the second-level label, e.g. "premium".
func (d DomainName) Label() string {
	return d.label
}

// Tld returns the parent TLD, e.g. "example".
func (d DomainName) Tld() string {
	return d.tld
}

func (d DomainName) String() string {
	return d.label + "." + d.tld
}

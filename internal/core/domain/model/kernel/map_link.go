package kernel

import (
	"fmt"
	"strings"

	"deliveryno/internal/pkg/errs"
)

// mapLinkPrefixes lists the map services a delivery location may point to.
var mapLinkPrefixes = []string{
	"https://www.google.com/maps",
	"https://goo.gl/maps",
	"https://maps.app.goo.gl",
	"https://maps.google.com",
}

// MapLink is an optional delivery location shared from a map service.
// The zero value means "no location".
type MapLink struct {
	url string
}

// NewMapLink validates raw. Blank input yields the zero MapLink without error.
func NewMapLink(raw string) (MapLink, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MapLink{}, nil
	}
	for _, prefix := range mapLinkPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return MapLink{url: raw}, nil
		}
	}
	return MapLink{}, errs.NewValueIsInvalidErrorWithCause(
		"delivery location",
		fmt.Errorf("%q is not a Google Maps link", raw),
	)
}

// IsZero reports whether no location was given.
func (l MapLink) IsZero() bool {
	return l.url == ""
}

func (l MapLink) String() string {
	return l.url
}

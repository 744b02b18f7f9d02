package domain

import "strings"

// Extension is the parsed form of a publisher.package@version token as
// reported by the editor's extension enumeration.
type Extension struct {
	Publisher string
	Package   string
	Version   string
}

// ParseExtension splits a token strictly as <publisher>.<package>@<version>.
// It fails with ErrMalformedToken if the "@" separator is missing or the
// prefix does not contain exactly one ".". No semantic validation of the
// version is performed; the token is an opaque identity plus version string.
func ParseExtension(token string) (Extension, error) {
	uid, version, ok := strings.Cut(token, "@")
	if !ok {
		return Extension{}, ErrMalformedToken.WithDetails(token)
	}
	if strings.Count(uid, ".") != 1 {
		return Extension{}, ErrMalformedToken.WithDetails(token)
	}
	publisher, pkg, _ := strings.Cut(uid, ".")
	return Extension{
		Publisher: publisher,
		Package:   pkg,
		Version:   version,
	}, nil
}

// String reconstructs the canonical token form.
func (e Extension) String() string {
	return e.Publisher + "." + e.Package + "@" + e.Version
}

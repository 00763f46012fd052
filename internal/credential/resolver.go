// Package credential resolves the API credential for catalog requests.
package credential

// builtinKey is injected at build time:
//
//	go build -ldflags "-X github.com/mikey-austin/sound_board/internal/credential.builtinKey=..."
//
// It corresponds to an administrator-provisioned credential and always takes
// precedence over a user-supplied one.
var builtinKey string

// Settings supplies the user-stored credential.
type Settings interface {
	APIKey() string
}

// Resolver picks the active API credential. Absence is a valid result, not an
// error.
type Resolver struct {
	Settings Settings
}

// Resolve returns the active credential and whether one is present.
func (r Resolver) Resolve() (string, bool) {
	if builtinKey != "" {
		return builtinKey, true
	}
	if r.Settings != nil {
		if key := r.Settings.APIKey(); key != "" {
			return key, true
		}
	}
	return "", false
}

// IsBuiltIn reports whether the active credential was provisioned at build
// time rather than supplied by the user.
func (r Resolver) IsBuiltIn() bool {
	return builtinKey != ""
}

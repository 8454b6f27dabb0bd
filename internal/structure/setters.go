package structure

import (
	"strings"

	werrors "github.com/joshuafuller/weburl/internal/errors"
	"github.com/joshuafuller/weburl/internal/host"
	"github.com/joshuafuller/weburl/internal/urlstate"
)

// Each setter below re-validates and re-encodes exactly the component it
// touches, then reserializes from scratch, computing a fresh Structure.
// Failure leaves the receiver's caller with the original URL: setters
// return a new value and an error, never a partially-updated URL.

// WithScheme returns a copy of u with its scheme replaced. Changing
// between a special and a non-special scheme is permitted; as with the
// rest of this package's setters, getting this wrong does not corrupt u.
// Fails if u has an opaque path and scheme is special: a special scheme
// implies an authority/host structure an opaque-path URL does not have.
func (u URL) WithScheme(scheme string) (URL, error) {
	lowered, ok := urlstate.ValidateScheme(scheme)
	if !ok {
		return u, &werrors.ParseError{Operation: "set scheme", Kind: werrors.ParseKindInvalidScheme, Input: scheme}
	}
	if u.res.HasOpaquePath && urlstate.IsSpecialScheme(lowered) {
		return u, &werrors.ParseError{Operation: "set scheme", Kind: werrors.ParseKindOpaquePathConflict, Input: scheme}
	}
	r := *u.res
	r.Scheme = lowered
	r.IsSpecial = urlstate.IsSpecialScheme(lowered)
	if r.Port != nil {
		if def, ok := urlstate.DefaultPort(lowered); ok && *r.Port == def {
			r.Port = nil
		}
	}
	return fromResult(&r), nil
}

// WithUsername returns a copy of u with its username replaced. It is a
// no-op returning u unchanged when u cannot hold credentials (no host,
// empty host, or an opaque path).
func (u URL) WithUsername(username string) (URL, error) {
	if !u.canHaveCredentials() {
		return u, nil
	}
	r := *u.res
	r.Username = urlstate.EncodeUserInfoString(username)
	return fromResult(&r), nil
}

// WithPassword returns a copy of u with its password replaced, under the
// same no-op conditions as WithUsername.
func (u URL) WithPassword(password string) (URL, error) {
	if !u.canHaveCredentials() {
		return u, nil
	}
	r := *u.res
	r.Password = urlstate.EncodeUserInfoString(password)
	return fromResult(&r), nil
}

func (u URL) canHaveCredentials() bool {
	return u.res.HasAuthority && u.res.Host.Kind != host.KindEmpty && !u.res.HasOpaquePath
}

// WithHost returns a copy of u with its host (and, if hostport carries a
// ":port" suffix, its port) replaced. Fails if u has an opaque path,
// since such URLs have no authority to hold a host.
func (u URL) WithHost(hostport string) (URL, error) {
	if u.res.HasOpaquePath {
		return u, &werrors.ParseError{Operation: "set host", Kind: werrors.ParseKindOpaquePathConflict, Input: hostport}
	}
	hostStr, portStr, hasPort := cutHostPort(hostport)
	h, err := host.Parse(hostStr, u.res.IsSpecial, u.res.Scheme == "file")
	if err != nil {
		return u, err
	}
	r := *u.res
	r.HasAuthority = true
	r.HasHost = true
	r.Host = h
	if hasPort {
		port, err := urlstate.ParsePort(portStr, r.Scheme)
		if err != nil {
			return u, err
		}
		r.Port = port
	}
	return fromResult(&r), nil
}

func cutHostPort(s string) (h, port string, hasPort bool) {
	if strings.HasPrefix(s, "[") {
		if end := strings.IndexByte(s, ']'); end >= 0 {
			if end+1 < len(s) && s[end+1] == ':' {
				return s[:end+1], s[end+2:], true
			}
			return s, "", false
		}
		return s, "", false
	}
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		return s[:idx], s[idx+1:], true
	}
	return s, "", false
}

// WithPort returns a copy of u with its port replaced. An empty string
// clears the port. When u cannot carry a port (an opaque path, no
// authority, an empty host, or the file scheme), u is returned unchanged
// with a nil error.
func (u URL) WithPort(port string) (URL, error) {
	if u.res.HasOpaquePath || !u.res.HasAuthority || u.res.Host.Kind == host.KindEmpty || u.res.Scheme == "file" {
		return u, nil
	}
	p, err := urlstate.ParsePort(port, u.res.Scheme)
	if err != nil {
		return u, err
	}
	r := *u.res
	r.Port = p
	return fromResult(&r), nil
}

// WithPathname returns a copy of u with its path replaced. For a
// cannot-be-a-base URL (HasOpaquePath), pathname is re-encoded as the
// single opaque path component instead of a segment list.
func (u URL) WithPathname(pathname string) (URL, error) {
	r := *u.res
	if r.HasOpaquePath {
		r.OpaquePath = urlstate.EncodeOpaquePathString(pathname)
		return fromResult(&r), nil
	}
	r.Path = urlstate.EncodePathSegments(pathname, r.IsSpecial, r.Scheme)
	return fromResult(&r), nil
}

// WithSearch returns a copy of u with its query replaced. A leading '?'
// in search is stripped if present. An empty string clears the query
// entirely (Search() then reports "", not "?").
func (u URL) WithSearch(search string) (URL, error) {
	search = strings.TrimPrefix(search, "?")
	r := *u.res
	if search == "" {
		r.Query = nil
		return fromResult(&r), nil
	}
	q := urlstate.EncodeQueryString(search, r.IsSpecial)
	r.Query = &q
	return fromResult(&r), nil
}

// WithHash returns a copy of u with its fragment replaced. A leading '#'
// in hash is stripped if present; an empty string clears the fragment.
func (u URL) WithHash(hash string) (URL, error) {
	hash = strings.TrimPrefix(hash, "#")
	r := *u.res
	if hash == "" {
		r.Fragment = nil
		return fromResult(&r), nil
	}
	f := urlstate.EncodeFragmentString(hash)
	r.Fragment = &f
	return fromResult(&r), nil
}

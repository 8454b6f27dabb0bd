// Package structure turns a parsed urlstate.Result into the URL Standard's
// Structure record: a serialized string plus the byte offsets and flags
// that locate each component within it.
package structure

import (
	"strconv"
	"strings"

	"github.com/joshuafuller/weburl/internal/host"
	"github.com/joshuafuller/weburl/internal/idna"
	"github.com/joshuafuller/weburl/internal/urlstate"
)

// Structure records where each URL component begins and ends within a
// serialized URL string, plus the flags needed to interpret it correctly
// (isSpecial, hasOpaquePath, hasAuthority, hostKind, hasPathSigil).
//
// Offsets are exclusive ends measured from byte 0 of the serialized
// string; a component with nothing to show has its end equal to the
// previous component's end. QueryEnd and FragmentEnd are -1 when the URL
// has no query or fragment at all (as opposed to an empty one).
type Structure struct {
	SchemeEnd   int
	UsernameEnd int
	PasswordEnd int
	HostStart   int
	HostEnd     int
	PortEnd     int
	PathEnd     int
	QueryEnd    int
	FragmentEnd int

	IsSpecial     bool
	HasOpaquePath bool
	HasAuthority  bool
	HostKind      host.Kind
	HasPathSigil  bool
}

// URL is the public value type pairing a serialized string with its
// Structure and the semantic Result that produced it. It is immutable:
// every setter in this package returns a new URL rather than mutating the
// receiver.
type URL struct {
	raw string
	st  Structure
	res *urlstate.Result
}

// Parse runs the basic URL parser over input (optionally resolved
// against base) and serializes the result.
func Parse(input string, base *URL, opts ...idna.Option) (URL, error) {
	var baseRes *urlstate.Result
	if base != nil {
		baseRes = base.res
	}
	r, err := urlstate.Parse(input, baseRes, opts...)
	if err != nil {
		return URL{}, err
	}
	return fromResult(r), nil
}

func fromResult(r *urlstate.Result) URL {
	raw, st := serialize(r)
	return URL{raw: raw, st: st, res: r}
}

// serialize builds the URL Standard's serialized form of r and records
// the byte offset of each component as it is written, matching the
// order the standard's URL serializer visits components in.
func serialize(r *urlstate.Result) (string, Structure) {
	var b strings.Builder
	var st Structure

	b.WriteString(r.Scheme)
	b.WriteByte(':')
	st.SchemeEnd = b.Len()
	st.IsSpecial = r.IsSpecial
	st.HostKind = r.Host.Kind

	if r.HasOpaquePath {
		st.HasOpaquePath = true
		b.WriteString(r.OpaquePath)
		st.UsernameEnd = b.Len()
		st.PasswordEnd = b.Len()
		st.HostStart = b.Len()
		st.HostEnd = b.Len()
		st.PortEnd = b.Len()
		st.PathEnd = b.Len()
	} else {
		st.HasAuthority = r.HasAuthority
		if r.HasAuthority {
			b.WriteString("//")
			if r.Username != "" || r.Password != "" {
				b.WriteString(r.Username)
				st.UsernameEnd = b.Len()
				if r.Password != "" {
					b.WriteByte(':')
					b.WriteString(r.Password)
				}
				st.PasswordEnd = b.Len()
				b.WriteByte('@')
			} else {
				st.UsernameEnd = b.Len()
				st.PasswordEnd = b.Len()
			}
			st.HostStart = b.Len()
			b.WriteString(r.Host.String())
			st.HostEnd = b.Len()
			if r.Port != nil {
				b.WriteByte(':')
				b.WriteString(strconv.Itoa(int(*r.Port)))
			}
			st.PortEnd = b.Len()
		} else {
			st.UsernameEnd = b.Len()
			st.PasswordEnd = b.Len()
			st.HostStart = b.Len()
			st.HostEnd = b.Len()
			st.PortEnd = b.Len()
		}

		// Without an authority, a path whose first segment is empty would
		// otherwise serialize as a leading "//", which a re-parse would
		// misread as an authority-introducing sigil. Insert "/." as a
		// harmless extra segment so the leading slash count stays at one.
		st.HasPathSigil = !r.HasAuthority && len(r.Path) > 1 && r.Path[0] == ""
		if st.HasPathSigil {
			b.WriteString("/.")
		}
		for _, seg := range r.Path {
			b.WriteByte('/')
			b.WriteString(seg)
		}
		st.PathEnd = b.Len()
	}

	st.QueryEnd = -1
	if r.Query != nil {
		b.WriteByte('?')
		b.WriteString(*r.Query)
		st.QueryEnd = b.Len()
	}

	st.FragmentEnd = -1
	if r.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*r.Fragment)
		st.FragmentEnd = b.Len()
	}

	return b.String(), st
}

// String returns the URL's serialized form. Re-parsing it reproduces an
// equal Structure (the round-trip idempotence invariant).
func (u URL) String() string { return u.raw }

// Structure exposes the byte-offset record backing this URL.
func (u URL) Structure() Structure { return u.st }

func (u URL) Scheme() string { return u.res.Scheme }
func (u URL) IsSpecial() bool { return u.res.IsSpecial }
func (u URL) Username() string { return u.res.Username }
func (u URL) Password() string { return u.res.Password }
func (u URL) HasAuthority() bool { return u.res.HasAuthority }
func (u URL) Host() host.Host { return u.res.Host }
func (u URL) Port() *uint16 { return u.res.Port }
func (u URL) HasOpaquePath() bool { return u.res.HasOpaquePath }

// Pathname returns the path component as it appears in the serialized
// URL: the opaque path verbatim, or the slash-joined, leading-slash-
// prefixed segment list.
func (u URL) Pathname() string {
	if u.res.HasOpaquePath {
		return u.res.OpaquePath
	}
	if len(u.res.Path) == 0 {
		return ""
	}
	return "/" + strings.Join(u.res.Path, "/")
}

// Search returns the query component including its leading '?', or the
// empty string when the URL has no query.
func (u URL) Search() string {
	if u.res.Query == nil {
		return ""
	}
	return "?" + *u.res.Query
}

// Hash returns the fragment component including its leading '#', or the
// empty string when the URL has no fragment.
func (u URL) Hash() string {
	if u.res.Fragment == nil {
		return ""
	}
	return "#" + *u.res.Fragment
}

// Origin reports the tuple (scheme, host, port) WHATWG calls a URL's
// origin, valid only for special non-file schemes. ok is false for file,
// opaque-path, and non-special URLs, which have no meaningful origin.
func (u URL) Origin() (scheme, hostStr string, port uint16, ok bool) {
	if !u.res.IsSpecial || u.res.Scheme == "file" || u.res.HasOpaquePath {
		return "", "", 0, false
	}
	p, hasDefault := urlstate.DefaultPort(u.res.Scheme)
	if u.res.Port != nil {
		p = *u.res.Port
	} else if !hasDefault {
		p = 0
	}
	return u.res.Scheme, u.res.Host.String(), p, true
}

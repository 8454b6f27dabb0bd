// Package weburl implements a WHATWG URL Standard-conformant parser and
// serializer.
//
// # Overview
//
// Parse a URL, optionally against a base:
//
//	u, err := weburl.Parse("https://example.com/a/b?q=1#frag")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(u.Pathname()) // /a/b
//
//	rel, err := weburl.Parse("../c", weburl.WithBase(&u))
//
// # Immutable Setters
//
// Every component setter returns a new URL rather than mutating the
// receiver, re-validating and re-encoding the component per the URL
// Standard's setter algorithms:
//
//	u2, err := u.WithPathname("/x/y")
package weburl

import (
	werrors "github.com/joshuafuller/weburl/internal/errors"
	"github.com/joshuafuller/weburl/internal/host"
	"github.com/joshuafuller/weburl/internal/idna"
	"github.com/joshuafuller/weburl/internal/structure"
)

// URL is an immutable, parsed URL. The zero value is not a valid URL;
// obtain one from Parse.
type URL struct {
	u structure.URL
}

// HostKind classifies which of the five host forms a URL's host takes.
type HostKind = host.Kind

const (
	HostKindEmpty  = host.KindEmpty
	HostKindDomain = host.KindDomain
	HostKindIPv4   = host.KindIPv4
	HostKindIPv6   = host.KindIPv6
	HostKindOpaque = host.KindOpaque
)

// Host is a parsed authority host: a domain, an IPv4 or IPv6 address, an
// opaque host string, or empty.
type Host = host.Host

// IDNAOption configures the IDNA domain-to-ASCII transformation applied
// to special-scheme hosts during parsing.
type IDNAOption = idna.Option

var (
	WithSTD3            = idna.WithSTD3
	WithTransitional    = idna.WithTransitional
	WithVerifyDNSLength = idna.WithVerifyDNSLength
)

// ParseOption configures a call to Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	base     *URL
	idnaOpts []idna.Option
}

// WithBase resolves the input against base, the way a browser resolves a
// relative link against the page it appears on. Without WithBase, input
// must be an absolute URL.
func WithBase(base *URL) ParseOption {
	return func(c *parseConfig) { c.base = base }
}

// WithIDNAOptions configures the IDNA domain-to-ASCII transformation
// applied to hosts of special-scheme URLs (http, https, ws, wss, ftp,
// file).
func WithIDNAOptions(opts ...IDNAOption) ParseOption {
	return func(c *parseConfig) { c.idnaOpts = append(c.idnaOpts, opts...) }
}

// Parse parses input as a URL per the URL Standard's basic URL parser.
func Parse(input string, opts ...ParseOption) (URL, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var basePtr *structure.URL
	if cfg.base != nil {
		basePtr = &cfg.base.u
	}
	su, err := structure.Parse(input, basePtr, cfg.idnaOpts...)
	if err != nil {
		return URL{}, err
	}
	return URL{u: su}, nil
}

// CanParse reports whether input parses successfully, optionally
// against base. It never returns the parsing error; use Parse for that.
func CanParse(input string, opts ...ParseOption) bool {
	_, err := Parse(input, opts...)
	return err == nil
}

// String returns the URL's serialization.
func (u URL) String() string { return u.u.String() }

// Scheme returns the URL's scheme, without the trailing ':'.
func (u URL) Scheme() string { return u.u.Scheme() }

// IsSpecial reports whether the URL's scheme is one of the special
// schemes (ftp, file, http, https, ws, wss).
func (u URL) IsSpecial() bool { return u.u.IsSpecial() }

// Username returns the URL's username, percent-encoded.
func (u URL) Username() string { return u.u.Username() }

// Password returns the URL's password, percent-encoded.
func (u URL) Password() string { return u.u.Password() }

// HasAuthority reports whether the URL has a "//"-introduced authority.
func (u URL) HasAuthority() bool { return u.u.HasAuthority() }

// Host returns the URL's parsed host.
func (u URL) Host() Host { return u.u.Host() }

// Port returns the URL's port, or nil if absent or equal to the
// scheme's default port.
func (u URL) Port() *uint16 { return u.u.Port() }

// HasOpaquePath reports whether the URL's path is an opaque string
// rather than a "/"-delimited list of segments.
func (u URL) HasOpaquePath() bool { return u.u.HasOpaquePath() }

// Pathname returns the URL's path component, including the leading '/'
// for non-opaque paths.
func (u URL) Pathname() string { return u.u.Pathname() }

// Search returns the URL's query component, including the leading '?',
// or "" if absent.
func (u URL) Search() string { return u.u.Search() }

// Hash returns the URL's fragment component, including the leading '#',
// or "" if absent.
func (u URL) Hash() string { return u.u.Hash() }

// Origin returns the URL's tuple origin (scheme, host, port) for
// special, non-file schemes; ok is false for opaque-path or file URLs.
func (u URL) Origin() (scheme, host string, port uint16, ok bool) { return u.u.Origin() }

// WithScheme returns a copy of u with its scheme replaced by scheme.
func (u URL) WithScheme(scheme string) (URL, error) {
	su, err := u.u.WithScheme(scheme)
	return URL{u: su}, err
}

// WithUsername returns a copy of u with its username replaced.
func (u URL) WithUsername(username string) (URL, error) {
	su, err := u.u.WithUsername(username)
	return URL{u: su}, err
}

// WithPassword returns a copy of u with its password replaced.
func (u URL) WithPassword(password string) (URL, error) {
	su, err := u.u.WithPassword(password)
	return URL{u: su}, err
}

// WithHost returns a copy of u with its host (and optional port)
// replaced by hostport.
func (u URL) WithHost(hostport string) (URL, error) {
	su, err := u.u.WithHost(hostport)
	return URL{u: su}, err
}

// WithPort returns a copy of u with its port replaced.
func (u URL) WithPort(port string) (URL, error) {
	su, err := u.u.WithPort(port)
	return URL{u: su}, err
}

// WithPathname returns a copy of u with its path replaced.
func (u URL) WithPathname(pathname string) (URL, error) {
	su, err := u.u.WithPathname(pathname)
	return URL{u: su}, err
}

// WithSearch returns a copy of u with its query replaced.
func (u URL) WithSearch(search string) (URL, error) {
	su, err := u.u.WithSearch(search)
	return URL{u: su}, err
}

// WithHash returns a copy of u with its fragment replaced.
func (u URL) WithHash(hash string) (URL, error) {
	su, err := u.u.WithHash(hash)
	return URL{u: su}, err
}

// IsParseError reports whether err is a parse failure raised by Parse,
// as opposed to some other error type.
func IsParseError(err error) bool {
	_, ok := err.(*werrors.ParseError)
	return ok
}

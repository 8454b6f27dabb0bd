package urlstate

import (
	"strconv"
	"strings"

	werrors "github.com/joshuafuller/weburl/internal/errors"
	"github.com/joshuafuller/weburl/internal/host"
	"github.com/joshuafuller/weburl/internal/idna"
	"github.com/joshuafuller/weburl/internal/percentencode"
)

// Result is the semantic projection a parse produces: one field per URL
// component, filled in by whichever states the input passes through. The
// structure package turns a Result into an offset-addressed byte buffer.
type Result struct {
	Scheme       string
	IsSpecial    bool
	Username     string
	Password     string
	HasAuthority bool
	HasHost      bool
	Host         host.Host
	Port         *uint16

	HasOpaquePath bool
	OpaquePath    string
	Path          []string // empty-string segments denote a trailing slash

	Query    *string
	Fragment *string
}

func (r *Result) clone() *Result {
	c := *r
	c.Path = append([]string(nil), r.Path...)
	return &c
}

func u16(v uint16) *uint16 { return &v }

// Parse runs the basic URL parser over input, resolving it against base
// when input carries no scheme of its own (a relative reference).
func Parse(input string, base *Result, opts ...idna.Option) (*Result, error) {
	input = trimC0AndSpace(input)
	input = stripTabAndNewline(input)

	p := &machine{input: input, base: base, opts: opts, r: &Result{}}
	return p.run()
}

type machine struct {
	input string
	pos   int
	base  *Result
	opts  []idna.Option
	r     *Result
}

func fail(op string, kind werrors.ParseKind, input string) error {
	return &werrors.ParseError{Operation: op, Kind: kind, Input: input}
}

func (p *machine) run() (*Result, error) {
	rest := p.input

	scheme, schemeLen, ok := scanScheme(rest)
	if ok {
		p.r.Scheme = scheme
		p.r.IsSpecial = isSpecialScheme(scheme)
		rest = rest[schemeLen+1:]
		return p.afterScheme(rest)
	}

	if p.base == nil {
		return nil, fail("parse scheme", werrors.ParseKindMissingScheme, p.input)
	}
	return p.relativeTo(p.base, rest)
}

// scanScheme recognizes "scheme:" at the start of s, returning the
// lower-cased scheme name and the index of the ':'.
func scanScheme(s string) (scheme string, colon int, ok bool) {
	if s == "" || !isSchemeStart(s[0]) {
		return "", 0, false
	}
	i := 1
	for i < len(s) && isSchemeChar(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != ':' {
		return "", 0, false
	}
	return strings.ToLower(s[:i]), i, true
}

func isSchemeStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSchemeChar(b byte) bool {
	return isSchemeStart(b) || (b >= '0' && b <= '9') || b == '+' || b == '-' || b == '.'
}

func (p *machine) afterScheme(rest string) (*Result, error) {
	scheme := p.r.Scheme
	switch {
	case scheme == "file":
		return p.parseFile(rest, nil)
	case p.r.IsSpecial:
		rest = strings.TrimLeft(rest, "/\\")
		return p.parseAuthority(rest)
	case strings.HasPrefix(rest, "//"):
		return p.parseAuthority(rest[2:])
	case strings.HasPrefix(rest, "/"):
		// A non-special scheme followed by exactly one "/" still has an
		// ordinary, "/"-delimited path; only the absence of any leading
		// slash makes the path opaque.
		return p.parsePath(rest, nil)
	default:
		return p.parseOpaquePath(rest)
	}
}

// relativeTo resolves a schemeless reference against base, per the URL
// Standard's relative-state handling.
func (p *machine) relativeTo(base *Result, rest string) (*Result, error) {
	if base.HasOpaquePath {
		if strings.HasPrefix(rest, "#") {
			r := base.clone()
			f, err := p.parseFragmentFrom(rest[1:])
			if err != nil {
				return nil, err
			}
			r.Fragment = f
			return r, nil
		}
		return nil, fail("parse relative reference", werrors.ParseKindMissingScheme, rest)
	}

	p.r.Scheme = base.Scheme
	p.r.IsSpecial = base.IsSpecial

	if base.Scheme == "file" {
		return p.parseFile(rest, base)
	}

	switch {
	case strings.HasPrefix(rest, "//"):
		return p.parseAuthority(rest[2:])
	case strings.HasPrefix(rest, "/"):
		p.inheritAuthority(base)
		return p.parsePath(rest, nil)
	case rest == "":
		r := base.clone()
		return r, nil
	case strings.HasPrefix(rest, "?"):
		r := base.clone()
		r.Fragment = nil
		q, err := p.parseQueryFrom(rest[1:])
		if err != nil {
			return nil, err
		}
		r.Query = q
		return r, nil
	case strings.HasPrefix(rest, "#"):
		r := base.clone()
		f, err := p.parseFragmentFrom(rest[1:])
		if err != nil {
			return nil, err
		}
		r.Fragment = f
		return r, nil
	default:
		p.inheritAuthority(base)
		return p.parsePath(rest, mergePath(base.Path, rest))
	}
}

func (p *machine) inheritAuthority(base *Result) {
	p.r.HasAuthority = base.HasAuthority
	p.r.HasHost = base.HasHost
	p.r.Host = base.Host
	p.r.Username = base.Username
	p.r.Password = base.Password
	p.r.Port = base.Port
}

// mergePath drops the last segment of base's path (the "file name"),
// leaving the directory that a relative reference is resolved against.
func mergePath(basePath []string, rest string) []string {
	if len(basePath) == 0 {
		return nil
	}
	return append([]string(nil), basePath[:len(basePath)-1]...)
}

// parseFile handles the file-scheme special cases: drive letters, UNC
// hosts, and base inheritance of the drive when a relative file
// reference doesn't supply one.
func (p *machine) parseFile(rest string, base *Result) (*Result, error) {
	p.r.Scheme = "file"
	p.r.IsSpecial = true
	p.r.HasAuthority = true
	p.r.HasHost = true
	p.r.Host = host.Host{Kind: host.KindEmpty}

	nSlashes := 0
	for nSlashes < len(rest) && nSlashes < 2 && isSlash(rest[nSlashes]) {
		nSlashes++
	}
	afterSlashes := rest[nSlashes:]

	if nSlashes == 2 {
		return p.parseAuthorityFile(afterSlashes)
	}

	if base != nil && !startsWithWindowsDriveLetter(afterSlashes) {
		p.r.Host = base.Host
		if nSlashes == 1 {
			return p.parsePath("/"+afterSlashes, nil)
		}
		return p.parsePath(afterSlashes, mergePath(base.Path, afterSlashes))
	}

	return p.parsePath("/"+afterSlashes, nil)
}

func isSlash(b byte) bool { return b == '/' || b == '\\' }

func (p *machine) parseAuthorityFile(rest string) (*Result, error) {
	end := indexAny(rest, "/\\?#")
	hostPart := rest
	remainder := ""
	if end >= 0 {
		hostPart = rest[:end]
		remainder = rest[end:]
	}
	if hostPart == "" || strings.EqualFold(hostPart, "localhost") {
		p.r.Host = host.Host{Kind: host.KindEmpty}
	} else {
		h, err := host.Parse(hostPart, true, true, p.opts...)
		if err != nil {
			return nil, err
		}
		p.r.Host = h
	}
	if remainder == "" {
		remainder = "/"
	}
	return p.parsePath(remainder, nil)
}

func startsWithWindowsDriveLetter(s string) bool {
	s = strings.TrimLeft(s, "/\\")
	return isWindowsDriveLetter(s)
}

// isWindowsDriveLetter reports whether s begins with an ASCII letter
// followed by ':' or '|' and is either exactly two characters or is
// followed by '/', '\\', '?', or '#'.
func isWindowsDriveLetter(s string) bool {
	if len(s) < 2 || !isSchemeStart(s[0]) {
		return false
	}
	if s[1] != ':' && s[1] != '|' {
		return false
	}
	if len(s) == 2 {
		return true
	}
	switch s[2] {
	case '/', '\\', '?', '#':
		return true
	default:
		return false
	}
}

func (p *machine) parseAuthority(rest string) (*Result, error) {
	p.r.HasAuthority = true

	delims := "/?#"
	if p.r.IsSpecial {
		delims = "/\\?#"
	}
	end := strings.IndexAny(rest, delims)
	authority := rest
	remainder := ""
	if end >= 0 {
		authority = rest[:end]
		remainder = rest[end:]
	}

	hostport := authority
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		userinfo := authority[:at]
		hostport = authority[at+1:]
		if strings.Count(authority, "@") > 1 {
			return nil, fail("parse authority", werrors.ParseKindAmbiguousUserinfo, authority)
		}
		user, pass, hasPass := strings.Cut(userinfo, ":")
		p.r.Username = percentencode.EncodeString(user, percentencode.UserInfo)
		if hasPass {
			p.r.Password = percentencode.EncodeString(pass, percentencode.UserInfo)
		}
	}

	if hostport == "" && p.r.IsSpecial {
		return nil, fail("parse authority", werrors.ParseKindMissingHost, authority)
	}

	hostStr, portStr, hasPort := splitHostPort(hostport)
	if hostStr == "" && p.r.IsSpecial {
		return nil, fail("parse authority", werrors.ParseKindMissingHost, authority)
	}

	h, err := host.Parse(hostStr, p.r.IsSpecial, false, p.opts...)
	if err != nil {
		return nil, err
	}
	p.r.HasHost = true
	p.r.Host = h

	if hasPort {
		port, err := parsePort(portStr, p.r.Scheme)
		if err != nil {
			return nil, err
		}
		p.r.Port = port
	}

	if remainder == "" {
		remainder = "/"
	}
	switch remainder[0] {
	case '?':
		return p.finishQuery(remainder[1:])
	case '#':
		return p.finishFragment(remainder[1:])
	default:
		return p.parsePath(remainder, nil)
	}
}

// splitHostPort separates "host" from an optional ":port" suffix,
// respecting a bracketed IPv6 literal's internal colons.
func splitHostPort(s string) (h, port string, hasPort bool) {
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

func parsePort(s, scheme string) (*uint16, error) {
	if s == "" {
		return nil, nil
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fail("parse port", werrors.ParseKindInvalidPort, s)
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n > 65535 {
		return nil, fail("parse port", werrors.ParseKindInvalidPort, s)
	}
	if def, ok := defaultPort(scheme); ok && uint16(n) == def {
		return nil, nil
	}
	return u16(uint16(n)), nil
}

func indexAny(s, chars string) int {
	return strings.IndexAny(s, chars)
}

// parsePath consumes the path (and any trailing query/fragment) from
// rest, prepending prefix (a base path's directory segments, already
// percent-encoded) when resolving a merge-style relative reference.
func (p *machine) parsePath(rest string, prefix []string) (*Result, error) {
	end := strings.IndexAny(rest, "?#")
	pathPart := rest
	remainder := ""
	if end >= 0 {
		pathPart = rest[:end]
		remainder = rest[end:]
	}

	sep := "/"
	if p.r.IsSpecial {
		sep = "/\\"
	}
	raw := splitPath(pathPart, sep)
	combined := append(append([]string(nil), prefix...), raw...)
	segs := resolveDotSegments(combined)

	if p.r.Scheme == "file" && len(segs) > 0 && isWindowsDriveLetter(segs[0]) {
		segs[0] = string(segs[0][0]) + ":"
	}

	encoded := make([]string, len(segs))
	for i, s := range segs {
		encoded[i] = percentencode.EncodeString(s, percentencode.Path)
	}
	p.r.Path = encoded

	if remainder == "" {
		return p.r, nil
	}
	if remainder[0] == '?' {
		return p.finishQuery(remainder[1:])
	}
	return p.finishFragment(remainder[1:])
}

func (p *machine) parseOpaquePath(rest string) (*Result, error) {
	end := strings.IndexAny(rest, "?#")
	pathPart := rest
	remainder := ""
	if end >= 0 {
		pathPart = rest[:end]
		remainder = rest[end:]
	}
	p.r.HasOpaquePath = true
	p.r.OpaquePath = percentencode.EncodeString(pathPart, percentencode.C0)

	if remainder == "" {
		return p.r, nil
	}
	if remainder[0] == '?' {
		return p.finishQuery(remainder[1:])
	}
	return p.finishFragment(remainder[1:])
}

func (p *machine) finishQuery(rest string) (*Result, error) {
	end := strings.IndexByte(rest, '#')
	queryPart := rest
	remainder := ""
	if end >= 0 {
		queryPart = rest[:end]
		remainder = rest[end+1:]
	}
	q, err := p.parseQueryFrom(queryPart)
	if err != nil {
		return nil, err
	}
	p.r.Query = q
	if end < 0 {
		return p.r, nil
	}
	return p.finishFragment(remainder)
}

func (p *machine) parseQueryFrom(s string) (*string, error) {
	set := percentencode.Query
	if p.r.IsSpecial {
		set = percentencode.SpecialQuery
	}
	q := percentencode.EncodeString(s, set)
	return &q, nil
}

func (p *machine) finishFragment(rest string) (*Result, error) {
	f, err := p.parseFragmentFrom(rest)
	if err != nil {
		return nil, err
	}
	p.r.Fragment = f
	return p.r, nil
}

func (p *machine) parseFragmentFrom(s string) (*string, error) {
	f := percentencode.EncodeString(s, percentencode.Fragment)
	return &f, nil
}

// splitPath breaks a path string into segments on any byte in sep.
func splitPath(s, sep string) []string {
	if s == "" {
		return nil
	}
	var segs []string
	start := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(sep, s[i]) >= 0 {
			segs = append(segs, s[start:i])
			start = i + 1
		}
	}
	segs = append(segs, s[start:])
	// A leading separator produces a leading empty segment representing
	// the path's root; drop it, since the serializer supplies the sigil.
	if len(segs) > 0 && segs[0] == "" {
		segs = segs[1:]
	}
	return segs
}

// resolveDotSegments removes "." segments and pops the preceding segment
// for ".." segments, mirroring RFC 3986 §5.2.4's remove_dot_segments as
// applied incrementally during path-state parsing.
func resolveDotSegments(segs []string) []string {
	out := make([]string, 0, len(segs))
	for i, s := range segs {
		switch s {
		case ".":
			if i == len(segs)-1 {
				out = append(out, "")
			}
		case "..":
			if len(out) > 0 && !isWindowsDriveLetter(out[len(out)-1]) {
				out = out[:len(out)-1]
			}
			if i == len(segs)-1 {
				out = append(out, "")
			}
		default:
			out = append(out, s)
		}
	}
	return out
}

func trimC0AndSpace(s string) string {
	isC0OrSpace := func(b byte) bool { return b <= 0x20 }
	i, j := 0, len(s)
	for i < j && isC0OrSpace(s[i]) {
		i++
	}
	for j > i && isC0OrSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func stripTabAndNewline(s string) string {
	if strings.IndexAny(s, "\t\n\r") < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' || s[i] == '\n' || s[i] == '\r' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ValidateScheme reports whether s is a syntactically valid scheme, and
// returns its lower-cased form. Used by the scheme setter, which checks
// the new scheme with this function instead of running a parse.
func ValidateScheme(s string) (string, bool) {
	if s == "" || !isSchemeStart(s[0]) {
		return "", false
	}
	for i := 1; i < len(s); i++ {
		if !isSchemeChar(s[i]) {
			return "", false
		}
	}
	return strings.ToLower(s), true
}

// IsSpecialScheme reports whether scheme is one of the URL Standard's
// special schemes (ftp, file, http, https, ws, wss).
func IsSpecialScheme(scheme string) bool { return isSpecialScheme(scheme) }

// DefaultPort returns scheme's default port, if it has one (file never
// does).
func DefaultPort(scheme string) (uint16, bool) { return defaultPort(scheme) }

// ParsePort validates and encodes a port string for scheme, eliding it
// (returning a nil pointer) when it equals the scheme's default port.
func ParsePort(s, scheme string) (*uint16, error) { return parsePort(s, scheme) }

// EncodePathSegments splits pathname into segments using the same
// separator and dot-segment resolution rules the main parser's path
// state applies, then percent-encodes each with the path encode set.
// Used by the pathname setter to re-run path-state semantics on an
// isolated string.
func EncodePathSegments(pathname string, isSpecial bool, scheme string) []string {
	sep := "/"
	if isSpecial {
		sep = "/\\"
	}
	raw := splitPath(pathname, sep)
	segs := resolveDotSegments(raw)
	if scheme == "file" && len(segs) > 0 && isWindowsDriveLetter(segs[0]) {
		segs[0] = string(segs[0][0]) + ":"
	}
	encoded := make([]string, len(segs))
	for i, s := range segs {
		encoded[i] = percentencode.EncodeString(s, percentencode.Path)
	}
	return encoded
}

// EncodeOpaquePathString percent-encodes s with the opaque-path encode
// set (C0 controls), for setters acting on a cannot-be-a-base URL.
func EncodeOpaquePathString(s string) string {
	return percentencode.EncodeString(s, percentencode.C0)
}

// EncodeQueryString percent-encodes s as a query component, using the
// special-query set when isSpecial is set.
func EncodeQueryString(s string, isSpecial bool) string {
	set := percentencode.Query
	if isSpecial {
		set = percentencode.SpecialQuery
	}
	return percentencode.EncodeString(s, set)
}

// EncodeFragmentString percent-encodes s as a fragment component.
func EncodeFragmentString(s string) string {
	return percentencode.EncodeString(s, percentencode.Fragment)
}

// EncodeUserInfoString percent-encodes s as a username or password
// component.
func EncodeUserInfoString(s string) string {
	return percentencode.EncodeString(s, percentencode.UserInfo)
}

// Package rfc2396 bridges this module's WHATWG-conformant URL core to the
// older RFC 2396 generic-syntax model that legacy Go code (net/url and its
// ancestors) was written against, and checks whether a value in one model
// is equivalent to a value in the other.
package rfc2396

import (
	"strconv"
	"strings"

	"github.com/joshuafuller/weburl/internal/host"
	"github.com/joshuafuller/weburl/internal/percentencode"
	"github.com/joshuafuller/weburl/internal/structure"
	"github.com/joshuafuller/weburl/internal/urlstate"
)

// URL holds an RFC 2396-style decomposition: a scheme, an authority
// broken into userinfo/host/port, and a path/query/fragment, each kept
// in its on-the-wire (percent-encoded) form the way net/url's URL does.
type URL struct {
	Scheme   string
	UserInfo string // "user:pass" or "user"; empty if absent
	Host     string // as written: domain, IPv4, "[ipv6]", or opaque
	Port     string // decimal digits, or "" if absent
	Path     string
	Query    string // without the leading '?'
	Fragment string // without the leading '#'

	derivedFromCore bool
}

// FromCore projects a core URL into the RFC 2396 model, so code still
// written against the legacy accessor shape can consume it.
func FromCore(u structure.URL) URL {
	userinfo := u.Username()
	if u.Password() != "" {
		userinfo += ":" + u.Password()
	}
	port := ""
	if p := u.Port(); p != nil {
		port = strconv.Itoa(int(*p))
	}
	return URL{
		Scheme:          u.Scheme(),
		UserInfo:        userinfo,
		Host:            u.Host().String(),
		Port:            port,
		Path:            u.Pathname(),
		Query:           strings.TrimPrefix(u.Search(), "?"),
		Fragment:        strings.TrimPrefix(u.Hash(), "#"),
		derivedFromCore: true,
	}
}

// ToCore builds a legacy-model URL back into the core model by
// reassembling it into a URL string and reparsing it, exercising the
// same parser and encode sets every other entry point does.
func ToCore(u URL) (structure.URL, error) {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteByte(':')
	b.WriteString("//")
	if u.UserInfo != "" {
		b.WriteString(u.UserInfo)
		b.WriteByte('@')
	}
	b.WriteString(u.Host)
	if u.Port != "" {
		b.WriteByte(':')
		b.WriteString(u.Port)
	}
	if u.Path != "" {
		if !strings.HasPrefix(u.Path, "/") {
			b.WriteByte('/')
		}
		b.WriteString(u.Path)
	} else {
		b.WriteByte('/')
	}
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return structure.Parse(b.String(), nil)
}

// Equivalent reports whether core and legacy denote the same resource,
// per this module's component-by-component equivalence check. It
// preserves a handful of deliberately bug-compatible quirks inherited
// from widely-deployed RFC 2396 parsers rather than "fixing" them, since
// callers bridging into legacy code depend on matching that behavior.
func Equivalent(core structure.URL, legacy URL) bool {
	// A legacy value derived from a core URL, where both sides lack
	// userinfo, query and fragment, skips those three checks.
	shortcut := legacy.derivedFromCore && legacy.UserInfo == "" && legacy.Query == "" && legacy.Fragment == "" &&
		core.Username() == "" && core.Password() == "" && core.Search() == "" && core.Hash() == ""

	if !strings.EqualFold(core.Scheme(), legacy.Scheme) {
		return false
	}
	if !shortcut && !userinfoEquivalent(core, legacy) {
		return false
	}
	if !hostEquivalent(core.Host(), legacy.Host) {
		return false
	}
	if !portEquivalent(core, legacy) {
		return false
	}
	if !pathEquivalent(core, legacy) {
		return false
	}
	if shortcut {
		return true
	}
	if !queryEquivalent(core, legacy) {
		return false
	}
	return percentencode.DecodeString(legacy.Fragment) == percentencode.DecodeString(strings.TrimPrefix(core.Hash(), "#"))
}

// userinfoEquivalent compares decoded username/password, with one
// exception: an absent core username (no authority credentials at all)
// is treated as equal to an empty legacy username when a password is
// present, since the 2396 model cannot distinguish "no username" from
// "empty username" once a password follows the ':'.
func userinfoEquivalent(core structure.URL, legacy URL) bool {
	legacyUser, legacyPass, hasPass := strings.Cut(legacy.UserInfo, ":")
	coreUser := percentencode.DecodeString(core.Username())
	coreUser2396 := percentencode.DecodeString(legacyUser)
	if coreUser != coreUser2396 {
		if !(core.Username() == "" && hasPass) {
			return false
		}
	}
	if hasPass && percentencode.DecodeString(core.Password()) != percentencode.DecodeString(legacyPass) {
		return false
	}
	return true
}

func hostEquivalent(h host.Host, legacyHost string) bool {
	switch h.Kind {
	case host.KindIPv6:
		return legacyHost == "["+h.IPv6.String()+"]" || legacyHost == h.IPv6.String()
	case host.KindIPv4:
		return legacyHost == h.IPv4.String()
	case host.KindDomain:
		return strings.EqualFold(legacyHost, h.Domain)
	case host.KindOpaque:
		return percentencode.DecodeString(legacyHost) == percentencode.DecodeString(h.Opaque)
	default:
		return legacyHost == ""
	}
}

func portEquivalent(core structure.URL, legacy URL) bool {
	corePort := ""
	if p := core.Port(); p != nil {
		corePort = strconv.Itoa(int(*p))
	} else if def, ok := urlstate.DefaultPort(core.Scheme()); ok && legacy.Port == strconv.Itoa(int(def)) {
		return true
	}
	return corePort == legacy.Port
}

// pathEquivalent compares legacy's path against core's, after running it
// through the same dot-segment resolution the parser applies. A legacy
// path containing a ';' is skipped (treated as equivalent unconditionally):
// RFC 2396 path parameters get silently mangled by several widely used
// legacy parsers, and bridging code that already tolerates that mangling
// must keep tolerating it here.
func pathEquivalent(core structure.URL, legacy URL) bool {
	if strings.Contains(legacy.Path, ";") {
		return true
	}
	segs := urlstate.EncodePathSegments(legacy.Path, core.IsSpecial(), core.Scheme())
	normalized := "/" + strings.Join(segs, "/")
	return normalized == core.Pathname()
}

// queryEquivalent allows a legacy query to differ from core's only in
// whether an apostrophe is percent-encoded, since the special-query
// encode set (applied only for special schemes) is the one place core
// encodes a byte that the legacy model leaves untouched.
func queryEquivalent(core structure.URL, legacy URL) bool {
	coreQuery := strings.TrimPrefix(core.Search(), "?")
	if legacy.Query == coreQuery {
		return true
	}
	return strings.ReplaceAll(legacy.Query, "'", "%27") == coreQuery
}

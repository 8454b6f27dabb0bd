// Package filepath converts between local filesystem paths and file URLs,
// covering both POSIX and Windows path conventions.
package filepath

import (
	"strings"

	werrors "github.com/joshuafuller/weburl/internal/errors"
	"github.com/joshuafuller/weburl/internal/host"
	"github.com/joshuafuller/weburl/internal/percentencode"
	"github.com/joshuafuller/weburl/internal/structure"
)

// pathEncodeSet leaves '/' untouched (it is the path's own separator)
// while percent-encoding everything percentencode.Path would, plus '%'
// itself so an already-percent-looking byte sequence in the input isn't
// mistaken for an escape on the way back out.
func pathEncodeSet(b byte) bool {
	return percentencode.Path(b) || b == '%'
}

// FromPOSIXPath converts an absolute POSIX filesystem path to a file URL.
func FromPOSIXPath(path string) (string, error) {
	if path == "" {
		return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindEmpty, Path: path}
	}
	if strings.IndexByte(path, 0) >= 0 {
		return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindNullByte, Path: path}
	}
	if !strings.HasPrefix(path, "/") {
		return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindRelative, Path: path}
	}
	encoded := percentencode.EncodeString(path, pathEncodeSet)
	return "file://" + encoded, nil
}

// ToPOSIXPath converts a file URL back to an absolute POSIX path.
func ToPOSIXPath(rawURL string) (string, error) {
	u, err := structure.Parse(rawURL, nil)
	if err != nil {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindNotAFileURL, URL: rawURL}
	}
	if u.Scheme() != "file" {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindNotAFileURL, URL: rawURL}
	}
	h := u.Host()
	if h.Kind != host.KindEmpty && !(h.Kind == host.KindDomain && h.Domain == "localhost") {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindNonLocalFile, URL: rawURL}
	}
	if u.HasOpaquePath() {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindRelativePath, URL: rawURL}
	}

	decoded := percentencode.DecodeString(u.Pathname())
	if strings.IndexByte(decoded, 0) >= 0 {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindEncodedNull, URL: rawURL}
	}
	// A path segment that was itself "%2F" decodes to a literal '/',
	// which would be indistinguishable from an extra path separator.
	for _, seg := range strings.Split(u.Pathname(), "/") {
		if strings.Contains(percentencode.DecodeString(seg), "/") {
			return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindEncodedSeparator, URL: rawURL}
		}
	}
	return decoded, nil
}

// FromWindowsPath converts a Windows filesystem path (drive-absolute,
// UNC, or Win32 file-namespace) to a file URL.
func FromWindowsPath(path string) (string, error) {
	if path == "" {
		return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindEmpty, Path: path}
	}
	if strings.IndexByte(path, 0) >= 0 {
		return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindNullByte, Path: path}
	}

	norm := strings.ReplaceAll(path, `\`, "/")

	switch {
	case strings.HasPrefix(norm, "//?/"):
		rest := norm[4:]
		if !isDriveAbsolute(rest) {
			return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindUnsupportedNamespacedPath, Path: path}
		}
		return driveAbsoluteToFileURL(rest)

	case strings.HasPrefix(norm, "//"):
		rest := strings.TrimPrefix(norm, "//")
		server, share, ok := strings.Cut(rest, "/")
		if !ok || server == "" {
			return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindRelative, Path: path}
		}
		encoded := percentencode.EncodeString("/"+share, pathEncodeSet)
		return "file://" + server + encoded, nil

	case isDriveAbsolute(norm):
		return driveAbsoluteToFileURL(norm)

	default:
		return "", &werrors.FilePathError{Operation: "path to URL", Kind: werrors.FilePathKindRelative, Path: path}
	}
}

func isDriveAbsolute(s string) bool {
	return len(s) >= 3 && isASCIILetter(s[0]) && s[1] == ':' && s[2] == '/'
}

func isASCIILetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func driveAbsoluteToFileURL(normalized string) (string, error) {
	encoded := percentencode.EncodeString("/"+normalized, pathEncodeSet)
	return "file://" + encoded, nil
}

// ToWindowsPath converts a file URL back to a Windows filesystem path.
// An empty host requires a drive-absolute path, and a localhost host
// yields a local path; any other domain host produces a UNC path. IPv4,
// IPv6 and opaque hosts are rejected as unsupported hostnames.
func ToWindowsPath(rawURL string) (string, error) {
	u, err := structure.Parse(rawURL, nil)
	if err != nil {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindNotAFileURL, URL: rawURL}
	}
	if u.Scheme() != "file" {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindNotAFileURL, URL: rawURL}
	}
	if u.HasOpaquePath() {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindRelativePath, URL: rawURL}
	}

	decoded := percentencode.DecodeString(u.Pathname())
	if strings.IndexByte(decoded, 0) >= 0 {
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindEncodedNull, URL: rawURL}
	}

	h := u.Host()
	switch h.Kind {
	case host.KindEmpty:
		trimmed := strings.TrimPrefix(decoded, "/")
		if !isDriveAbsolute(trimmed) {
			return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindRelativePath, URL: rawURL}
		}
		return strings.ReplaceAll(trimmed, "/", `\`), nil
	case host.KindDomain:
		if h.Domain == "localhost" {
			trimmed := strings.TrimPrefix(decoded, "/")
			return strings.ReplaceAll(trimmed, "/", `\`), nil
		}
		return `\\` + h.Domain + strings.ReplaceAll(decoded, "/", `\`), nil
	default:
		return "", &werrors.URLToFilePathError{Operation: "URL to path", Kind: werrors.URLToFilePathKindUnsupportedHostname, URL: rawURL}
	}
}

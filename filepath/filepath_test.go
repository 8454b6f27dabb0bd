package filepath

import (
	"strings"
	"testing"
)

func TestFromPOSIXPath(t *testing.T) {
	got, err := FromPOSIXPath("/usr/local/bin")
	if err != nil {
		t.Fatalf("FromPOSIXPath error = %v", err)
	}
	if got != "file:///usr/local/bin" {
		t.Errorf("got %q, want file:///usr/local/bin", got)
	}
}

func TestFromPOSIXPath_RejectsRelative(t *testing.T) {
	if _, err := FromPOSIXPath("relative/path"); err == nil {
		t.Fatal("expected an error for a relative path")
	}
}

func TestFromPOSIXPath_RejectsEmpty(t *testing.T) {
	if _, err := FromPOSIXPath(""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestPOSIXPathRoundTrip(t *testing.T) {
	in := "/a/directory with spaces/file.txt"
	u, err := FromPOSIXPath(in)
	if err != nil {
		t.Fatalf("FromPOSIXPath error = %v", err)
	}
	back, err := ToPOSIXPath(u)
	if err != nil {
		t.Fatalf("ToPOSIXPath(%q) error = %v", u, err)
	}
	if back != in {
		t.Errorf("round trip: got %q, want %q", back, in)
	}
}

func TestToPOSIXPath_RejectsNonFileScheme(t *testing.T) {
	if _, err := ToPOSIXPath("http://example.com/a"); err == nil {
		t.Fatal("expected an error for a non-file URL")
	}
}

func TestToPOSIXPath_RejectsRemoteHost(t *testing.T) {
	if _, err := ToPOSIXPath("file://remotehost/a/b"); err == nil {
		t.Fatal("expected an error for a remote host")
	}
}

func TestToPOSIXPath_RejectsEncodedSeparator(t *testing.T) {
	if _, err := ToPOSIXPath("file:///a%2Fb"); err == nil {
		t.Fatal("expected an error for an encoded path separator")
	}
}

func TestFromWindowsPath_DriveAbsolute(t *testing.T) {
	got, err := FromWindowsPath(`C:\Users\alice\file.txt`)
	if err != nil {
		t.Fatalf("FromWindowsPath error = %v", err)
	}
	if got != "file:///C:/Users/alice/file.txt" {
		t.Errorf("got %q, want file:///C:/Users/alice/file.txt", got)
	}
}

func TestFromWindowsPath_UNC(t *testing.T) {
	got, err := FromWindowsPath(`\\server\share\dir\file.txt`)
	if err != nil {
		t.Fatalf("FromWindowsPath error = %v", err)
	}
	if got != "file://server/share/dir/file.txt" {
		t.Errorf("got %q, want file://server/share/dir/file.txt", got)
	}
}

func TestFromWindowsPath_Win32Namespace(t *testing.T) {
	got, err := FromWindowsPath(`\\?\C:\Windows`)
	if err != nil {
		t.Fatalf("FromWindowsPath error = %v", err)
	}
	if got != "file:///C:/Windows" {
		t.Errorf("got %q, want file:///C:/Windows", got)
	}
}

func TestFromWindowsPath_RejectsRelative(t *testing.T) {
	if _, err := FromWindowsPath(`Users\alice`); err == nil {
		t.Fatal("expected an error for a relative Windows path")
	}
}

func TestWindowsPathRoundTrip_DriveAbsolute(t *testing.T) {
	in := `C:\Users\alice\file.txt`
	u, err := FromWindowsPath(in)
	if err != nil {
		t.Fatalf("FromWindowsPath error = %v", err)
	}
	back, err := ToWindowsPath(u)
	if err != nil {
		t.Fatalf("ToWindowsPath(%q) error = %v", u, err)
	}
	if back != in {
		t.Errorf("round trip: got %q, want %q", back, in)
	}
}

func TestWindowsPathRoundTrip_UNC(t *testing.T) {
	in := `\\server\share\dir`
	u, err := FromWindowsPath(in)
	if err != nil {
		t.Fatalf("FromWindowsPath error = %v", err)
	}
	back, err := ToWindowsPath(u)
	if err != nil {
		t.Fatalf("ToWindowsPath(%q) error = %v", u, err)
	}
	if back != in {
		t.Errorf("round trip: got %q, want %q", back, in)
	}
}

func TestToWindowsPath_RejectsNonFileScheme(t *testing.T) {
	if _, err := ToWindowsPath("https://example.com/a"); err == nil {
		t.Fatal("expected an error for a non-file URL")
	}
}

func TestFromWindowsPath_NullByte(t *testing.T) {
	if _, err := FromWindowsPath("C:\\a\x00b"); err == nil {
		t.Fatal("expected an error for an embedded NUL byte")
	}
}

func TestFromPOSIXPath_PercentEncodesSpaces(t *testing.T) {
	got, err := FromPOSIXPath("/a b")
	if err != nil {
		t.Fatalf("FromPOSIXPath error = %v", err)
	}
	if !strings.Contains(got, "%20") {
		t.Errorf("got %q, want a %%20-encoded space", got)
	}
}

package codec

import (
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	branches := []string{
		"main",
		"feature/x",
		"a/b/c",
		"fix/hello world",
		"release/v1.0",
		"some..branch",
		".hidden",
		"feature--test",
		"a--b--c",
		"feature/--/test",
		"a---b",
		"a----b",
		"100%/done",
		"a%2D%2Db",
		"weird\x01name",
		"-leading-hyphen",
		"trailing-hyphen-",
	}

	for _, branch := range branches {
		encoded := Encode(branch)
		decoded, err := Decode(encoded)
		if err != nil {
			t.Errorf("Decode(Encode(%q)) failed: %v", branch, err)
			continue
		}
		if decoded != branch {
			t.Errorf("round trip %q: encoded %q, decoded %q", branch, encoded, decoded)
		}
	}
}

func TestInjectivity(t *testing.T) {
	pairs := [][2]string{
		{"feature/test", "feature--test"},
		{"a/b", "a--b"},
		{"a/b", "a%2Fb"},
		{"a--b", "a%2D%2Db"},
		{"some..branch", "some%2E%2Ebranch"},
	}

	for _, p := range pairs {
		if Encode(p[0]) == Encode(p[1]) {
			t.Errorf("Encode(%q) == Encode(%q) == %q", p[0], p[1], Encode(p[0]))
		}
	}
}

func TestEncodedFormIsPathSafe(t *testing.T) {
	branches := []string{
		"main",
		"feature/x",
		"fix/hello world",
		"some..branch",
		"..",
		".hidden",
		"./.",
		"ctrl\x00byte",
		"ctrl\nbyte",
	}

	for _, branch := range branches {
		encoded := Encode(branch)
		if strings.Contains(encoded, "/") {
			t.Errorf("Encode(%q) = %q contains a slash", branch, encoded)
		}
		if strings.Contains(encoded, "\x00") {
			t.Errorf("Encode(%q) = %q contains a null byte", branch, encoded)
		}
		if strings.Contains(encoded, "..") {
			t.Errorf("Encode(%q) = %q contains a dot pair", branch, encoded)
		}
		if strings.HasPrefix(encoded, ".") {
			t.Errorf("Encode(%q) = %q starts with a dot", branch, encoded)
		}
	}
}

func TestDecodeRejectsMalformedEscapes(t *testing.T) {
	for _, bad := range []string{"%", "%2", "%zz", "abc%G1"} {
		if _, err := Decode(bad); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", bad)
		}
	}
}

func TestCommonNamesStayReadable(t *testing.T) {
	cases := map[string]string{
		"main":         "main",
		"feature/auth": "feature--auth",
		"fix-typo":     "fix-typo",
		"release/v1.0": "release--v1.0",
	}
	for branch, want := range cases {
		if got := Encode(branch); got != want {
			t.Errorf("Encode(%q) = %q, want %q", branch, got, want)
		}
	}
}

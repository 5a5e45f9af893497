package version

import "testing"

func TestString(t *testing.T) {
	Version, GitSHA, BuildTime = "1.2.0", "abc123", "2026-10-19"
	t.Cleanup(func() { Version, GitSHA, BuildTime = "dev", "unknown", "unknown" })

	want := "pathguard 1.2.0 (abc123, built 2026-10-19)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

package media_test

import (
	"testing"

	"plexify/internal/media"
)

func TestIdentityStable(t *testing.T) {
	a := media.Identity("shows/pilot.webm")
	b := media.Identity("shows/pilot.webm")
	if a != b {
		t.Fatalf("identity not stable: %q vs %q", a, b)
	}
}

func TestIdentityCollisionFree(t *testing.T) {
	// These relative paths would collide under naive separator flattening.
	paths := []string{
		"a/b.mkv",
		"a%2Fb.mkv",
		"a%b.mkv",
		"a/b/c.mkv",
		"a/b%2Fc.mkv",
	}
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		id := media.Identity(p)
		if prev, ok := seen[id]; ok {
			t.Fatalf("identity collision: %q and %q both map to %q", prev, p, id)
		}
		seen[id] = p
	}
}

func TestIdentityStripsExtensionOnly(t *testing.T) {
	if got := media.Identity("show.s01.e02.mkv"); got != "show.s01.e02" {
		t.Fatalf("unexpected identity: %q", got)
	}
}

func TestIdentitySourceStemRoundTrip(t *testing.T) {
	for _, p := range []string{"a/b", "a%b", "x/y/z", "plain"} {
		id := media.Identity(p + ".mkv")
		if got := media.IdentitySourceStem(id); got != p {
			t.Fatalf("round trip failed for %q: got %q via %q", p, got, id)
		}
	}
}

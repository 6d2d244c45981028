package service

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"video-hosting-service/ddd/domain/vo"
	"video-hosting-service/pkg/errno"
)

func newTestResolver(t *testing.T) *PathResolver {
	t.Helper()
	r, err := NewPathResolver(t.TempDir(), vo.DefaultQualityAliases())
	if err != nil {
		t.Fatalf("NewPathResolver: %v", err)
	}
	return r
}

func TestResolveAliasEquivalence(t *testing.T) {
	r := newTestResolver(t)

	// 480p has no directory of its own; it must resolve to the exact same
	// physical path as 360p.
	p480, err := r.Resolve(42, "480p", "index.m3u8")
	if err != nil {
		t.Fatalf("resolve 480p: %v", err)
	}
	p360, err := r.Resolve(42, "360p", "index.m3u8")
	if err != nil {
		t.Fatalf("resolve 360p: %v", err)
	}
	if p480 != p360 {
		t.Errorf("480p resolved to %q, 360p to %q; want identical", p480, p360)
	}
	if !strings.Contains(p480, filepath.Join("42", "360p")) {
		t.Errorf("path %q does not point at the 360p variant dir", p480)
	}
}

func TestResolveKnownQualities(t *testing.T) {
	r := newTestResolver(t)
	for _, q := range []string{"360p", "480p", "720p", "1080p"} {
		if _, err := r.Resolve(7, q, "000.ts"); err != nil {
			t.Errorf("quality %s should resolve: %v", q, err)
		}
	}
}

func TestResolveUnknownQuality(t *testing.T) {
	r := newTestResolver(t)
	for _, q := range []string{"240p", "4k", "", "HLS", "720P"} {
		_, err := r.Resolve(7, q, "index.m3u8")
		if !errors.Is(err, errno.ErrNotFound) {
			t.Errorf("quality %q: err = %v, want ErrNotFound", q, err)
		}
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	r := newTestResolver(t)
	cases := []string{
		"../../../etc/passwd",
		"..",
		"a/b.ts",
		`a\b.ts`,
		"/etc/passwd",
		"",
	}
	for _, name := range cases {
		_, err := r.Resolve(7, "720p", name)
		if !errors.Is(err, errno.ErrNotFound) {
			t.Errorf("filename %q: err = %v, want ErrNotFound", name, err)
		}
	}
}

func TestResolveErrorsAreIndistinguishable(t *testing.T) {
	r := newTestResolver(t)

	_, errQuality := r.Resolve(7, "240p", "index.m3u8")
	_, errEscape := r.Resolve(7, "720p", "../secret")

	// Both failure modes must collapse into the same sentinel so a client
	// probing the API learns nothing from the error class.
	if !errors.Is(errQuality, errno.ErrNotFound) || !errors.Is(errEscape, errno.ErrNotFound) {
		t.Errorf("expected both to be ErrNotFound, got %v and %v", errQuality, errEscape)
	}
}

func TestResolveIsPure(t *testing.T) {
	r := newTestResolver(t)
	first, err := r.Resolve(9, "1080p", "003.ts")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := r.Resolve(9, "1080p", "003.ts")
		if err != nil || again != first {
			t.Fatalf("resolve not deterministic: %q vs %q (err=%v)", again, first, err)
		}
	}
}

func TestNewPathResolverRejectsBadAliases(t *testing.T) {
	if _, err := NewPathResolver(t.TempDir(), map[string]string{"480p": "999p"}); err == nil {
		t.Error("expected constructor to reject alias with no ladder target")
	}
}

func TestVariantDir(t *testing.T) {
	r := newTestResolver(t)
	dir, err := r.VariantDir(42, "480p")
	if err != nil {
		t.Fatalf("VariantDir: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join("42", "360p")) {
		t.Errorf("VariantDir = %q, want .../42/360p", dir)
	}
	if _, err := r.VariantDir(42, "240p"); !errors.Is(err, errno.ErrNotFound) {
		t.Errorf("unknown quality err = %v, want ErrNotFound", err)
	}
}

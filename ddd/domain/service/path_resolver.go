package service

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"video-hosting-service/ddd/domain/vo"
	"video-hosting-service/pkg/errno"
)

// PathResolver maps a logical (videoID, requestedQuality, filename) triple
// to a single physical path inside the sandboxed media root. It is pure:
// no I/O, no side effects, deterministic.
//
// Every failure mode collapses into errno.ErrNotFound so a caller cannot
// distinguish a traversal attempt from a simply missing file.
type PathResolver struct {
	hlsRoot string // canonical <mediaRoot>/hls
	aliases map[string]string
}

// NewPathResolver builds a resolver rooted at mediaRoot with the given
// quality-alias table. The table is copied; callers cannot mutate it later.
func NewPathResolver(mediaRoot string, aliases map[string]string) (*PathResolver, error) {
	if mediaRoot == "" {
		return nil, fmt.Errorf("media root must not be empty")
	}
	abs, err := filepath.Abs(filepath.Join(mediaRoot, "hls"))
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	if err := vo.ValidateAliases(aliases, vo.DefaultLadder()); err != nil {
		return nil, err
	}
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[k] = v
	}
	return &PathResolver{hlsRoot: abs, aliases: copied}, nil
}

// Resolve returns the absolute path of filename for the aliased quality of
// videoID, or errno.ErrNotFound when the quality label is unknown, the
// filename carries a path separator, or the composed path would leave the
// variant directory.
func (r *PathResolver) Resolve(videoID int64, requestedQuality, filename string) (string, error) {
	variant, ok := r.aliases[requestedQuality]
	if !ok {
		return "", fmt.Errorf("unknown quality %q: %w", requestedQuality, errno.ErrNotFound)
	}

	// The route supplies an opaque leaf name; a separator in it is rejected
	// before any path is composed.
	if filename == "" || strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("illegal filename: %w", errno.ErrNotFound)
	}

	base := filepath.Join(r.hlsRoot, strconv.FormatInt(videoID, 10), variant)
	path := filepath.Join(base, filename)

	// Backstop: filepath.Join cleans ".."; verify the result is still pinned
	// under the variant directory.
	if path != base && !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes media root: %w", errno.ErrNotFound)
	}
	if path == base {
		return "", fmt.Errorf("illegal filename: %w", errno.ErrNotFound)
	}

	return path, nil
}

// VariantDir returns the directory the given quality label serves from,
// without touching the filesystem.
func (r *PathResolver) VariantDir(videoID int64, requestedQuality string) (string, error) {
	variant, ok := r.aliases[requestedQuality]
	if !ok {
		return "", fmt.Errorf("unknown quality %q: %w", requestedQuality, errno.ErrNotFound)
	}
	return filepath.Join(r.hlsRoot, strconv.FormatInt(videoID, 10), variant), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// FileURI returns the file URI addressing path. The Converter contract is
// URI-based so backends never assume bare-path semantics.
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// PathFromFileURI resolves a file URI back to a filesystem path.
func PathFromFileURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parsing converter URI %s: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported converter URI scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

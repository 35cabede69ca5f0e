// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// FSDocuments serves markup documents from an fs.FS. Document uris are
// slash-separated paths relative to the filesystem root; leading slashes
// and "." segments are normalized away.
type FSDocuments struct {
	fsys fs.FS
}

// NewFSDocuments creates a document provider over fsys.
func NewFSDocuments(fsys fs.FS) *FSDocuments {
	return &FSDocuments{fsys: fsys}
}

// OpenDocument opens the document at uri for reading.
func (d *FSDocuments) OpenDocument(uri string) (io.ReadCloser, error) {
	name, ok := cleanURI(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDocumentNotFound, uri)
	}
	f, err := d.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDocumentNotFound, uri, err)
	}
	return f, nil
}

// DocumentExists reports whether uri resolves to a document.
func (d *FSDocuments) DocumentExists(uri string) bool {
	name, ok := cleanURI(uri)
	if !ok {
		return false
	}
	info, err := fs.Stat(d.fsys, name)
	return err == nil && !info.IsDir()
}

// cleanURI normalizes a document uri into an fs.FS path.
// Returns false for uris that escape the filesystem root.
func cleanURI(uri string) (string, bool) {
	name := path.Clean(strings.TrimPrefix(uri, "/"))
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", false
	}
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

// Ensure FSDocuments implements DocumentProvider.
var _ DocumentProvider = (*FSDocuments)(nil)

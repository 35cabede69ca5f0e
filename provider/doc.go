// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package provider supplies the pluggable resource loaders a UI runtime
// queries by name or path: fonts, textures, and markup documents.
//
// The three provider kinds are grouped into a [Bundle], which the host
// builds once and hands to the bridge configuration. The bridge binds the
// bundle to the UI runtime at construction and disposes it during ordered
// teardown, after every view holding provider-backed resources has been
// destroyed.
//
// # Implementations
//
// The package ships file-system backed defaults:
//
//   - [FSDocuments] serves markup documents from an fs.FS
//   - [FontSet] holds parsed TTF/OTF fonts, matched by family name or
//     BCP 47 language tag
//   - [ImageTextures] decodes image files from an fs.FS (PNG, JPEG, GIF,
//     BMP, TIFF, WebP)
//
// Hosts with packed asset archives implement the same interfaces over
// their own storage.
//
// # Thread Safety
//
// Providers are NOT safe for concurrent use. The bridge drives them from
// the host's render-loop thread only.
package provider

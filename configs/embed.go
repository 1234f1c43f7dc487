// Package configs provides the embedded configuration template for
// contask. The template is embedded at build time with go:embed so it
// ships inside the binary for source builds and releases alike; it is
// written out by `contask init`.
package configs

import _ "embed"

// CommandTableTemplate is the starter contask.yaml written by
// `contask init` into the watched root.
//
//go:embed contask.example.yaml
var CommandTableTemplate string

// Package web holds the embedded assets served by the bridge.
package web

import _ "embed"

// ChatPage is the single-file chat UI served at the bridge root.
//
//go:embed index.html
var ChatPage []byte

// Package db provides the embedded catalog seed data and its loader.
package db

import "embed"

// seedFS contains the static menu and wine list, compiled into the binary.
// The catalogs are read once at startup and never refetched.
//
//go:embed seed/menu.json seed/wines.json
var seedFS embed.FS

// Package templates holds the project template tree compiled into the binary.
//
// Each top-level directory is a layer. Every project gets base; router
// projects additionally get router. Files ending in .tmpl are directive
// templates rendered against the run's options, everything else is copied
// verbatim.
package templates

import "embed"

// FS holds every template layer.
//
//go:embed all:base all:router
var FS embed.FS

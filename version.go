package jotter

import _ "embed"

// Version is the semantic version of the library, read from the VERSION file.
//
//go:embed VERSION
var Version string

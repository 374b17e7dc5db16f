package folio

import "embed"

// EmbeddedAssets contains the default stylesheet shipped with the engine.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

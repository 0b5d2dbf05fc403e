package commands

// FormatDependencies exports formatDependencies for testing.
var FormatDependencies = formatDependencies //nolint:gochecknoglobals // test export

// ResolveAPIKey exports resolveAPIKey for testing.
var ResolveAPIKey = resolveAPIKey //nolint:gochecknoglobals // test export

// MaskKey exports maskKey for testing.
var MaskKey = maskKey //nolint:gochecknoglobals // test export

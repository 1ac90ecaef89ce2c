package pokedb

var (
	// Version of pokedb, set by the build.
	Version = "v0.1.0"
	// Build timestamp, set by the build.
	Build = "n/a"
)

package config

import "time"

const (
	// DefaultConfigFile is looked up in the working directory when no
	// --config flag is given.
	DefaultConfigFile = ".topoorder.yaml"

	DefaultRoot          = "lib"
	DefaultPackage       = "manim_web"
	DefaultCommentMarker = "// import '"
	DefaultOutput        = "topo_order.txt"
	DefaultFormat        = "lines"
	DefaultDebounce      = 500 * time.Millisecond
)

// GetDefaultConfig returns the configuration used when nothing else is set.
func GetDefaultConfig() Config {
	return Config{
		Root:          DefaultRoot,
		Package:       DefaultPackage,
		CommentMarker: DefaultCommentMarker,
		Output:        DefaultOutput,
		Format:        DefaultFormat,
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

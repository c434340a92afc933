package domain

// ConfigFilename is the configuration file looked up from the working
// directory upward.
const ConfigFilename = "crashmin.yaml"

// Config is the resolved tool and pipeline configuration. Every field has a
// usable zero default; the file and the command line only override.
type Config struct {
	// Tools overrides the external tool locations.
	Tools ToolPaths `yaml:"tools"`

	// Reducer picks the default reduction backend ("structural" or
	// "source"). Empty lets the pipeline choose from the crash site.
	Reducer string `yaml:"reducer"`

	// MaxRegionLines bounds the source pre-pass include-region skip.
	MaxRegionLines int `yaml:"maxRegionLines"`
}

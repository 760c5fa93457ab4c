package equation

import "github.com/spf13/viper"

// Config is the string-keyed configuration bag of spec §4.5/§6:
// unrecognized keys and unrecognized values are both ignored
// (UnknownConfigValue silently falls back to the default) rather than
// rejected.
type Config struct {
	// Reduce selects a post-product simplification pass: "forward",
	// "backward", "bidirectional", or "" for none.
	Reduce string
	// AFAType selects the symbol encoding the emitter uses: "bits"
	// (default) or "tracks".
	AFAType string
}

// LoadConfig reads the recognized keys out of v, ignoring everything
// else, the way the reference CLI binds flags through a viper bag rather
// than parsing a bespoke config struct.
func LoadConfig(v *viper.Viper) Config {
	return Config{
		Reduce:  v.GetString("reduce"),
		AFAType: v.GetString("afa-type"),
	}
}

// NormalizedReduce returns Reduce if it names a recognized reduction pass,
// or "" otherwise — an unrecognized value is an UnknownConfigValue,
// silently defaulted to "no reduction" rather than rejected.
func (c Config) NormalizedReduce() string {
	switch c.Reduce {
	case "forward", "backward", "bidirectional":
		return c.Reduce
	default:
		return ""
	}
}

func (c Config) useBits() bool {
	return c.AFAType != "tracks"
}

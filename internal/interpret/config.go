package interpret

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Config is a category-code table as read from YAML:
//
//	global_defs: false
//	categories:
//	  "@": letter
//	  "|": escape
//	  "^^M": end_of_line
//
// Keys are single characters, or ^^ followed by one character for the
// control characters (^^@ is NUL, ^^M is carriage return, ^^? is DEL).
type Config struct {
	GlobalDefs bool                `yaml:"global_defs"`
	Categories map[string]Category `yaml:"categories"`
}

// DefaultConfig describes the categories of the ASCII range before any
// assignment.
func DefaultConfig() *Config {
	config := &Config{Categories: make(map[string]Category, len(defaultCategories))}
	for i, category := range defaultCategories {
		config.Categories[charKey(rune(i))] = category
	}
	return config
}

func LoadConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	config := &Config{}
	if err := decoder.Decode(config); err != nil && err != io.EOF {
		return nil, NewErrorf(PARSE_ERROR, "category config: %s", err).Wrap(err)
	}
	for key := range config.Categories {
		if _, err := parseCharKey(key); err != nil {
			return nil, err
		}
	}
	return config, nil
}

// Apply writes the configuration into the root group of s. It is meant
// to run before any input is read.
func (c *Config) Apply(s *State) {
	for key, category := range c.Categories {
		char, _ := parseCharKey(key)
		s.groups.SetCategory(char, category, true)
	}
	s.groups.frames[0].globalDefs = c.GlobalDefs
}

func (c *Config) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return encoder.Close()
}

func charKey(char rune) string {
	switch {
	case char < 0x20:
		return "^^" + string(char+0x40)
	case char == 0x7f:
		return "^^?"
	default:
		return string(char)
	}
}

func parseCharKey(key string) (rune, error) {
	chars := []rune(key)
	switch {
	case len(chars) == 1:
		return chars[0], nil
	case len(chars) == 3 && chars[0] == '^' && chars[1] == '^' && chars[2] < 0x80:
		if chars[2] < 0x40 {
			return chars[2] + 0x40, nil
		}
		return chars[2] - 0x40, nil
	default:
		return 0, NewErrorf(PARSE_ERROR, "category config: key %q is not a single character", key)
	}
}

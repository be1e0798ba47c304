package keypath

import (
	"errors"
	"fmt"
	"strings"
)

// Default configuration values.
const (
	DefaultKeyDelimiter       = "."
	DefaultAttributeDelimiter = "#"
	DefaultRepetitionStart    = 1
	DefaultRepetitionPattern  = "[%s]"
)

// indexVerb is the placeholder the repetition pattern must contain exactly once.
const indexVerb = "%s"

// Config describes how a flat key is composed from path segments.
//
// A Config is a plain value. It is validated and compiled into a Grammar by
// New; the Grammar keeps its own copy, so changing a Config after New has
// no effect on grammars already built from it.
type Config struct {
	// KeyDelimiter separates the segments of a key.
	KeyDelimiter string
	// AttributeSupport controls whether attributes are flattened.
	AttributeSupport bool
	// AttributeDelimiter separates an element segment from an attribute name.
	AttributeDelimiter string
	// RepetitionStart is the index given to the first member of a
	// repeated sibling group.
	RepetitionStart int
	// RepetitionPattern renders a repetition index. It must contain
	// exactly one %s.
	RepetitionPattern string
}

// DefaultConfig returns the configuration producing keys such as
// root.item[2]#id.
func DefaultConfig() Config {
	return Config{
		KeyDelimiter:       DefaultKeyDelimiter,
		AttributeSupport:   true,
		AttributeDelimiter: DefaultAttributeDelimiter,
		RepetitionStart:    DefaultRepetitionStart,
		RepetitionPattern:  DefaultRepetitionPattern,
	}
}

// Validate reports whether c describes an unambiguous grammar.
func (c Config) Validate() error {
	_, _, err := c.affixes()
	return err
}

// affixes validates c and returns the text around the index placeholder of
// the repetition pattern.
func (c Config) affixes() (prefix, suffix string, err error) {
	if c.KeyDelimiter == "" {
		return "", "", errors.New("keypath: key delimiter cannot be empty")
	}
	if c.AttributeDelimiter == "" {
		return "", "", errors.New("keypath: attribute delimiter cannot be empty")
	}
	if c.RepetitionStart < 0 {
		return "", "", fmt.Errorf("keypath: repetition start cannot be negative, got %d", c.RepetitionStart)
	}

	prefix, suffix, ok := strings.Cut(c.RepetitionPattern, indexVerb)
	if !ok || strings.Contains(suffix, indexVerb) {
		return "", "", fmt.Errorf("keypath: repetition pattern %q must contain %s exactly once", c.RepetitionPattern, indexVerb)
	}
	if prefix == "" {
		return "", "", fmt.Errorf("keypath: repetition pattern %q needs text before %s", c.RepetitionPattern, indexVerb)
	}
	if strings.ContainsAny(prefix+suffix, "0123456789") {
		return "", "", fmt.Errorf("keypath: repetition pattern %q cannot contain digits", c.RepetitionPattern)
	}

	for _, s := range []string{c.AttributeDelimiter, prefix, suffix} {
		if strings.Contains(s, c.KeyDelimiter) {
			return "", "", fmt.Errorf("keypath: key delimiter %q conflicts with %q", c.KeyDelimiter, s)
		}
	}
	if strings.Contains(c.KeyDelimiter, c.AttributeDelimiter) {
		return "", "", fmt.Errorf("keypath: attribute delimiter %q conflicts with key delimiter %q", c.AttributeDelimiter, c.KeyDelimiter)
	}
	if strings.ContainsAny(c.AttributeDelimiter, prefix+suffix) {
		return "", "", fmt.Errorf("keypath: attribute delimiter %q conflicts with repetition pattern %q", c.AttributeDelimiter, c.RepetitionPattern)
	}
	return prefix, suffix, nil
}

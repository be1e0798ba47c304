package xmlkv

import (
	"fmt"

	"github.com/KimNorgaard/go-xmlkv/keypath"
)

const defaultIndent = 2

// Option configures a Codec, an Encoder, a Decoder or a binding call.
type Option func(*options) error

type options struct {
	cfg         keypath.Config
	indent      int
	declaration bool
}

func newOptions(opts []Option) (options, error) {
	o := options{
		cfg:         keypath.DefaultConfig(),
		indent:      defaultIndent,
		declaration: true,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}
	return o, nil
}

// WithConfig replaces the whole key grammar configuration. Options given
// after WithConfig adjust the replaced configuration.
func WithConfig(cfg keypath.Config) Option {
	return func(o *options) error {
		o.cfg = cfg
		return nil
	}
}

// KeyDelimiter sets the string separating key segments. Default ".".
func KeyDelimiter(d string) Option {
	return func(o *options) error {
		if d == "" {
			return fmt.Errorf("xmlkv: key delimiter cannot be empty")
		}
		o.cfg.KeyDelimiter = d
		return nil
	}
}

// AttributeSupport controls whether attributes are flattened. Default true.
func AttributeSupport(enabled bool) Option {
	return func(o *options) error {
		o.cfg.AttributeSupport = enabled
		return nil
	}
}

// AttributeDelimiter sets the marker between an element segment and an
// attribute name. Default "#".
func AttributeDelimiter(d string) Option {
	return func(o *options) error {
		if d == "" {
			return fmt.Errorf("xmlkv: attribute delimiter cannot be empty")
		}
		o.cfg.AttributeDelimiter = d
		return nil
	}
}

// RepetitionStart sets the index of the first member of a repeated sibling
// group. Default 1.
func RepetitionStart(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("xmlkv: repetition start cannot be negative")
		}
		o.cfg.RepetitionStart = n
		return nil
	}
}

// RepetitionPattern sets how a repetition index is rendered. The pattern
// must contain %s exactly once. Default "[%s]".
func RepetitionPattern(p string) Option {
	return func(o *options) error {
		o.cfg.RepetitionPattern = p
		return nil
	}
}

// Indent sets the number of spaces used to indent written XML. Zero
// produces compact output. Default 2.
func Indent(spaces int) Option {
	return func(o *options) error {
		if spaces < 0 {
			return fmt.Errorf("xmlkv: indent spaces cannot be negative")
		}
		o.indent = spaces
		return nil
	}
}

// XMLDeclaration controls whether written XML starts with an XML
// declaration. Default true.
func XMLDeclaration(enabled bool) Option {
	return func(o *options) error {
		o.declaration = enabled
		return nil
	}
}

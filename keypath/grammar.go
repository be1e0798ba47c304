// Package keypath implements the grammar of flat keys: a key is a sequence
// of segments joined by a delimiter, and each segment has the shape
//
//	name[index]#attribute
//
// where the bracketed index and the attribute suffix are optional. The
// bracket style, the attribute marker and the delimiter are configurable
// through Config.
package keypath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Segment is one parsed component of a key.
type Segment struct {
	Name string
	// Index is the repetition ordinal. It is meaningful only when Indexed
	// is true.
	Index   int
	Indexed bool
	// Attr names an attribute of the element identified by Name and Index.
	// An empty Attr means the segment refers to the element itself.
	Attr string
}

// IsAttr reports whether s refers to an attribute.
func (s Segment) IsAttr() bool { return s.Attr != "" }

// Path is the ordered list of segments of one key.
type Path []Segment

// Grammar parses and formats keys for one Config. A Grammar is immutable
// and safe for concurrent use.
type Grammar struct {
	cfg    Config
	prefix string
	suffix string
	re     *regexp.Regexp
}

// New validates cfg and compiles the segment pattern it describes. An index
// has exactly one spelling: decimal digits without leading zeros.
func New(cfg Config) (*Grammar, error) {
	prefix, suffix, err := cfg.affixes()
	if err != nil {
		return nil, err
	}

	expr := "^([^" + charClass(cfg.AttributeDelimiter+prefix+suffix) + "]+)" +
		"(?:" + regexp.QuoteMeta(prefix) + `(0|[1-9]\d*)` + regexp.QuoteMeta(suffix) + ")?" +
		"(?:" + regexp.QuoteMeta(cfg.AttributeDelimiter) + "(.+))?$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("keypath: compiling segment pattern: %w", err)
	}

	return &Grammar{cfg: cfg, prefix: prefix, suffix: suffix, re: re}, nil
}

// Default returns the grammar for DefaultConfig.
func Default() *Grammar {
	g, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return g
}

// Config returns a copy of the configuration g was built from.
func (g *Grammar) Config() Config { return g.cfg }

// ParseSegment parses a single segment. The whole text must match the
// segment shape.
func (g *Grammar) ParseSegment(text string) (Segment, error) {
	m := g.re.FindStringSubmatch(text)
	if m == nil {
		return Segment{}, &SegmentError{Segment: text, Reason: "does not match name" + g.prefix + "index" + g.suffix + g.cfg.AttributeDelimiter + "attribute"}
	}

	seg := Segment{Name: m[1], Attr: m[3]}
	if m[2] != "" {
		u, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return Segment{}, &SegmentError{Segment: text, Reason: "index out of range"}
		}
		idx, err := safecast.Conv[int](u)
		if err != nil {
			return Segment{}, &SegmentError{Segment: text, Reason: "index out of range"}
		}
		seg.Index = idx
		seg.Indexed = true
	}
	return seg, nil
}

// FormatSegment renders s. An index is written only when s.Indexed is set.
func (g *Grammar) FormatSegment(s Segment) string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.Indexed {
		b.WriteString(g.prefix)
		b.WriteString(strconv.Itoa(s.Index))
		b.WriteString(g.suffix)
	}
	if s.Attr != "" {
		b.WriteString(g.cfg.AttributeDelimiter)
		b.WriteString(s.Attr)
	}
	return b.String()
}

// Split parses every segment of key. Only the last segment may carry an
// attribute marker.
func (g *Grammar) Split(key string) (Path, error) {
	parts := strings.Split(key, g.cfg.KeyDelimiter)
	p := make(Path, 0, len(parts))
	for i, part := range parts {
		seg, err := g.ParseSegment(part)
		if err != nil {
			return nil, err
		}
		if seg.IsAttr() && i < len(parts)-1 {
			return nil, &SegmentError{Segment: part, Reason: "attribute marker is only allowed on the last segment"}
		}
		p = append(p, seg)
	}
	return p, nil
}

// Join renders p as a key.
func (g *Grammar) Join(p Path) string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = g.FormatSegment(s)
	}
	return strings.Join(parts, g.cfg.KeyDelimiter)
}

// Child returns the key of segment s below the element key parent. An
// empty parent yields the segment alone.
func (g *Grammar) Child(parent string, s Segment) string {
	if parent == "" {
		return g.FormatSegment(s)
	}
	return parent + g.cfg.KeyDelimiter + g.FormatSegment(s)
}

// Attribute returns the key of attribute name on the element key elem.
func (g *Grammar) Attribute(elem, name string) string {
	return elem + g.cfg.AttributeDelimiter + name
}

// charClass renders the runes of s as the body of a regexp character class.
func charClass(s string) string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		fmt.Fprintf(&b, `\x{%x}`, r)
	}
	return b.String()
}

// Package formatter reads and writes flat maps in the supported file
// formats.
package formatter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/magiconair/properties"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format identifies a flat map serialization.
type Format string

// Supported formats.
const (
	Text       Format = "text"
	Properties Format = "properties"
	JSON       Format = "json"
	YAML       Format = "yaml"
	MsgPack    Format = "msgpack"
)

// textSeparator separates key and value in the text format.
const textSeparator = " = "

// Text values are written on one line with backslash, newline and carriage
// return escaped.
var (
	textEscaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	textUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")
)

// Formats lists every supported format.
var Formats = []Format{Text, Properties, JSON, YAML, MsgPack}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("formatter: unknown format %q", s)
}

// ForFile returns the format matching the extension of filename.
func ForFile(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return Text, nil
	case ".properties":
		return Properties, nil
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".msgpack", ".mp":
		return MsgPack, nil
	default:
		return "", fmt.Errorf("formatter: unsupported file extension: %q", ext)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == Text {
		return ".txt"
	}
	return "." + string(f)
}

// MediaType returns the HTTP content type for f.
func (f Format) MediaType() string {
	switch f {
	case JSON:
		return "application/json"
	case YAML:
		return "application/yaml"
	case MsgPack:
		return "application/msgpack"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Write writes m to w in format f. Keys are written in sorted order by
// every format.
func Write(w io.Writer, m map[string]string, f Format) error {
	keys := slices.Sorted(maps.Keys(m))

	switch f {
	case Text:
		bw := bufio.NewWriter(w)
		for _, k := range keys {
			if _, err := bw.WriteString(k + textSeparator + textEscaper.Replace(m[k]) + "\n"); err != nil {
				return err
			}
		}
		return bw.Flush()

	case Properties:
		p := properties.NewProperties()
		p.DisableExpansion = true
		for _, k := range keys {
			if _, _, err := p.Set(k, m[k]); err != nil {
				return fmt.Errorf("formatter: %w", err)
			}
		}
		_, err := p.Write(w, properties.UTF8)
		return err

	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)

	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("formatter: %w", err)
		}
		return enc.Close()

	case MsgPack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(m)

	default:
		return fmt.Errorf("formatter: unknown format %q", f)
	}
}

// Read reads a flat map in format f from r.
func Read(r io.Reader, f Format) (map[string]string, error) {
	m := make(map[string]string)

	switch f {
	case Text:
		sc := bufio.NewScanner(r)
		for line := 1; sc.Scan(); line++ {
			if strings.TrimSpace(sc.Text()) == "" {
				continue
			}
			k, v, ok := strings.Cut(sc.Text(), textSeparator)
			if !ok {
				return nil, fmt.Errorf("formatter: line %d: missing %q", line, strings.TrimSpace(textSeparator))
			}
			m[k] = textUnescaper.Replace(v)
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}

	case Properties:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
		p, err := l.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("formatter: %w", err)
		}
		m = p.Map()

	case JSON:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("formatter: %w", err)
		}

	case YAML:
		if err := yaml.NewDecoder(r).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("formatter: %w", err)
		}

	case MsgPack:
		if err := msgpack.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("formatter: %w", err)
		}

	default:
		return nil, fmt.Errorf("formatter: unknown format %q", f)
	}

	if m == nil {
		m = make(map[string]string)
	}
	return m, nil
}

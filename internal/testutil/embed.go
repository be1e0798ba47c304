// Package testutil exposes the fixtures shared by package tests.
package testutil

import (
	"embed"
	"io/fs"
	"path"
	"strings"
	"testing"
)

// fixtures holds the sample documents and flat maps.
//
//go:embed testdata
var fixtures embed.FS

// Fixture returns the content of the named fixture and fails the test if it
// does not exist.
func Fixture(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := fs.ReadFile(fixtures, path.Join("testdata", name))
	if err != nil {
		tb.Fatalf("testutil: reading fixture %q: %v", name, err)
	}
	return data
}

// Fixtures returns the names of the fixtures ending in ext, sorted.
func Fixtures(ext string) []string {
	entries, err := fs.ReadDir(fixtures, "testdata")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	return names
}

package xmlkv_test

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/KimNorgaard/go-xmlkv"
	"github.com/stretchr/testify/require"
)

type endpoint struct {
	Name string `xml:"name,attr"`
	URL  string `xml:"url"`
}

type service struct {
	XMLName   xml.Name   `xml:"service"`
	Version   string     `xml:"version,attr"`
	Host      string     `xml:"host"`
	Port      int        `xml:"port"`
	Enabled   bool       `xml:"enabled"`
	Endpoints []endpoint `xml:"endpoints>endpoint"`
}

var testService = service{
	Version: "2",
	Host:    "localhost",
	Port:    8080,
	Enabled: true,
	Endpoints: []endpoint{
		{Name: "health", URL: "/health"},
		{Name: "flatten", URL: "/flatten"},
	},
}

func TestMarshal(t *testing.T) {
	t.Run("Indented with declaration", func(t *testing.T) {
		b, err := xmlkv.Marshal(testService)
		require.NoError(t, err)
		s := string(b)
		require.Contains(t, s, xml.Header)
		require.Contains(t, s, "\n  <host>localhost</host>")
		require.Contains(t, s, "\n    <endpoint name=\"health\">")
	})

	t.Run("Compact", func(t *testing.T) {
		b, err := xmlkv.Marshal(endpoint{Name: "a", URL: "/a"}, xmlkv.Indent(0), xmlkv.XMLDeclaration(false))
		require.NoError(t, err)
		require.Equal(t, `<endpoint name="a"><url>/a</url></endpoint>`, string(b))
	})

	t.Run("Unsupported value", func(t *testing.T) {
		_, err := xmlkv.Marshal(make(chan int))
		require.ErrorContains(t, err, "xmlkv:")
	})
}

func TestUnmarshal(t *testing.T) {
	b, err := xmlkv.Marshal(testService)
	require.NoError(t, err)

	var got service
	require.NoError(t, xmlkv.Unmarshal(b, &got))
	got.XMLName = xml.Name{}
	require.Equal(t, testService, got)

	err = xmlkv.Unmarshal([]byte("<service><port>x</port></service>"), &got)
	require.ErrorContains(t, err, "xmlkv:")
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.xml")
	require.NoError(t, xmlkv.WriteFile(path, testService))

	var got service
	require.NoError(t, xmlkv.ReadFile(path, &got))
	got.XMLName = xml.Name{}
	require.Equal(t, testService, got)

	err := xmlkv.ReadFile(filepath.Join(t.TempDir(), "missing.xml"), &got)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFlattenValue(t *testing.T) {
	m, err := xmlkv.FlattenValue(testService)
	require.NoError(t, err)
	require.Equal(t, xmlkv.FlatMap{
		"service#version":                    "2",
		"service.host":                       "localhost",
		"service.port":                       "8080",
		"service.enabled":                    "true",
		"service.endpoints.endpoint[1]#name": "health",
		"service.endpoints.endpoint[1].url":  "/health",
		"service.endpoints.endpoint[2]#name": "flatten",
		"service.endpoints.endpoint[2].url":  "/flatten",
	}, m)
}

func TestBuildValue(t *testing.T) {
	m, err := xmlkv.FlattenValue(testService)
	require.NoError(t, err)

	m["service.port"] = "9090"

	var got service
	require.NoError(t, xmlkv.BuildValue(m, &got))
	require.Equal(t, 9090, got.Port)
	require.Equal(t, "2", got.Version)
	require.Equal(t, testService.Endpoints, got.Endpoints)

	err = xmlkv.BuildValue(xmlkv.FlatMap{}, &got)
	require.ErrorIs(t, err, xmlkv.ErrEmpty)
}

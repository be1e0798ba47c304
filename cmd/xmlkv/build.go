package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	xmlkv "github.com/KimNorgaard/go-xmlkv"
	"github.com/KimNorgaard/go-xmlkv/internal/formatter"
)

func (a *app) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build an XML document from a key/value map",
		Long: `Build reads a flat key/value map and writes the XML document it describes.
The input format is taken from --format, then from the file extension.
Standard input defaults to the properties format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runBuild,
	}
	cmd.Flags().StringP("format", "f", "", "input format (text|properties|json|yaml|msgpack)")
	cmd.Flags().StringP("output", "o", "", "write the document to this file instead of stdout")
	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	var (
		in   io.Reader = a.stdin
		name           = "stdin"
		f              = formatter.Properties
		err  error
	)
	if len(args) == 1 {
		name = args[0]
		file, err := os.Open(name)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
		if formatName == "" {
			if f, err = formatter.ForFile(name); err != nil {
				return err
			}
		}
	}
	if formatName != "" {
		if f, err = formatter.ParseFormat(formatName); err != nil {
			return err
		}
	}

	m, err := formatter.Read(in, f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := xmlkv.NewEncoder(&buf, a.cfg.Codec.Options()...).Encode(m); err != nil {
		return err
	}
	if output != "" {
		return os.WriteFile(output, buf.Bytes(), 0o644)
	}
	_, err = buf.WriteTo(cmd.OutOrStdout())
	return err
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	xmlkv "github.com/KimNorgaard/go-xmlkv"
	"github.com/KimNorgaard/go-xmlkv/internal/ctxlog"
	"github.com/KimNorgaard/go-xmlkv/internal/formatter"
)

func (a *app) flattenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten [file.xml...]",
		Short: "Flatten XML documents into key/value maps",
		Long: `Flatten reads XML documents and writes their flat key/value maps.
Without arguments the document is read from standard input.

With several inputs and no --out-dir, the text and properties outputs are
written to stdout one after another in argument order. Every key starts
with its document's root element. The json, yaml and msgpack formats hold
one map per document, so several inputs in those formats need --out-dir.`,
		RunE: a.runFlatten,
	}
	cmd.Flags().StringP("format", "f", string(formatter.Properties), "output format (text|properties|json|yaml|msgpack)")
	cmd.Flags().IntP("jobs", "j", 0, "files converted in parallel (0 = GOMAXPROCS)")
	cmd.Flags().StringP("out-dir", "o", "", "write one output file per input into this directory")
	return cmd
}

func (a *app) runFlatten(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	f, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	outDir, _ := cmd.Flags().GetString("out-dir")

	codec, err := xmlkv.New(a.cfg.Codec.Options()...)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		m, err := codec.FlattenBytes(data)
		if err != nil {
			return err
		}
		return formatter.Write(cmd.OutOrStdout(), m, f)
	}

	if len(args) > 1 && outDir == "" && f != formatter.Text && f != formatter.Properties {
		return fmt.Errorf("flatten: %s output of %d files needs --out-dir", f, len(args))
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	log := ctxlog.FromContext(cmd.Context())
	results := make([][]byte, len(args))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(args)))
	for i, path := range args {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			m, err := codec.FlattenBytes(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			var buf bytes.Buffer
			if err := formatter.Write(&buf, m, f); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Debug("flattened", "file", path, "keys", len(m))

			if outDir == "" {
				results[i] = buf.Bytes()
				return nil
			}
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + f.Ext()
			return os.WriteFile(filepath.Join(outDir, name), buf.Bytes(), 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// results is empty when writing to outDir.
	out := cmd.OutOrStdout()
	for _, r := range results {
		if _, err := out.Write(r); err != nil {
			return err
		}
	}
	return nil
}

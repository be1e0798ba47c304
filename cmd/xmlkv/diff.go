package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	xmlkv "github.com/KimNorgaard/go-xmlkv"
)

func (a *app) diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff a.xml b.xml",
		Short: "Compare two XML documents key by key",
		Long: `Diff flattens both documents and prints keys only in a (-), keys only
in b (+) and keys whose values differ (~).`,
		Args: cobra.ExactArgs(2),
		RunE: a.runDiff,
	}
	cmd.Flags().Bool("exit-code", false, "exit with status 1 when the documents differ")
	cmd.Flags().String("color", "auto", "colorize output (auto|on|off)")
	return cmd
}

// Change is one differing key between two flat maps.
type Change struct {
	Op  byte // '-', '+' or '~'
	Key string
	Old string
	New string
}

// diffMaps returns the changes turning a into b, ordered by key.
func diffMaps(a, b xmlkv.FlatMap) []Change {
	keys := slices.Sorted(maps.Keys(a))
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var changes []Change
	for _, k := range keys {
		av, inA := a[k]
		bv, inB := b[k]
		switch {
		case !inB:
			changes = append(changes, Change{Op: '-', Key: k, Old: av})
		case !inA:
			changes = append(changes, Change{Op: '+', Key: k, New: bv})
		case av != bv:
			changes = append(changes, Change{Op: '~', Key: k, Old: av, New: bv})
		}
	}
	return changes
}

func (a *app) runDiff(cmd *cobra.Command, args []string) error {
	exitCode, _ := cmd.Flags().GetBool("exit-code")
	colorMode, _ := cmd.Flags().GetString("color")

	var docs [2]xmlkv.FlatMap
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		m, err := xmlkv.Flatten(data, a.cfg.Codec.Options()...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		docs[i] = m
	}

	changes := diffMaps(docs[0], docs[1])
	if err := printChanges(cmd.OutOrStdout(), changes, colorMode); err != nil {
		return err
	}
	if exitCode && len(changes) > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

func printChanges(w io.Writer, changes []Change, colorMode string) error {
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	changed := color.New(color.FgYellow)
	for _, c := range []*color.Color{removed, added, changed} {
		switch colorMode {
		case "on":
			c.EnableColor()
		case "off":
			c.DisableColor()
		case "auto":
		default:
			return fmt.Errorf("unknown color mode %q", colorMode)
		}
	}

	for _, c := range changes {
		var err error
		switch c.Op {
		case '-':
			_, err = removed.Fprintf(w, "- %s = %s\n", c.Key, c.Old)
		case '+':
			_, err = added.Fprintf(w, "+ %s = %s\n", c.Key, c.New)
		default:
			_, err = changed.Fprintf(w, "~ %s = %s -> %s\n", c.Key, c.Old, c.New)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

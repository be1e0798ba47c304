// Command xmlkv converts XML documents to flat key/value maps and back.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-xmlkv/internal/config"
	"github.com/KimNorgaard/go-xmlkv/internal/ctxlog"
)

// ExitError makes main exit with Code without printing a message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd(stdin)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app holds the state shared by the subcommands of one invocation.
type app struct {
	stdin io.Reader
	cfg   config.Config
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	a := &app{stdin: stdin}
	root := &cobra.Command{
		Use:               "xmlkv",
		Short:             "Convert XML documents to flat key/value maps and back",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	def := config.Default()
	pf := root.PersistentFlags()
	pf.String("config", "", "TOML profile to load")
	pf.String("delimiter", def.Codec.KeyDelimiter, "key segment delimiter")
	pf.String("attr-delimiter", def.Codec.AttributeDelimiter, "attribute delimiter")
	pf.Bool("no-attributes", false, "ignore attributes when flattening")
	pf.Int("repetition-start", def.Codec.RepetitionStart, "first index of repeated elements")
	pf.String("repetition-pattern", def.Codec.RepetitionPattern, "index pattern appended to repeated elements")
	pf.String("log-level", def.Log.Level, "log level (debug|info|warn|error)")
	pf.String("log-format", def.Log.Format, "log format (text|json)")

	root.AddCommand(
		a.flattenCmd(),
		a.buildCmd(),
		a.diffCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

// setup resolves the configuration of the running command and installs its
// logger into the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if flags.Changed("delimiter") {
		cfg.Codec.KeyDelimiter, _ = flags.GetString("delimiter")
	}
	if flags.Changed("attr-delimiter") {
		cfg.Codec.AttributeDelimiter, _ = flags.GetString("attr-delimiter")
	}
	if flags.Changed("no-attributes") {
		noAttrs, _ := flags.GetBool("no-attributes")
		cfg.Codec.AttributeSupport = !noAttrs
	}
	if flags.Changed("repetition-start") {
		cfg.Codec.RepetitionStart, _ = flags.GetInt("repetition-start")
	}
	if flags.Changed("repetition-pattern") {
		cfg.Codec.RepetitionPattern, _ = flags.GetString("repetition-pattern")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := ctxlog.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	logger.Debug("configuration resolved", "config", path, "delimiter", cfg.Codec.KeyDelimiter)
	return nil
}

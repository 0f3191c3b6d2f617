// jdocref resolves javadoc references in a Java source tree and renders them
// as reStructuredText for a documentation build.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phobologic/jdocref/internal/config"
	"github.com/phobologic/jdocref/internal/docerr"
	"github.com/phobologic/jdocref/internal/docs"
	"github.com/phobologic/jdocref/internal/repo"
	"github.com/phobologic/jdocref/internal/rst"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	dir       string
	verbose   bool
	overrides config.Config

	cfg *config.Config
	log zerolog.Logger
	svc *docs.Service
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jdocref",
		Short: "Resolve javadoc references for reStructuredText docs",
		Long: `jdocref looks up Java classes and members by reference, e.g.
.energy.EnergyCalculator$Builder#build, and prints their javadoc with
{@link} markers rewritten into :java:ref: roles.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.dir, "dir", "C", ".", "project directory containing "+config.FileName)
	f.StringVar(&a.overrides.SourcesDir, "sources", "", "Java sources root (overrides sources_dir)")
	f.StringVar(&a.overrides.PackagePrefix, "prefix", "", "package prefix for leading-dot references")
	f.StringVar(&a.overrides.APIPrefix, "api-prefix", "", "doc path prefix of class pages")
	f.StringVar(&a.overrides.DocsDir, "docs", "", "directory of the RST pages (overrides docs_dir)")
	f.StringSliceVar(&a.overrides.Exclude, "exclude", nil, "gitignore-style source patterns to skip")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(a.memberDocCmd("fielddoc", docs.Field))
	root.AddCommand(a.memberDocCmd("methoddoc", docs.Method))
	root.AddCommand(a.classCmd())
	root.AddCommand(a.xrefCmd())
	root.AddCommand(a.checkCmd())
	root.AddCommand(a.stubsCmd())
	root.AddCommand(a.initCmd())
	return root
}

func (a *app) setup() error {
	level := zerolog.InfoLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := config.Load(a.dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Merge(&a.overrides)
	a.cfg = cfg

	a.log.Debug().
		Str("sources", cfg.SourcesDir).
		Str("prefix", cfg.PackagePrefix).
		Str("docs", cfg.DocsDir).
		Msg("loaded config")

	a.svc = docs.New(cfg, repo.New(cfg.SourcesDir, repo.WithLogger(a.log)), a.log)
	return nil
}

func (a *app) memberDocCmd(name string, kind docs.MemberKind) *cobra.Command {
	var signature bool

	cmd := &cobra.Command{
		Use:   name + " <reference>",
		Short: fmt.Sprintf("Print the translated javadoc of a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.svc.MemberDoc(args[0], kind)
			if err != nil {
				// the host page still renders; the placeholder marks the gap
				msg := memberWarning(kind, args[0], err)
				a.log.Warn().Err(err).Msg(msg)
				_, _ = fmt.Fprintln(a.stdout, rst.Warning(msg))
				return nil
			}
			if signature {
				_, _ = fmt.Fprintln(a.stdout, doc.Signature)
			}
			_, _ = fmt.Fprintln(a.stdout, doc.Text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&signature, "signature", "s", false, "print the declaration before the doc")
	return cmd
}

func memberWarning(kind docs.MemberKind, text string, err error) string {
	var te *docs.TranslationError
	switch {
	case errors.As(err, &te):
		return fmt.Sprintf("can't parse javadoc for %s: %s", kind, te.Ref)
	case errors.Is(err, docerr.EmptyDocumentation):
		return fmt.Sprintf("%s %s has no javadoc", kind, text)
	default:
		return fmt.Sprintf("can't find %s: %s", kind, text)
	}
}

func (a *app) classCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "class <reference>",
		Short: "Print the RST summary of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.svc.ClassSummary(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(a.stdout, rst.Class(sum))
			return nil
		},
	}
}

func (a *app) xrefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xref <reference>",
		Short: "Print the doc path, anchor and link text a reference points at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := a.svc.Xref(args[0])
			if err != nil {
				return err
			}
			if !x.Exists {
				a.log.Warn().Str("path", x.DocPath).Msg("cross-reference does not exist")
			}
			_, _ = fmt.Fprintf(a.stdout, "%s\t%s\t%s\n", x.DocPath, x.Anchor, x.Text)
			return nil
		},
	}
}

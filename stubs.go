package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/jdocref/internal/discover"
	"github.com/phobologic/jdocref/internal/ref"
	"github.com/phobologic/jdocref/internal/rst"
)

const (
	sentinelStart = ".. jdocref:start"
	sentinelEnd   = ".. jdocref:end"
)

func (a *app) stubsCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "stubs",
		Short: "Write one RST page per class and a toctree listing them",
		Long: `Write an RST page for every top-level class under the sources root, each
rendering the class through the java:class directive, and list the pages in a
toctree in the API index page. The toctree is wrapped in sentinel comments so
it can be updated in place on subsequent runs without touching surrounding
content. Existing class pages are left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := discover.Files(a.cfg.SourcesDir, a.cfg.Exclude)
			if err != nil {
				return fmt.Errorf("discovering files: %w", err)
			}

			var docPaths []string
			for _, f := range files {
				class, err := ref.Parse(f.ClassName)
				if err != nil {
					return err
				}
				// package-info.java and friends declare no class of their name
				if _, err := a.svc.Repository().FindDeclaration(class); err != nil {
					a.log.Debug().Err(err).Str("file", f.Path).Msg("no class page")
					continue
				}

				docPath := a.svc.DocPath(class)
				docPaths = append(docPaths, docPath)

				page := filepath.Join(a.cfg.DocsDir, docPath+".rst")
				if _, err := os.Stat(page); err == nil && !force {
					continue
				}
				if err := a.write(page, rst.Page(class.SimpleClassName(), f.ClassName), dryRun); err != nil {
					return err
				}
			}

			index := filepath.Join(a.cfg.DocsDir, indexName(a.cfg.APIPrefix)+".rst")
			existing, _ := os.ReadFile(index)
			updated := applySection(string(existing), generateSection(docPaths))
			return a.write(index, updated, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying any file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing class pages")
	return cmd
}

func indexName(apiPrefix string) string {
	if apiPrefix == "" {
		return "api"
	}
	return apiPrefix
}

func (a *app) write(path, content string, dryRun bool) error {
	if dryRun {
		_, _ = fmt.Fprintf(a.stdout, "==> %s <==\n%s\n", path, content)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.log.Info().Str("path", path).Msg("wrote page")
	return nil
}

// generateSection returns the sentinel-wrapped toctree of the class pages.
func generateSection(docPaths []string) string {
	return sentinelStart + "\n\n" + rst.Toctree(docPaths) + "\n\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}

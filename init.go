package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phobologic/jdocref/internal/config"
)

func (a *app) initCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + config.FileName + " with the default settings",
		Long: `Write a ` + config.FileName + ` to the project directory. Flags given on the
command line (--sources, --prefix, --api-prefix, --docs, --exclude) replace the
defaults. An existing file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.Merge(&a.overrides)

			if dryRun {
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("encoding config: %w", err)
				}
				_, _ = a.stdout.Write(data)
				return nil
			}

			path := filepath.Join(a.dir, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			if err := config.Save(a.dir, cfg); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			a.log.Info().Str("path", path).Msg("wrote config")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the config instead of writing it")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/phobologic/jdocref/internal/discover"
	"github.com/phobologic/jdocref/internal/docs"
)

func (a *app) checkCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report unresolvable {@link} targets in public javadoc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := discover.Files(a.cfg.SourcesDir, a.cfg.Exclude)
			if err != nil {
				return fmt.Errorf("discovering files: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no java sources found in %s", a.cfg.SourcesDir)
			}

			results := checkFilesConcurrent(a.svc, a.cfg.SourcesDir, files, workers)

			var broken int
			for _, r := range results {
				if r.err != nil {
					a.log.Warn().Err(r.err).Str("file", r.file.Path).Msg("skipped unparseable source")
					continue
				}
				for _, p := range r.problems {
					broken++
					_, _ = fmt.Fprintf(a.stdout, "%s:%d: %s: unresolved link %s\n", r.file.Path, p.Line, p.Ref, p.Link)
				}
			}

			stats := a.svc.Repository().Stats()
			a.log.Debug().Int("files", len(files)).Int("parses", stats.Parses).Msg("check finished")

			if broken > 0 {
				return fmt.Errorf("%d unresolved links", broken)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "jobs", "j", 0, "number of parallel workers (default GOMAXPROCS)")
	return cmd
}

type checkResult struct {
	file     discover.FileEntry
	problems []docs.Problem
	err      error
}

// checkFilesConcurrent checks files with a pool of workers and returns the
// results in the order of files.
func checkFilesConcurrent(svc *docs.Service, root string, files []discover.FileEntry, numWorkers int) []checkResult {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]checkResult, len(files))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				f := files[idx]
				problems, err := svc.Check(filepath.Join(root, f.Path))
				// each index is written by exactly one worker
				results[idx] = checkResult{file: f, problems: problems, err: err}
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)
	wg.Wait()

	return results
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/npillmayer/thaiseg/internal/config"
	"github.com/npillmayer/thaiseg/internal/demo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newFilesCmd() *cobra.Command {
	var outDir string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "files pattern...",
		Short: "Segment text files matching glob patterns (with '**') into .tok files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files match %s", strings.Join(args, ", "))
			}
			seg, closer, err := newSegmenter(cfg)
			if err != nil {
				return err
			}
			defer closer()
			var bar *progressbar.ProgressBar
			if !quiet {
				bar = progressbar.NewOptions(len(paths),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("Segmenting"),
					progressbar.OptionOnCompletion(func() {
						_, _ = fmt.Fprintln(cmd.ErrOrStderr())
					}),
				)
			}
			job := fileJob{cfg: cfg, seg: seg, outDir: outDir}
			errs := job.runAll(cmd.Context(), paths, cfg.Files.Workers, func() {
				if bar != nil {
					_ = bar.Add(1)
				}
			})
			for _, err := range errs {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d files failed", len(errs), len(paths))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: next to the input file)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not show a progress bar")
	return cmd
}

// expandPatterns returns the sorted, de-duplicated list of regular files
// matching any of the patterns.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || strings.HasSuffix(m, tokSuffix) {
				continue
			}
			if fi, err := os.Stat(m); err != nil || !fi.Mode().IsRegular() {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

const tokSuffix = ".tok"

type fileJob struct {
	cfg    config.Config
	seg    demo.Segmenter
	outDir string
}

// runAll segments files with a pool of workers. done is called after each
// file. The errors of all failed files are returned.
func (job fileJob) runAll(ctx context.Context, paths []string, workers int, done func()) []error {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan string)
	var mu sync.Mutex
	var errs []error
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				err := job.segmentFile(ctx, path)
				mu.Lock()
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
				}
				done()
				mu.Unlock()
			}
		}()
	}
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	return errs
}

// segmentFile segments a file line by line and writes the result to a
// file with suffix .tok.
func (job fileJob) segmentFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")
	results := make([]result, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		tokens, err := job.seg(ctx, line, job.cfg.Tokenize.Engine)
		if err != nil {
			return err
		}
		results = append(results, result{Text: line, Tokens: tokens})
	}
	out := path + tokSuffix
	if job.outDir != "" {
		if err = os.MkdirAll(job.outDir, 0o755); err != nil {
			return err
		}
		out = filepath.Join(job.outDir, filepath.Base(path)+tokSuffix)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err = writeResults(f, job.cfg.Output.Format, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

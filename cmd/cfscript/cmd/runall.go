package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cfs-lang/cfscript/internal/script"
)

// manifest is the optional cfscript.yaml batch descriptor, grounded in
// the original source's execute_folder.rs: a directory is either walked
// wholesale for *.cfs files, or a manifest narrows/orders the set.
type manifest struct {
	Scripts     []string `yaml:"scripts"`
	Concurrency int      `yaml:"concurrency"`
}

var runallConcurrency int

var runallCmd = &cobra.Command{
	Use:   "runall <dir>",
	Short: "Run every cfscript file in a directory concurrently",
	Long: `Walk <dir> for *.cfs scripts (or read a cfscript.yaml manifest in <dir>
naming a subset and order) and run each one to completion, concurrently,
each with its own symbol table. Diagnostics from every script are
collected and printed after the whole batch finishes; the command exits
non-zero if any script failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(runallCmd)
	runallCmd.Flags().IntVar(&runallConcurrency, "concurrency", 0, "max scripts running at once (0 = use cfscript.yaml's value, else unlimited; a positive value overrides cfscript.yaml)")
}

func runAll(_ *cobra.Command, args []string) error {
	dir := args[0]

	paths, concurrency, err := resolveBatch(dir)
	if err != nil {
		return err
	}
	if runallConcurrency > 0 {
		concurrency = runallConcurrency
	}
	if len(paths) == 0 {
		fmt.Println("no .cfs scripts found")
		return nil
	}

	var mu sync.Mutex
	results := make(map[string]script.Result, len(paths))
	sources := make(map[string]string, len(paths))

	g := new(errgroup.Group)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for _, p := range paths {
		p := p
		g.Go(func() error {
			source, readErr := os.ReadFile(p)
			if readErr != nil {
				mu.Lock()
				results[p] = script.Result{Name: p}
				mu.Unlock()
				return readErr
			}
			driver := script.NewDriver(stdoutWriter{}, stdinReader{})
			res := driver.RunFile(p, string(source))
			mu.Lock()
			results[p] = res
			sources[p] = string(source)
			mu.Unlock()
			return nil
		})
	}

	if waitErr := g.Wait(); waitErr != nil {
		fmt.Fprintln(os.Stderr, waitErr)
	}

	failed := 0
	for _, p := range paths {
		res, ok := results[p]
		if !ok {
			continue
		}
		if _, read := sources[p]; !read {
			failed++
			fmt.Printf("fail %s\n", p)
			continue
		}
		if res.Success() {
			fmt.Printf("ok   %s\n", p)
			continue
		}
		failed++
		fmt.Printf("fail %s\n", p)
		fmt.Fprint(os.Stderr, res.Rendered(sources[p]))
	}

	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

// resolveBatch reads dir/cfscript.yaml if present, else walks dir for
// *.cfs files in lexical order.
func resolveBatch(dir string) ([]string, int, error) {
	manifestPath := filepath.Join(dir, "cfscript.yaml")
	if data, err := os.ReadFile(manifestPath); err == nil {
		var m manifest
		if yamlErr := yaml.Unmarshal(data, &m); yamlErr != nil {
			return nil, 0, fmt.Errorf("invalid %s: %w", manifestPath, yamlErr)
		}
		paths := make([]string, len(m.Scripts))
		for i, s := range m.Scripts {
			if filepath.IsAbs(s) {
				paths[i] = s
			} else {
				paths[i] = filepath.Join(dir, s)
			}
		}
		return paths, m.Concurrency, nil
	}

	var paths []string
	walkErr := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cfs" {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, 0, walkErr
	}
	sort.Strings(paths)
	return paths, 0, nil
}

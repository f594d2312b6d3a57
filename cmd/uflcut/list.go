package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the instances below the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := findInstances(a.settings.DataDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no instances found in %s", a.settings.DataDir)
			}
			for i, p := range paths {
				rel, err := filepath.Rel(a.settings.DataDir, p)
				if err != nil {
					rel = p
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, rel)
			}
			return nil
		},
	}
}

// findInstances returns every .txt file below dir, sorted.
func findInstances(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching instances: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// instanceName is the file name without directory and extension.
func instanceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

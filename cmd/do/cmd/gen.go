package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const pagesDir = "internal/ui/pages"

func GenCmd() *cobra.Command {
	var force bool

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Regenerate the _templ.go files for changed .templ pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && templUpToDate(pagesDir) {
				fmt.Println("[templ] skipped")
				return nil
			}
			return runTempl(pagesDir)
		},
	}

	genCmd.Flags().BoolVar(&force, "force", false, "regenerate even when the output is newer than the sources")
	return genCmd
}

func runTempl(dir string) error {
	if _, err := exec.LookPath("templ"); err != nil {
		fmt.Println("templ is not installed: go install github.com/a-h/templ/cmd/templ@v0.3.960")
		return err
	}

	start := time.Now()
	cmd := exec.Command("templ", "generate", "-path", dir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("templ: %w", err)
	}

	fmt.Printf("[templ] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// templUpToDate reports whether every .templ file under dir has a _templ.go
// output at least as new as itself.
func templUpToDate(dir string) bool {
	upToDate := true
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".templ") {
			return nil
		}
		if !isUpToDate(strings.TrimSuffix(path, ".templ")+"_templ.go", path) {
			upToDate = false
			return filepath.SkipAll
		}
		return nil
	})
	return upToDate
}

func isUpToDate(output string, inputs ...string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outInfo.ModTime()) {
			return false
		}
	}
	return true
}

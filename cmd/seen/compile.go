package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/seen-lang/seen/internal/compiler"
	"github.com/seen-lang/seen/internal/compiler/script"
)

var mainMods []string

var compileCmd = &cobra.Command{
	Use:   "compile [files…]",
	Short: "Transpile the project's sources into the build directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := compileProject(args)
		return err
	},
}

func init() {
	compileCmd.Flags().StringSliceVar(&mainMods, "mods", nil, "file stems to re-export alongside the main entry")
	rootCmd.AddCommand(compileCmd)
}

// compileProject loads the configuration, discovers sources when none
// are given, and runs the pipeline. It returns the compiler for the
// build/run wrappers.
func compileProject(args []string) (*compiler.Compiler, error) {
	root := "."
	c := compiler.New(root)
	c.MainMods = mainMods
	if err := c.LoadConf(); err != nil {
		return nil, err
	}

	files := args
	if len(files) == 0 {
		var err error
		files, err = discoverSources(root)
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files under %s", root)
	}

	skipped, err := c.Compile(files)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		return c, fmt.Errorf("%d file(s) had errors and were not generated", skipped)
	}
	return c, nil
}

// discoverSources globs both dialects' extensions under root, leaving
// out the configuration program and anything already generated.
func discoverSources(root string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"**/*." + script.ExtEnglish, "**/*." + script.ExtArabic} {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			stem := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
			if stem == script.ConfStemEnglish || stem == script.ConfStemArabic {
				continue
			}
			if strings.Contains(m, "build"+string(filepath.Separator)) {
				continue
			}
			files = append(files, m)
		}
	}
	return files, nil
}

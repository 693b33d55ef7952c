package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the project and build the generated crate with cargo",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := compileProject(nil)
		if err != nil {
			return err
		}
		return cargo(filepath.Join(c.Root, "build"), "build", "--release")
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compile, build and run the generated binary",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := compileProject(nil)
		if err != nil {
			return err
		}
		return cargo(filepath.Join(c.Root, "build"), "run", "--release")
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the generated crate's dependencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cargo("build", "update")
	},
}

func init() {
	rootCmd.AddCommand(buildCmd, runCmd, updateCmd)
}

// cargo shells out to the downstream compiler inside the build
// directory, streaming its output through.
func cargo(dir string, args ...string) error {
	cmd := exec.Command("cargo", args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

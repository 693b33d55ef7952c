package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seen-lang/seen/internal/compiler"
	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/target/build"
)

var arabicProject bool

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a project directory with a hello-world program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.Mkdir(args[0], 0o755); err != nil {
			return err
		}
		return scaffold(args[0], args[0])
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a project in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		return scaffold(".", filepath.Base(wd))
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the front end without generating code",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := discoverSources(".")
		if err != nil {
			return err
		}
		bad := 0
		for _, path := range files {
			sc, err := script.Load(path)
			if err != nil {
				return err
			}
			if m := compiler.Front(sc); m.HasErrors() {
				bad += len(m.Errors)
			}
		}
		if bad > 0 {
			return fmt.Errorf("%d error(s)", bad)
		}
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return os.RemoveAll("build")
	},
}

func init() {
	newCmd.Flags().BoolVar(&arabicProject, "ar", false, "scaffold the Arabic dialect")
	initCmd.Flags().BoolVar(&arabicProject, "ar", false, "scaffold the Arabic dialect")
	rootCmd.AddCommand(newCmd, initCmd, checkCmd, cleanCmd)
}

// scaffold writes the dialect's directory layout, a configuration
// program and a hello-world entry file.
func scaffold(root, name string) error {
	dialect := script.English
	if arabicProject {
		dialect = script.Arabic
	}
	for _, dir := range build.ResDirs(dialect) {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return err
		}
	}

	confName := script.ConfStemEnglish + "." + script.ExtEnglish
	confSrc := fmt.Sprintf("() -> { name: \"%s\" }\n", name)
	mainName := "main." + script.ExtEnglish
	mainSrc := "() -> println(\"hello world\")\n"
	if dialect == script.Arabic {
		confName = script.ConfStemArabic + "." + script.ExtArabic
		confSrc = fmt.Sprintf("() -> { اسم: «%s» }\n", name)
		mainName = "البداية." + script.ExtArabic
		mainSrc = "() -> اطبع_سطر(«اهلا بالعالم»)\n"
	}
	if err := os.WriteFile(filepath.Join(root, confName), []byte(confSrc), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, mainName), []byte(mainSrc), 0o644)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coolbeans/svglate/pkg/batch"
	"github.com/coolbeans/svglate/pkg/extract"
	"github.com/coolbeans/svglate/pkg/watch"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "svglate",
		Short: "SVG translation extractor",
		Long: `Svglate extracts multilingual text from SVG documents that use the
switch/systemLanguage idiom: a default-language text element paired with
language-tagged alternates.

It produces:
  - A phrase index mapping each default phrase to its translations
  - A title index with shared trailing year suffixes stripped`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file.svg]",
		Short: "Extract translations from a single SVG file",
		Long: `Extract translations from one SVG file and print them as JSON.

The output has up to two top-level keys: "new", the phrase index (omitted
when the file yields no phrases), and "title", the year-stripped title
index (always present, possibly empty).

Example:
  svglate extract poster.svg
  svglate extract poster.svg --output poster.json
  svglate extract poster.svg --case-sensitive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFromFlags(cmd)
			if err != nil {
				return err
			}

			result, err := extract.File(args[0], opts)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			return writeJSON(result, output)
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [directory]",
		Short: "Extract translations from every SVG file in a directory",
		Long: `Extract translations from every .svg file directly inside a directory.

Files that fail to parse are reported and skipped; the rest of the
directory is still processed. By default the per-file report is printed;
with --merge, the phrase indices of all files are combined into one.

Example:
  svglate batch ./posters
  svglate batch ./posters --merge --output all.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFromFlags(cmd)
			if err != nil {
				return err
			}

			report, err := batch.Dir(args[0], opts)
			if err != nil {
				return err
			}

			if report.Failed > 0 {
				for _, file := range report.Files {
					if file.Err != nil {
						fmt.Fprintf(os.Stderr, "skipped %s: %v\n", file.Path, file.Err)
					}
				}
			}

			output, _ := cmd.Flags().GetString("output")
			if merge, _ := cmd.Flags().GetBool("merge"); merge {
				return writeJSON(report.Merged(), output)
			}
			return writeJSON(report, output)
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().Bool("merge", false, "Combine all phrase indices into one")
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and re-extract SVG files as they change",
		Long: `Watch a directory of SVG files, extracting each file on startup and
again whenever it is created or modified. Runs until interrupted.

Example:
  svglate watch ./posters`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFromFlags(cmd)
			if err != nil {
				return err
			}

			watcher := watch.New(args[0], opts)
			watcher.SetOnChange(func(event, path string, result *extract.Result, err error) {
				switch {
				case err != nil:
					fmt.Fprintf(os.Stderr, "%s %s: %v\n", event, path, err)
				case result != nil:
					fmt.Printf("%s %s: %d phrases, %d titles\n",
						event, path, len(result.Phrases), len(result.Titles))
				default:
					fmt.Printf("%s %s\n", event, path)
				}
			})

			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop()

			fmt.Printf("Watching %s (Ctrl-C to stop)\n", args[0])

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			<-interrupt

			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}

// addCommonFlags registers the flags shared by every subcommand.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("output", "", "Write JSON output to a file instead of stdout")
	cmd.Flags().String("config", "", "YAML file with extraction options")
	cmd.Flags().Bool("case-sensitive", false, "Match phrase keys case-sensitively")
}

// optionsFromFlags builds extraction options from --config and
// --case-sensitive.
func optionsFromFlags(cmd *cobra.Command) (extract.Options, error) {
	opts := extract.DefaultOptions()

	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		loaded, err := extract.LoadOptions(configPath)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if caseSensitive, _ := cmd.Flags().GetBool("case-sensitive"); caseSensitive {
		opts.CaseInsensitive = false
	}

	return opts, nil
}

// writeJSON marshals v with indentation and writes it to the given file,
// or to stdout when path is empty.
func writeJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

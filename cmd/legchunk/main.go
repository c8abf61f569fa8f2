package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/coolbeans/legchunk/pkg/chunker"
	"github.com/coolbeans/legchunk/pkg/fixity"
	"github.com/coolbeans/legchunk/pkg/scrape"
	"github.com/coolbeans/legchunk/pkg/watch"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "legchunk",
		Short: "Streaming chunker for UK legislation XML",
		Long: `Legchunk chunks large legislation.gov.uk XML documents into structured
JSON records without loading the full document into memory.

Chunking strategies:
  part              - Chunk by Parts (e.g., Part I, Part II)
  regulation        - Chunk by individual Regulations (P1 elements in the Body)
  regulation_group  - Chunk by regulation groups (P1group elements)
  schedule          - Chunk by Schedules
  paragraph         - Chunk by paragraphs within Schedules
  all               - Extract all chunk types
  metadata          - Extract document metadata only`,
		Version: version,
	}

	rootCmd.AddCommand(chunkCmd())
	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(fixityCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func chunkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk [xml-file]",
		Short: "Chunk a legislation XML document",
		Long: `Chunk a legislation XML document using the selected strategy and write
the result as JSON to stdout or a file.

Example:
  legchunk chunk 1999_3312.xml --strategy regulation --output regulations.json
  legchunk chunk 1999_3312.xml --strategy metadata
  legchunk chunk 1999_3312.xml --strategy all --output all_chunks.json --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyName, _ := cmd.Flags().GetString("strategy")
			output, _ := cmd.Flags().GetString("output")
			pretty, _ := cmd.Flags().GetBool("pretty")

			return runChunk(args[0], strategyName, output, pretty)
		},
	}

	cmd.Flags().String("strategy", "regulation", "chunking strategy: "+strategyList())
	cmd.Flags().StringP("output", "o", "", "output JSON file (default: print to stdout)")
	cmd.Flags().Bool("pretty", false, "pretty-print JSON output")
	return cmd
}

func runChunk(xmlPath string, strategyName string, output string, pretty bool) error {
	// Strategy validation happens before touching the file.
	if !chunker.ValidStrategy(strategyName) {
		return fmt.Errorf("unknown strategy %q (valid: %s)", strategyName, strategyList())
	}
	strategy := chunker.Strategy(strategyName)

	parser, err := chunker.NewParser(xmlPath)
	if err != nil {
		return err
	}

	result, err := parser.Parse(strategy)
	if err != nil {
		return err
	}

	jsonOutput, err := marshalResult(result, pretty)
	if err != nil {
		return err
	}

	if dropped := parser.UnclassifiedElements(); dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d paragraph element(s) had neither a Body nor a Schedule ancestor and were dropped\n", dropped)
	}

	if output == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}

	if err := os.WriteFile(output, append(jsonOutput, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output %s: %w", output, err)
	}
	fmt.Printf("Output written to %s\n", output)
	printChunkSummary(result, strategy)
	return nil
}

// printChunkSummary prints a short per-strategy summary after writing output
// to a file.
func printChunkSummary(result any, strategy chunker.Strategy) {
	switch typed := result.(type) {
	case chunker.DocumentMetadata:
		title := typed.Title
		if title == "" {
			title = "Unknown"
		}
		fmt.Printf("\nDocument: %s\n", title)
		fmt.Printf("Year: %s, Number: %s\n", orUnknown(typed.Year), orUnknown(typed.Number))
	case map[string][]chunker.Chunk:
		fmt.Printf("\nExtracted chunks:\n")
		for _, chunkType := range []string{"parts", "regulations", "regulation_groups", "schedules", "paragraphs"} {
			fmt.Printf("  %s: %d items\n", chunkType, len(typed[chunkType]))
		}
	case []chunker.Chunk:
		fmt.Printf("\nExtracted %d %s chunks\n", len(typed), strategy)
	}
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}

func marshalResult(result any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

func strategyList() string {
	names := make([]string, 0, len(chunker.Strategies()))
	for _, strategy := range chunker.Strategies() {
		names = append(names, string(strategy))
	}
	return strings.Join(names, ", ")
}

func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Discover legislation data.xml URLs from a listing page",
		Long: `Paginate a legislation.gov.uk listing page, collect the data.xml URL of
every statutory instrument linked from it, and write the list to a file.

Example:
  legchunk scrape
  legchunk scrape --base-url "https://www.legislation.gov.uk/uksi?theme=employment-law" --output urls.txt
  legchunk scrape --config scrape.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			baseURL, _ := cmd.Flags().GetString("base-url")
			output, _ := cmd.Flags().GetString("output")
			maxPages, _ := cmd.Flags().GetInt("max-pages")

			config := scrape.DefaultConfig()
			if configPath != "" {
				loaded, err := scrape.LoadConfig(configPath)
				if err != nil {
					return err
				}
				config = loaded
			}
			if baseURL != "" {
				config.BaseURL = baseURL
			}
			if output != "" {
				config.OutputPath = output
			}
			if maxPages > 0 {
				config.MaxPages = maxPages
			}

			scraper := scrape.NewScraper(config)
			fmt.Printf("Scraping listing: %s\n", config.BaseURL)

			report, err := scraper.Run()
			if err != nil {
				return err
			}
			fmt.Printf("Found %d legislation XML URLs across %d page(s).\n", len(report.URLs), report.PagesFetched)

			if err := scraper.SaveURLList(report); err != nil {
				return err
			}
			fmt.Printf("Saved %d URLs to %s\n", len(report.URLs), config.OutputPath)
			return nil
		},
	}

	cmd.Flags().String("config", "", "YAML scraper configuration file")
	cmd.Flags().String("base-url", "", "listing page to start from")
	cmd.Flags().StringP("output", "o", "", "output URL list file")
	cmd.Flags().Int("max-pages", 0, "maximum listing pages to fetch (0 = no cap)")
	return cmd
}

func fixityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixity [save|compare|show] [file]",
		Short: "Compute and verify content digests for corpus files",
		Long: `Compute a content digest for a file and persist it, or compare the
file's current digest against the stored one.

Example:
  legchunk fixity save 1999_3312.xml
  legchunk fixity compare 1999_3312.xml
  legchunk fixity show 1999_3312.xml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath, _ := cmd.Flags().GetString("store")
			algorithm, _ := cmd.Flags().GetString("algorithm")

			checker, err := fixity.NewChecker(storePath, algorithm)
			if err != nil {
				return err
			}

			action, filePath := args[0], args[1]
			switch action {
			case "save":
				record, err := checker.SaveDigest(filePath)
				if err != nil {
					return err
				}
				fmt.Printf("Digest saved: %s (%s, %d bytes)\n", record.Digest, record.Algorithm, record.SizeBytes)
				return nil

			case "compare":
				result, err := checker.Compare(filePath)
				if err != nil {
					return err
				}
				if !result.Known {
					fmt.Printf("No stored digest for %s (current: %s)\n", filePath, result.CurrentDigest)
					return nil
				}
				if result.Match {
					fmt.Printf("Digest matches the stored digest (%s).\n", result.Algorithm)
				} else {
					fmt.Printf("Digest MISMATCH: stored %s, current %s\n", result.StoredDigest, result.CurrentDigest)
				}
				return nil

			case "show":
				digest, sizeBytes, err := fixity.ComputeDigest(filePath, checkerAlgorithm(algorithm))
				if err != nil {
					return err
				}
				fmt.Printf("%s  %s (%d bytes)\n", digest, filePath, sizeBytes)
				return nil

			default:
				return fmt.Errorf("unknown fixity action %q (valid: save, compare, show)", action)
			}
		},
	}

	cmd.Flags().String("store", "digest_store.json", "digest store file")
	cmd.Flags().String("algorithm", fixity.DefaultAlgorithm, "digest algorithm: sha256, sha512, sha1, md5")
	return cmd
}

func checkerAlgorithm(algorithm string) string {
	if algorithm == "" {
		return fixity.DefaultAlgorithm
	}
	return algorithm
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and chunk new XML documents as they arrive",
		Long: `Watch a directory for new or updated legislation XML files and run the
selected chunking strategy on each, writing <name>.<strategy>.json next to
the source document.

Example:
  legchunk watch ./corpus --strategy regulation --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyName, _ := cmd.Flags().GetString("strategy")
			pretty, _ := cmd.Flags().GetBool("pretty")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			if !chunker.ValidStrategy(strategyName) {
				return fmt.Errorf("unknown strategy %q (valid: %s)", strategyName, strategyList())
			}

			directory := args[0]
			handler := func(path string) {
				outputPath := strings.TrimSuffix(path, filepath.Ext(path)) + "." + strategyName + ".json"
				if err := runChunk(path, strategyName, outputPath, pretty); err != nil {
					fmt.Fprintf(os.Stderr, "failed to chunk %s: %v\n", path, err)
				}
			}

			directoryWatcher, err := watch.NewDirectoryWatcher(directory, debounce, handler)
			if err != nil {
				return err
			}
			if err := directoryWatcher.Start(); err != nil {
				return err
			}
			defer directoryWatcher.Stop()

			fmt.Printf("Watching %s for XML documents (strategy: %s). Press Ctrl-C to stop.\n", directory, strategyName)

			signalChan := make(chan os.Signal, 1)
			signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
			<-signalChan
			fmt.Println("\nStopping watcher.")
			return nil
		},
	}

	cmd.Flags().String("strategy", "regulation", "chunking strategy applied to new documents")
	cmd.Flags().Bool("pretty", false, "pretty-print JSON output")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a file is processed")
	return cmd
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ag-Linings/requirement-specifications/internal/pipeline"
)

var (
	refineFile    string
	refineJSON    bool
	refineTimeout time.Duration
	refineAPIKey  string
	refineNoCache bool
)

// refineCmd represents the refine command
var refineCmd = &cobra.Command{
	Use:   "refine [text]",
	Short: "Refine a feature description into categorized requirements",
	Long: `Refine turns a free-form feature description into a categorized
requirement list plus a one-line summary.

The text can be given as an argument, read from a file with --file, or piped
on stdin. Extraction strategies are tried in priority order and the local
heuristic extractor guarantees a result.

Example:
  reqspec refine "Users must be able to reset their password by email."
  reqspec refine --file notes.txt --json
  cat notes.txt | reqspec refine`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefine,
}

func init() {
	rootCmd.AddCommand(refineCmd)

	refineCmd.Flags().StringVarP(&refineFile, "file", "f", "", "read the description from a file")
	refineCmd.Flags().BoolVar(&refineJSON, "json", false, "print the result as JSON")
	refineCmd.Flags().DurationVar(&refineTimeout, "timeout", 2*time.Minute, "overall refinement timeout")
	refineCmd.Flags().StringVar(&refineAPIKey, "api-key", "", "OpenAI API key for this invocation only")
	refineCmd.Flags().BoolVar(&refineNoCache, "no-cache", false, "disable the result cache")
}

func runRefine(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if refineNoCache {
		cfg.Cache.Enabled = false
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), refineTimeout)
	defer cancel()

	svc := pipeline.NewService(cfg, logger)
	result, err := svc.Refine(ctx, text, refineAPIKey)
	if err != nil {
		return err
	}

	if refineJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Summary: %s\n\n", result.Summary)
	for _, req := range result.Requirements {
		fmt.Printf("  [%s] %s (%s)\n", req.ID, req.Description, req.Category)
	}
	fmt.Printf("\n%d requirements (source: %s)\n", len(result.Requirements), result.Source)
	return nil
}

// readInput resolves the description from the argument, --file, or stdin, in
// that order.
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if refineFile != "" {
		data, err := os.ReadFile(refineFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && (info.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("no input: pass text as an argument, use --file, or pipe it on stdin")
}

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/thaiseg/internal/config"
	"github.com/npillmayer/thaiseg/tokenize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTokenizeCmd() *cobra.Command {
	var subword bool
	cmd := &cobra.Command{
		Use:   "tokenize [text...]",
		Short: "Segment text from the arguments, or line by line from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			seg, closer, err := newSegmenter(cfg)
			if err != nil {
				return err
			}
			defer closer()
			lines := args
			if len(lines) == 0 {
				if lines, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			results := make([]result, 0, len(lines))
			for _, line := range lines {
				var tokens []string
				if subword {
					tokens, err = tokenize.SubwordTokenize(cmd.Context(), line, "tcc")
				} else {
					tokens, err = seg(cmd.Context(), line, cfg.Tokenize.Engine)
				}
				if err != nil {
					return err
				}
				results = append(results, result{Text: line, Tokens: tokens})
			}
			return writeResults(cmd.OutOrStdout(), cfg.Output.Format, results)
		},
	}
	cmd.Flags().BoolVar(&subword, "tcc", false, "Split into Thai Character Clusters instead of words")
	return cmd
}

// result is the segmentation of a single line of text.
type result struct {
	Text   string   `json:"text" yaml:"text"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// writeResults writes segmentation results. Format text prints one line
// of tokens, separated by '|', per input line.
func writeResults(w io.Writer, format string, results []result) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(results)
	}
	for _, r := range results {
		if _, err := fmt.Fprintln(w, strings.Join(r.Tokens, "|")); err != nil {
			return err
		}
	}
	return nil
}

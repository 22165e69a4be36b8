// Package cli implements the ip6tools command tree. It parses arguments,
// calls into the ipv6 engine and renders results; all validation and
// computation lives in the engine.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	outHuman outputFormat = "human"
	outJSON  outputFormat = "json"
	outYAML  outputFormat = "yaml"
)

var rootCmd = &cobra.Command{
	Use:   "ip6tools",
	Short: "IPv6 address and subnet toolkit",
	Long:  "ip6tools calculates IPv6 addresses and networks: expand/compress, classification, subnetting, supernetting, aggregation, address generation and allocation planning.",
}

var format outputFormat

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP((*string)(&format), "output", "o", string(outHuman), "output format: human|json|yaml")
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(reverseCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(supernetCmd)
	rootCmd.AddCommand(containsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(planCmd)
}

func render(v any) error {
	w := rootCmd.OutOrStdout()
	switch format {
	case outHuman:
		fmt.Fprintln(w, v)
	case outJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return errors.New("unknown output format")
	}
	return nil
}

// renderTable prints tabular results as a pterm table in human mode and
// falls back to render for structured formats.
func renderTable(w io.Writer, header []string, rows [][]string, structured any) error {
	if format != outHuman {
		return render(structured)
	}
	data := pterm.TableData{header}
	data = append(data, rows...)
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}

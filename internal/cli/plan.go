package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ip6tools/ip6tools/ipv6"
)

var planCmd = &cobra.Command{
	Use:   "plan <base IPv6 CIDR>",
	Short: "Plan disjoint subnet allocations for named requesters",
	Long: `Plan reads a YAML list of allocation requests and assigns each
requester a disjoint block of subnets carved out of the base network.

Request file format:
  - name: engineering
    subnets: 12
  - name: operations
    subnets: 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("requests")
		if file == "" {
			return fmt.Errorf("--requests file is required")
		}
		base, err := ipv6.ParseCIDR(args[0])
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		var requests []ipv6.AllocationRequest
		if err := yaml.Unmarshal(raw, &requests); err != nil {
			return fmt.Errorf("parsing %s: %w", file, err)
		}
		allocation, err := ipv6.RecommendAllocation(base, requests)
		if err != nil {
			return err
		}
		return renderAllocation(cmd, allocation)
	},
}

func renderAllocation(cmd *cobra.Command, allocation map[string][]ipv6.Subnet) error {
	names := make([]string, 0, len(allocation))
	for name := range allocation {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows [][]string
	structured := make(map[string][]string, len(allocation))
	for _, name := range names {
		for _, s := range allocation[name] {
			rows = append(rows, []string{name, fmt.Sprintf("%d", s.Index), s.String()})
			structured[name] = append(structured[name], s.String())
		}
	}
	return renderTable(cmd.OutOrStdout(), []string{"Requester", "#", "Subnet"}, rows, structured)
}

func init() {
	planCmd.Flags().StringP("requests", "f", "", "YAML file with allocation requests")
}

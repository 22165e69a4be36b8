package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ip6tools/ip6tools/ipv6"
)

var splitCmd = &cobra.Command{
	Use:   "split <IPv6 CIDR>",
	Short: "Divide a network into smaller subnets",
	Long:  "Divide a network either into all subnets of --new-prefix, or into exactly --count contiguous subnets.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newPrefix, _ := cmd.Flags().GetInt("new-prefix")
		count, _ := cmd.Flags().GetInt("count")
		n, err := ipv6.ParseCIDR(args[0])
		if err != nil {
			return err
		}
		var subs []ipv6.Subnet
		switch {
		case newPrefix > 0 && count > 0:
			return fmt.Errorf("--new-prefix and --count are mutually exclusive")
		case count > 0:
			subs, err = ipv6.DivideIntoSubnets(n, count)
		case newPrefix > 0:
			subs, err = ipv6.DivideByPrefix(n, newPrefix)
		default:
			return fmt.Errorf("one of --new-prefix or --count is required")
		}
		if err != nil {
			return err
		}
		return renderSubnets(cmd, subs)
	},
}

var supernetCmd = &cobra.Command{
	Use:   "supernet <IPv6 CIDR>",
	Short: "Compute the supernet at a shorter prefix length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newPrefix, _ := cmd.Flags().GetInt("new-prefix")
		n, err := ipv6.ParseCIDR(args[0])
		if err != nil {
			return err
		}
		super, err := ipv6.Supernet(n, newPrefix)
		if err != nil {
			return err
		}
		return render(super.String())
	},
}

var containsCmd = &cobra.Command{
	Use:   "contains <IPv6 CIDR> <IPv6 address>",
	Short: "Check whether an address belongs to a network",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := ipv6.ParseCIDR(args[0])
		if err != nil {
			return err
		}
		addr, err := ipv6.Parse(args[1])
		if err != nil {
			return err
		}
		if format == outHuman {
			verdict := "is not in"
			if n.Contains(addr) {
				verdict = "is in"
			}
			return render(fmt.Sprintf("%s %s %s", addr, verdict, n))
		}
		return render(map[string]any{
			"network":  n.String(),
			"address":  addr.String(),
			"contains": n.Contains(addr),
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <CIDR 1> <CIDR 2> ...",
	Short: "Compute the single smallest network containing all inputs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nets, err := parseCIDRs(args)
		if err != nil {
			return err
		}
		sum, err := ipv6.SummaryAddress(nets)
		if err != nil {
			return err
		}
		return render(sum.String())
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <CIDR 1> <CIDR 2> ...",
	Short: "Collapse a list of CIDRs into the minimal covering list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nets, err := parseCIDRs(args)
		if err != nil {
			return err
		}
		res := ipv6.Summarize(nets)
		list := make([]string, len(res))
		for i, n := range res {
			list[i] = n.String()
		}
		return render(list)
	},
}

func parseCIDRs(args []string) ([]ipv6.Network, error) {
	nets := make([]ipv6.Network, 0, len(args))
	for _, a := range args {
		n, err := ipv6.ParseCIDR(a)
		if err != nil {
			return nil, err
		}
		nets = append(nets, n)
	}
	return nets, nil
}

func renderSubnets(cmd *cobra.Command, subs []ipv6.Subnet) error {
	rows := make([][]string, len(subs))
	list := make([]string, len(subs))
	for i, s := range subs {
		rows[i] = []string{fmt.Sprintf("%d", s.Index), s.String(), s.NumAddresses().String()}
		list[i] = s.String()
	}
	return renderTable(cmd.OutOrStdout(), []string{"#", "Subnet", "Addresses"}, rows, list)
}

func init() {
	splitCmd.Flags().Int("new-prefix", 0, "new prefix length to split into (must be larger than original)")
	splitCmd.Flags().Int("count", 0, "number of contiguous subnets to create")
	supernetCmd.Flags().Int("new-prefix", 0, "prefix length of the supernet (must be smaller than original)")
}

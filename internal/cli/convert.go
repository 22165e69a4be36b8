package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ip6tools/ip6tools/ipv6"
)

var infoCmd = &cobra.Command{
	Use:   "info <IPv6 CIDR or address>",
	Short: "Show information about an IPv6 address or network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]
		if strings.Contains(arg, "/") {
			n, err := ipv6.ParseCIDR(arg)
			if err != nil {
				return err
			}
			out := map[string]any{
				"network":       n.String(),
				"prefix_length": n.PrefixLength(),
				"netmask":       n.Mask().String(),
				"first_address": n.First().String(),
				"last_address":  n.Last().String(),
				"num_addresses": n.NumAddresses().String(),
			}
			return render(out)
		}
		addr, err := ipv6.Parse(arg)
		if err != nil {
			return err
		}
		out := map[string]any{
			"address":  addr.String(),
			"expanded": addr.Expanded(),
			"type":     addr.Type().String(),
			"reverse":  addr.ReversePointer(),
		}
		if addr.Zone() != "" {
			out["zone"] = addr.Zone()
		}
		return render(out)
	},
}

var expandCmd = &cobra.Command{
	Use:   "expand <IPv6 address>",
	Short: "Expand a compressed IPv6 address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := ipv6.Parse(args[0])
		if err != nil {
			return err
		}
		return render(addr.Expanded())
	},
}

var compressCmd = &cobra.Command{
	Use:   "compress <expanded IPv6>",
	Short: "Compress an expanded IPv6 address to canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := ipv6.Parse(args[0])
		if err != nil {
			return err
		}
		return render(addr.String())
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse <IPv6 address>",
	Short: "Produce reverse DNS ip6.arpa name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := ipv6.Parse(args[0])
		if err != nil {
			return err
		}
		return render(addr.ReversePointer())
	},
}

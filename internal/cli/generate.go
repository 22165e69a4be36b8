package cli

import (
	"github.com/spf13/cobra"

	"github.com/ip6tools/ip6tools/ipv6"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate IPv6 addresses",
}

var genLinkLocalCmd = &cobra.Command{
	Use:   "link-local",
	Short: "Generate a link-local address (fe80::/10)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		iid, _ := cmd.Flags().GetString("interface-id")
		return generateN(cmd, func(g ipv6.Generator) (ipv6.Address, error) {
			return g.LinkLocal(iid)
		})
	},
}

var genULACmd = &cobra.Command{
	Use:   "ula",
	Short: "Generate a unique local address (fd00::/8)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gid, _ := cmd.Flags().GetString("global-id")
		sid, _ := cmd.Flags().GetString("subnet-id")
		iid, _ := cmd.Flags().GetString("interface-id")
		return generateN(cmd, func(g ipv6.Generator) (ipv6.Address, error) {
			return g.UniqueLocal(gid, sid, iid)
		})
	},
}

var genRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate a random address inside a prefix",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		n, err := ipv6.ParseCIDR(prefix)
		if err != nil {
			return err
		}
		return generateN(cmd, func(g ipv6.Generator) (ipv6.Address, error) {
			return g.Random(n)
		})
	},
}

var genFromMACCmd = &cobra.Command{
	Use:   "from-mac <MAC address>",
	Short: "Derive the EUI-64 link-local address from a MAC address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateN(cmd, func(ipv6.Generator) (ipv6.Address, error) {
			return ipv6.MACToLinkLocal(args[0])
		})
	},
}

// generateN runs one generator call per requested address and renders the
// batch (a bare string for a single address).
func generateN(cmd *cobra.Command, gen func(ipv6.Generator) (ipv6.Address, error)) error {
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		count = 1
	}
	g := ipv6.NewGenerator(nil)
	list := make([]string, count)
	for i := range list {
		addr, err := gen(g)
		if err != nil {
			return err
		}
		list[i] = addr.String()
	}
	if count == 1 {
		return render(list[0])
	}
	return render(list)
}

func init() {
	generateCmd.PersistentFlags().IntP("count", "n", 1, "number of addresses to generate")
	genLinkLocalCmd.Flags().StringP("interface-id", "i", "", "interface ID (64 bits hex)")
	genULACmd.Flags().StringP("global-id", "g", "", "global ID (40 bits hex)")
	genULACmd.Flags().StringP("subnet-id", "s", "", "subnet ID (16 bits hex)")
	genULACmd.Flags().StringP("interface-id", "i", "", "interface ID (64 bits hex)")
	genRandomCmd.Flags().StringP("prefix", "p", "2001:db8::/64", "prefix to generate inside")
	generateCmd.AddCommand(genLinkLocalCmd)
	generateCmd.AddCommand(genULACmd)
	generateCmd.AddCommand(genRandomCmd)
	generateCmd.AddCommand(genFromMACCmd)
}

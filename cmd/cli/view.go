package cli

import (
	"github.com/spf13/cobra"
)

var (
	viewOpts    viewOptions
	viewLinks   bool
	viewScripts bool
	viewLegend  bool
)

// viewCmd represents the view command.
var viewCmd = &cobra.Command{
	Use:   "view FILE...",
	Short: "Show merged hosts and open ports",
	Long: `Load one or more nmap XML files, merge them by IP address and print
the open ports of every host. Ports are highlighted by service category.
Files that fail to parse are reported and skipped.`,
	Example: `  scanview view scan.xml
  scanview view day1.xml day2.xml --sort ip
  scanview view scan.xml --tag http --tag ssh --mode and
  scanview view scan.xml --query 445 --links --scripts`,
	Args: cobra.MinimumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	addViewFlags(viewCmd.Flags(), &viewOpts)
	viewCmd.Flags().BoolVar(&viewLinks, "links", false, "Show browser links for web ports")
	viewCmd.Flags().BoolVar(&viewScripts, "scripts", false, "Show NSE script output")
	viewCmd.Flags().BoolVar(&viewLegend, "legend", false, "Print the highlight legend")
}

func runView(cmd *cobra.Command, args []string) error {
	state, err := viewOpts.state()
	if err != nil {
		return err
	}

	s, err := loadSession(cmd, args, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	renderHosts(cmd.OutOrStdout(), s.Derive(state), renderOptions{
		links:   viewLinks,
		scripts: viewScripts,
		legend:  viewLegend,
	})
	return nil
}

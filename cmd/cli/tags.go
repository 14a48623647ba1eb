package cli

import (
	"github.com/spf13/cobra"
)

// tagsCmd represents the tags command.
var tagsCmd = &cobra.Command{
	Use:   "tags FILE...",
	Short: "List the service categories present in scan files",
	Long: `Print the filter tags that can be used with --tag. Only categories
observed on at least one open port are listed.`,
	Example: `  scanview tags scan.xml`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	renderTags(cmd.OutOrStdout(), s.Hosts())
	return nil
}

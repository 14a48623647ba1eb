package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/anstrom/scanview/internal/export"
	"github.com/anstrom/scanview/internal/scandata"
	"github.com/anstrom/scanview/internal/session"
)

const stdoutTarget = "-"

var (
	exportOpts   viewOptions
	exportOutput string
	exportCopy   bool

	// clip is replaced in tests.
	clip export.Clipboard = export.SystemClipboard{}
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered host list",
	Long: `Export the merged and filtered host list as a hosts file, as follow-up
nmap commands, as a PDF report or as merged nmap XML. Filter flags work the same as for view.`,
}

var exportHostsCmd = &cobra.Command{
	Use:   "hosts FILE...",
	Short: "Write an /etc/hosts style file",
	Long: `Write one line per host ordered by IP. Hosts with a hostname get
"ip<TAB>hostname", others just "ip". Without --output the file named by
export.hosts_file is written, or stdout when it is empty.`,
	Example: `  scanview export hosts scan.xml
  scanview export hosts scan.xml -o hosts.txt --tag smb`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExportHosts,
}

var exportCommandsCmd = &cobra.Command{
	Use:   "commands FILE...",
	Short: "Generate nmap follow-up commands",
	Long: `Generate one "nmap -sC -sV" command per host, limited to the host's
open ports, with all output formats saved under a name derived from the IP.
Hosts without open ports are skipped. Without --output the file named by
export.commands_file is written, or stdout when it is empty.`,
	Example: `  scanview export commands scan.xml
  scanview export commands scan.xml --copy
  scanview export commands scan.xml -o commands.txt --tag http`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExportCommands,
}

var exportReportCmd = &cobra.Command{
	Use:   "report FILE...",
	Short: "Render a PDF report",
	Long: `Render a PDF with a summary page and one page per host listing its
open ports. The default file name comes from export.report_file.`,
	Example: `  scanview export report scan.xml
  scanview export report day1.xml day2.xml -o weekly.pdf --sort ip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExportReport,
}

var exportXMLCmd = &cobra.Command{
	Use:   "xml FILE...",
	Short: "Write the merged hosts as nmap XML",
	Long: `Write the merged and filtered hosts as a single nmap-compatible XML
document. The result can be loaded again like any other scan file.`,
	Example: `  scanview export xml day1.xml day2.xml -o merged.xml
  scanview export xml scan.xml --tag http`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExportXML,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportHostsCmd)
	exportCmd.AddCommand(exportCommandsCmd)
	exportCmd.AddCommand(exportReportCmd)
	exportCmd.AddCommand(exportXMLCmd)

	addViewFlags(exportCmd.PersistentFlags(), &exportOpts)
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "",
		`Output file ("-" for stdout; defaults come from the export.* config keys)`)
	exportCommandsCmd.Flags().BoolVar(&exportCopy, "copy", false, "Copy the commands to the clipboard")
}

// exportHosts loads and filters hosts for an export subcommand.
func exportHosts(cmd *cobra.Command, args []string) (*session.Session, []scandata.Host, error) {
	state, err := exportOpts.state()
	if err != nil {
		return nil, nil, err
	}
	s, err := loadSession(cmd, args, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return s, s.Derive(state), nil
}

func runExportHosts(cmd *cobra.Command, args []string) error {
	s, hosts, err := exportHosts(cmd, args)
	if err != nil {
		return err
	}
	target := exportOutput
	if target == "" {
		target = appConfig.Export.HostsFile
	}
	err = writeText(cmd.OutOrStdout(), target, export.HostsFile(hosts))
	s.RecordExport("hosts", err)
	return err
}

func runExportCommands(cmd *cobra.Command, args []string) error {
	s, hosts, err := exportHosts(cmd, args)
	if err != nil {
		return err
	}

	if exportCopy {
		err = export.CopyCommands(clip, hosts)
		s.RecordExport("clipboard", err)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied %d command(s) to the clipboard\n", len(export.ReconTargets(hosts)))
		if exportOutput == "" {
			return nil
		}
	}

	target := exportOutput
	if target == "" {
		target = appConfig.Export.CommandsFile
	}
	err = writeText(cmd.OutOrStdout(), target, export.ReconCommands(hosts))
	s.RecordExport("commands", err)
	return err
}

func runExportReport(cmd *cobra.Command, args []string) error {
	s, hosts, err := exportHosts(cmd, args)
	if err != nil {
		return err
	}

	target := exportOutput
	if target == "" {
		target = appConfig.Export.ReportFile
	}

	if target == stdoutTarget {
		var buf bytes.Buffer
		err = export.WriteReport(&buf, hosts, appConfig.ReportOptions())
		if err == nil {
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
		}
	} else {
		err = export.WriteReportFile(target, hosts, appConfig.ReportOptions())
		if err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Report with %d host(s) written to %s\n", len(hosts), target)
		}
	}
	s.RecordExport("report", err)
	return err
}

func runExportXML(cmd *cobra.Command, args []string) error {
	s, hosts, err := exportHosts(cmd, args)
	if err != nil {
		return err
	}

	if exportOutput == "" || exportOutput == stdoutTarget {
		err = export.WriteSnapshot(cmd.OutOrStdout(), hosts)
	} else {
		err = export.WriteSnapshotFile(exportOutput, hosts)
	}
	s.RecordExport("xml", err)
	return err
}

// writeText sends text exports to stdout unless a file is named.
func writeText(out io.Writer, target, text string) error {
	if target == "" || target == stdoutTarget {
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(out, text)
		return err
	}
	return export.WriteFile(target, text)
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/anstrom/scanview/internal/classify"
	"github.com/anstrom/scanview/internal/scandata"
	"github.com/anstrom/scanview/internal/view"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00CEC9"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72"))

	portStyles = map[classify.Style]lipgloss.Style{
		classify.StyleSMB:          lipgloss.NewStyle().Foreground(lipgloss.Color("#A29BFE")),
		classify.StyleStandardHTTP: lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894")),
		classify.StyleHTTP:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E")),
		classify.StyleLDAP:         lipgloss.NewStyle().Foreground(lipgloss.Color("#0984E3")),
		classify.StyleSSH:          lipgloss.NewStyle().Foreground(lipgloss.Color("#81ECEC")),
		classify.StyleKerberos:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E17055")),
		classify.StyleMySQL:        lipgloss.NewStyle().Foreground(lipgloss.Color("#55EFC4")),
		classify.StyleNagios:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FD79A8")),
		classify.StyleRDP:          lipgloss.NewStyle().Foreground(lipgloss.Color("#D63031")),
	}

	legendText = map[classify.Style]string{
		classify.StyleSMB:          "SMB",
		classify.StyleStandardHTTP: "HTTP (standard port)",
		classify.StyleHTTP:         "HTTP (non-standard port)",
		classify.StyleLDAP:         "LDAP",
		classify.StyleSSH:          "SSH",
		classify.StyleKerberos:     "Kerberos",
		classify.StyleMySQL:        "MySQL",
		classify.StyleNagios:       "Nagios",
		classify.StyleRDP:          "RDP",
	}
)

type renderOptions struct {
	links   bool
	scripts bool
	legend  bool
}

// styled highlights text with the style chosen for the port.
func styled(p scandata.Port, text string) string {
	st, ok := portStyles[classify.StyleFor(p.Port, p.Service)]
	if !ok {
		return text
	}
	return st.Render(text)
}

// renderHosts prints one port table per host.
func renderHosts(w io.Writer, hosts []scandata.Host, opts renderOptions) {
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%d host(s), %d open port(s)",
		len(hosts), scandata.TotalPorts(hosts))))

	if opts.legend {
		renderLegend(w)
	}

	for _, h := range hosts {
		fmt.Fprintln(w)
		title := "Host: " + h.Hostname
		if h.HasHostname() {
			title += " (" + h.IP + ")"
		}
		fmt.Fprintln(w, titleStyle.Render(title))
		fmt.Fprintf(w, "Open ports: %d\n", h.PortCount())

		if len(h.PortDetails) > 0 {
			renderPortTable(w, h, opts)
		}
		if opts.scripts {
			renderScripts(w, h)
		}
	}
}

func renderPortTable(w io.Writer, h scandata.Host, opts renderOptions) {
	table := tablewriter.NewWriter(w)
	if opts.links {
		table.Header("Port", "Service", "Product", "Version", "Links")
	} else {
		table.Header("Port", "Service", "Product", "Version")
	}

	for _, p := range h.PortDetails {
		row := []string{
			styled(p, p.Label()),
			styled(p, p.Service),
			p.Product,
			p.Version,
		}
		if opts.links {
			var urls []string
			for _, l := range view.WebLinks(h, p) {
				urls = append(urls, l.URL)
			}
			row = append(row, strings.Join(urls, " "))
		}
		_ = table.Append(row)
	}

	_ = table.Render()
}

func renderScripts(w io.Writer, h scandata.Host) {
	for _, p := range h.PortDetails {
		for _, s := range p.Scripts {
			fmt.Fprintf(w, "  %s/%s %s\n", p.Port, s.ID, metaStyle.Render(indent(s.Output)))
		}
	}
	for _, s := range h.HostScripts {
		fmt.Fprintf(w, "  host/%s %s\n", s.ID, metaStyle.Render(indent(s.Output)))
	}
}

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n    ")
}

func renderLegend(w io.Writer) {
	parts := make([]string, 0, len(classify.Styles()))
	for _, st := range classify.Styles() {
		parts = append(parts, portStyles[st].Render(legendText[st]))
	}
	fmt.Fprintln(w, "Legend: "+strings.Join(parts, "  "))
}

// renderTags prints discovered categories with how many hosts carry them.
func renderTags(w io.Writer, hosts []scandata.Host) {
	table := tablewriter.NewWriter(w)
	table.Header("Tag", "Hosts", "Ports")

	for _, tag := range view.DiscoverTags(hosts) {
		hostCount, portCount := 0, 0
		for _, h := range hosts {
			matched := 0
			for _, p := range h.PortDetails {
				if classify.Matches(tag, p.Port, p.Service) {
					matched++
				}
			}
			if matched > 0 {
				hostCount++
				portCount += matched
			}
		}
		_ = table.Append([]string{string(tag), fmt.Sprint(hostCount), fmt.Sprint(portCount)})
	}

	_ = table.Render()
}

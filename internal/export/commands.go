// Package export turns a derived host list into the artifacts handed to the
// user: reconnaissance commands, a hosts file and a PDF report.
package export

import (
	"sort"
	"strings"

	"github.com/anstrom/scanview/internal/scandata"
	"github.com/anstrom/scanview/internal/view"
)

// ReconCommand builds the follow-up scan command for one host: default
// scripts and version detection against its open ports, with all output
// formats written to a basename derived from the IP. The port list is left
// out when the host has no open ports.
func ReconCommand(h scandata.Host) string {
	var b strings.Builder
	b.WriteString("nmap -sC -sV")
	if len(h.Ports) > 0 {
		b.WriteString(" -p ")
		b.WriteString(strings.Join(h.Ports, ","))
	}
	b.WriteString(" -oA ")
	b.WriteString(sanitize(h.IP))
	b.WriteString(" ")
	b.WriteString(h.IP)
	return b.String()
}

// ReconTargets returns the hosts that have open ports to follow up on.
func ReconTargets(hosts []scandata.Host) []scandata.Host {
	targets := make([]scandata.Host, 0, len(hosts))
	for _, h := range hosts {
		if len(h.Ports) > 0 {
			targets = append(targets, h)
		}
	}
	return targets
}

// ReconCommands joins ReconCommand for every host with open ports, one per line.
func ReconCommands(hosts []scandata.Host) string {
	targets := ReconTargets(hosts)
	lines := make([]string, len(targets))
	for i, h := range targets {
		lines[i] = ReconCommand(h)
	}
	return strings.Join(lines, "\n")
}

// sanitize replaces everything outside [A-Za-z0-9] with an underscore.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, s)
}

// HostsFile renders hosts in /etc/hosts layout ordered by numeric IP. Hosts
// without a distinct hostname get a bare IP line.
func HostsFile(hosts []scandata.Host) string {
	ordered := scandata.CloneHosts(hosts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return view.CompareIP(ordered[i].IP, ordered[j].IP) < 0
	})

	lines := make([]string, len(ordered))
	for i, h := range ordered {
		if h.Hostname == "" || h.Hostname == h.IP {
			lines[i] = h.IP
			continue
		}
		lines[i] = h.IP + "\t" + h.Hostname
	}
	return strings.Join(lines, "\n")
}

package view

import (
	"net"
	"strings"

	"github.com/miekg/dns"

	"github.com/anstrom/scanview/internal/classify"
	"github.com/anstrom/scanview/internal/scandata"
)

// LinkTarget says which host identifier a link points at.
type LinkTarget string

const (
	TargetIP       LinkTarget = "ip"
	TargetHostname LinkTarget = "hostname"
)

// Link is a browser URL for a web port.
type Link struct {
	Scheme string     `json:"scheme"`
	Target LinkTarget `json:"target"`
	URL    string     `json:"url"`
}

// Label is the short text shown for the link, e.g. "https (Hostname)".
func (l Link) Label() string {
	if l.Target == TargetHostname {
		return l.Scheme + " (Hostname)"
	}
	return l.Scheme + " (IP)"
}

// WebLinks returns browser links for p when it is an http-category port.
// A service named exactly https only gets https links; other web services
// get both schemes. Hostname links are added when the host has a hostname
// distinct from its IP that is a valid domain name.
func WebLinks(h scandata.Host, p scandata.Port) []Link {
	if !classify.IsHTTP(p.Service) {
		return nil
	}

	schemes := []string{"http", "https"}
	if strings.EqualFold(p.Service, "https") {
		schemes = []string{"https"}
	}

	withHostname := h.HasHostname()
	if withHostname {
		_, withHostname = dns.IsDomainName(h.Hostname)
	}

	links := make([]Link, 0, 2*len(schemes))
	for _, scheme := range schemes {
		links = append(links, Link{
			Scheme: scheme,
			Target: TargetIP,
			URL:    scheme + "://" + net.JoinHostPort(h.IP, p.Port),
		})
		if withHostname {
			links = append(links, Link{
				Scheme: scheme,
				Target: TargetHostname,
				URL:    scheme + "://" + net.JoinHostPort(h.Hostname, p.Port),
			})
		}
	}
	return links
}

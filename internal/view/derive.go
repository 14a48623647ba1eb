package view

import (
	"net/netip"
	"sort"
	"strings"

	"github.com/anstrom/scanview/internal/classify"
	"github.com/anstrom/scanview/internal/scandata"
)

// DiscoverTags returns the categories observed on any port, in table order.
// Categories absent from the data are never offered as filters.
func DiscoverTags(hosts []scandata.Host) []classify.Category {
	seen := make(map[classify.Category]bool)
	for _, h := range hosts {
		for _, p := range h.PortDetails {
			for _, c := range classify.Classify(p.Port, p.Service) {
				seen[c] = true
			}
		}
	}

	tags := make([]classify.Category, 0, len(seen))
	for _, c := range classify.All() {
		if seen[c] {
			tags = append(tags, c)
		}
	}
	return tags
}

// Derive applies the text filter, the tag filter and the sort in s to hosts.
// The result is a new slice of copies; when tags are active each host's
// ports are narrowed to the ones matching at least one tag.
func Derive(hosts []scandata.Host, s State) []scandata.Host {
	query := strings.ToLower(strings.TrimSpace(s.Query))

	out := make([]scandata.Host, 0, len(hosts))
	for _, h := range hosts {
		if !matchesQuery(h, query) {
			continue
		}
		if len(s.Filters) > 0 {
			if !matchesTags(h, s.Filters, s.Mode) {
				continue
			}
			out = append(out, narrow(h, s.Filters))
			continue
		}
		out = append(out, h.Clone())
	}

	sortHosts(out, s.SortKey, s.SortDir)
	return out
}

func matchesQuery(h scandata.Host, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(h.Hostname), query) ||
		strings.Contains(strings.ToLower(h.IP), query) {
		return true
	}
	for _, p := range h.PortDetails {
		if strings.Contains(strings.ToLower(p.Service), query) ||
			strings.Contains(p.Port, query) {
			return true
		}
	}
	return false
}

func matchesTags(h scandata.Host, tags []classify.Category, mode Mode) bool {
	if mode == ModeAnd {
		for _, tag := range tags {
			if !anyPortMatches(h, tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range tags {
		if anyPortMatches(h, tag) {
			return true
		}
	}
	return false
}

func anyPortMatches(h scandata.Host, tag classify.Category) bool {
	for _, p := range h.PortDetails {
		if classify.Matches(tag, p.Port, p.Service) {
			return true
		}
	}
	return false
}

func portMatchesAny(p scandata.Port, tags []classify.Category) bool {
	for _, tag := range tags {
		if classify.Matches(tag, p.Port, p.Service) {
			return true
		}
	}
	return false
}

// narrow copies h keeping only ports that match one of tags.
func narrow(h scandata.Host, tags []classify.Category) scandata.Host {
	c := h.Clone()
	details := make([]scandata.Port, 0, len(c.PortDetails))
	keep := make(map[string]bool)
	for _, p := range c.PortDetails {
		if portMatchesAny(p, tags) {
			details = append(details, p)
			keep[p.Port] = true
		}
	}
	c.PortDetails = details
	ports := make([]string, 0, len(keep))
	for _, id := range h.Ports {
		if keep[id] {
			ports = append(ports, id)
		}
	}
	c.Ports = ports
	return c
}

func sortHosts(hosts []scandata.Host, key SortKey, dir Direction) {
	var less func(a, b scandata.Host) int
	switch key {
	case SortIP:
		less = func(a, b scandata.Host) int { return CompareIP(a.IP, b.IP) }
	case SortHostname:
		less = func(a, b scandata.Host) int { return strings.Compare(a.Hostname, b.Hostname) }
	case SortPortCount:
		less = func(a, b scandata.Host) int { return a.PortCount() - b.PortCount() }
	default:
		return
	}

	sort.SliceStable(hosts, func(i, j int) bool {
		c := less(hosts[i], hosts[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
}

// CompareIP orders IPv4 addresses numerically, octet by octet. Addresses that
// do not parse sort after valid ones and compare as strings among themselves.
func CompareIP(a, b string) int {
	ipA, errA := netip.ParseAddr(a)
	ipB, errB := netip.ParseAddr(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return ipA.Compare(ipB)
}

// Package scandata holds the canonical host/port model built from nmap scan
// files, the normalizer that produces it and the merge reducer that folds new
// scan batches into an existing session.
package scandata

import (
	"strconv"
	"strings"
)

const (
	// StateOpen is the only port state kept in canonical records.
	StateOpen = "open"

	// DefaultService is used when a port reports no service name.
	DefaultService = "unknown"

	// DefaultProtocol is assumed when a port reports no protocol.
	DefaultProtocol = "tcp"
)

// Script is a named NSE script result attached to a host or a port.
type Script struct {
	ID     string `json:"id" yaml:"id"`
	Output string `json:"output" yaml:"output"`
}

// Port is one observed open port on a host. A port id seen over several
// protocols (tcp/53 and udp/53) is one Port listing every protocol.
type Port struct {
	// Port is the port identifier as reported by the scanner.
	Port      string   `json:"port" yaml:"port"`
	Protocols []string `json:"protocols" yaml:"protocols"`
	State     string   `json:"state" yaml:"state"`
	Service   string   `json:"service" yaml:"service"`
	Product   string   `json:"product" yaml:"product"`
	Version   string   `json:"version" yaml:"version"`
	ExtraInfo string   `json:"extra_info" yaml:"extra_info"`
	OSType    string   `json:"os_type" yaml:"os_type"`
	Scripts   []Script `json:"scripts" yaml:"scripts"`
}

// Host is one scanned endpoint, keyed by its IPv4 address.
type Host struct {
	// ID is a display identifier, stable while the host list is unchanged.
	ID          string   `json:"id" yaml:"id"`
	IP          string   `json:"ip" yaml:"ip"`
	Hostname    string   `json:"hostname" yaml:"hostname"`
	Ports       []string `json:"ports" yaml:"ports"`
	PortDetails []Port   `json:"port_details" yaml:"port_details"`
	HostScripts []Script `json:"host_scripts" yaml:"host_scripts"`
}

// PortCount returns the number of open ports on the host.
func (h Host) PortCount() int {
	return len(h.Ports)
}

// HasHostname reports whether a hostname distinct from the IP was observed.
func (h Host) HasHostname() bool {
	return h.Hostname != "" && h.Hostname != h.IP
}

// Clone returns a deep copy of the host.
func (h Host) Clone() Host {
	c := h
	c.Ports = cloneSlice(h.Ports)
	c.HostScripts = cloneSlice(h.HostScripts)
	if h.PortDetails != nil {
		c.PortDetails = make([]Port, len(h.PortDetails))
		for i, p := range h.PortDetails {
			c.PortDetails[i] = p.clone()
		}
	}
	return c
}

// Label returns the port id with its protocols, e.g. "53/tcp,udp".
func (p Port) Label() string {
	if len(p.Protocols) == 0 {
		return p.Port
	}
	return p.Port + "/" + strings.Join(p.Protocols, ",")
}

func (p Port) clone() Port {
	c := p
	c.Protocols = cloneSlice(p.Protocols)
	c.Scripts = cloneSlice(p.Scripts)
	return c
}

// cloneSlice copies s, keeping nil and empty slices distinct.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// CloneHosts deep-copies a host list.
func CloneHosts(hosts []Host) []Host {
	if hosts == nil {
		return nil
	}
	out := make([]Host, len(hosts))
	for i := range hosts {
		out[i] = hosts[i].Clone()
	}
	return out
}

// AssignIDs sets each host's ID to its IP followed by its position.
func AssignIDs(hosts []Host) {
	for i := range hosts {
		hosts[i].ID = hosts[i].IP + "-" + strconv.Itoa(i)
	}
}

// TotalPorts counts open ports across hosts.
func TotalPorts(hosts []Host) int {
	n := 0
	for i := range hosts {
		n += len(hosts[i].PortDetails)
	}
	return n
}

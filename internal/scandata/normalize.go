package scandata

import (
	"strconv"

	"github.com/Ullaakut/nmap/v3"

	"github.com/anstrom/scanview/internal/errors"
)

const addrTypeIPv4 = "ipv4"

// SkippedHost records a host element that could not become a canonical Host.
type SkippedHost struct {
	// Index is the position of the host element in the document.
	Index     int
	Addresses []string
	Err       *errors.ParseError
}

// Batch is the normalized content of one scan document.
type Batch struct {
	Hosts   []Host
	Skipped []SkippedHost
}

// Normalize converts a parsed nmap run into canonical hosts. Hosts without an
// IPv4 address are not converted; they are reported in Batch.Skipped so the
// caller can surface them.
func Normalize(run *nmap.Run) Batch {
	var batch Batch
	if run == nil {
		return batch
	}

	batch.Hosts = make([]Host, 0, len(run.Hosts))
	for i := range run.Hosts {
		h := &run.Hosts[i]
		host, ok := convertHost(h)
		if !ok {
			batch.Skipped = append(batch.Skipped, SkippedHost{
				Index:     i,
				Addresses: addresses(h),
				Err: errors.NewParseError(errors.CodeMissingField,
					"host has no ipv4 address", ""),
			})
			continue
		}
		batch.Hosts = append(batch.Hosts, host)
	}

	AssignIDs(batch.Hosts)
	return batch
}

// convertHost converts a single nmap host to our format. Open ports sharing
// an id are folded into one Port.
func convertHost(h *nmap.Host) (Host, bool) {
	ip, ok := ipv4Address(h)
	if !ok {
		return Host{}, false
	}

	host := Host{
		IP:          ip,
		Hostname:    ip,
		Ports:       []string{},
		PortDetails: []Port{},
		HostScripts: convertScripts(h.HostScripts),
	}
	if len(h.Hostnames) > 0 && h.Hostnames[0].Name != "" {
		host.Hostname = h.Hostnames[0].Name
	}

	byPort := make(map[string]int, len(h.Ports))
	for j := range h.Ports {
		p := &h.Ports[j]
		if p.State.State != StateOpen {
			continue
		}
		port := convertPort(p)
		if pos, ok := byPort[port.Port]; ok {
			host.PortDetails[pos] = mergePort(host.PortDetails[pos], port)
			continue
		}
		byPort[port.Port] = len(host.PortDetails)
		host.Ports = append(host.Ports, port.Port)
		host.PortDetails = append(host.PortDetails, port)
	}

	return host, true
}

func convertPort(p *nmap.Port) Port {
	service := p.Service.Name
	if service == "" {
		service = DefaultService
	}
	protocol := p.Protocol
	if protocol == "" {
		protocol = DefaultProtocol
	}
	return Port{
		Port:      strconv.FormatUint(uint64(p.ID), 10),
		Protocols: []string{protocol},
		State:     p.State.State,
		Service:   service,
		Product:   p.Service.Product,
		Version:   p.Service.Version,
		ExtraInfo: p.Service.ExtraInfo,
		OSType:    p.Service.OSType,
		Scripts:   convertScripts(p.Scripts),
	}
}

func convertScripts(scripts []nmap.Script) []Script {
	out := make([]Script, 0, len(scripts))
	for _, s := range scripts {
		out = append(out, Script{ID: s.ID, Output: s.Output})
	}
	return out
}

func ipv4Address(h *nmap.Host) (string, bool) {
	for _, addr := range h.Addresses {
		if addr.AddrType == addrTypeIPv4 && addr.Addr != "" {
			return addr.Addr, true
		}
	}
	return "", false
}

func addresses(h *nmap.Host) []string {
	out := make([]string, 0, len(h.Addresses))
	for _, addr := range h.Addresses {
		out = append(out, addr.Addr)
	}
	return out
}

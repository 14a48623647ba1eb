package export

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"

	"github.com/anstrom/scanview/internal/errors"
	"github.com/anstrom/scanview/internal/scandata"
)

// snapshotXML is the root element of a merged snapshot. It uses the nmap
// element names so the snapshot can be loaded again like any scan file.
type snapshotXML struct {
	XMLName xml.Name  `xml:"nmaprun"`
	Scanner string    `xml:"scanner,attr"`
	Args    string    `xml:"args,attr,omitempty"`
	Hosts   []hostXML `xml:"host"`
}

type hostXML struct {
	Status    statusXML     `xml:"status"`
	Address   addressXML    `xml:"address"`
	Hostnames *hostnamesXML `xml:"hostnames,omitempty"`
	Ports     portsXML      `xml:"ports"`
	Scripts   *hostScripts  `xml:"hostscript,omitempty"`
}

type statusXML struct {
	State string `xml:"state,attr"`
}

type addressXML struct {
	Addr     string `xml:"addr,attr"`
	AddrType string `xml:"addrtype,attr"`
}

type hostnamesXML struct {
	Hostnames []hostnameXML `xml:"hostname"`
}

type hostnameXML struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr,omitempty"`
}

type portsXML struct {
	Ports []portXML `xml:"port"`
}

type portXML struct {
	Protocol string      `xml:"protocol,attr"`
	ID       uint16      `xml:"portid,attr"`
	State    stateXML    `xml:"state"`
	Service  serviceXML  `xml:"service"`
	Scripts  []scriptXML `xml:"script"`
}

type stateXML struct {
	State string `xml:"state,attr"`
}

type serviceXML struct {
	Name      string `xml:"name,attr"`
	Product   string `xml:"product,attr,omitempty"`
	Version   string `xml:"version,attr,omitempty"`
	ExtraInfo string `xml:"extrainfo,attr,omitempty"`
	OSType    string `xml:"ostype,attr,omitempty"`
}

type hostScripts struct {
	Scripts []scriptXML `xml:"script"`
}

type scriptXML struct {
	ID     string `xml:"id,attr"`
	Output string `xml:"output,attr"`
}

// WriteSnapshot writes hosts as an nmap-compatible XML document. Loading the
// result reproduces the same canonical hosts. A port is written once per
// protocol. Ports whose identifier is not a number are left out since nmap
// port ids are numeric.
func WriteSnapshot(w io.Writer, hosts []scandata.Host) error {
	doc := snapshotXML{
		Scanner: "scanview",
		Hosts:   make([]hostXML, 0, len(hosts)),
	}
	for i := range hosts {
		doc.Hosts = append(doc.Hosts, snapshotHost(&hosts[i]))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.WrapExportError("cannot write XML header", "snapshot", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.WrapExportError("cannot encode snapshot", "snapshot", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.WrapExportError("cannot write snapshot", "snapshot", err)
	}
	return nil
}

func snapshotHost(h *scandata.Host) hostXML {
	out := hostXML{
		Status:  statusXML{State: "up"},
		Address: addressXML{Addr: h.IP, AddrType: "ipv4"},
	}
	if h.HasHostname() {
		out.Hostnames = &hostnamesXML{Hostnames: []hostnameXML{{Name: h.Hostname, Type: "user"}}}
	}
	if len(h.HostScripts) > 0 {
		out.Scripts = &hostScripts{Scripts: snapshotScripts(h.HostScripts)}
	}

	for _, p := range h.PortDetails {
		id, err := strconv.ParseUint(p.Port, 10, 16)
		if err != nil {
			continue
		}
		protocols := p.Protocols
		if len(protocols) == 0 {
			protocols = []string{scandata.DefaultProtocol}
		}
		for _, protocol := range protocols {
			out.Ports.Ports = append(out.Ports.Ports, portXML{
				Protocol: protocol,
				ID:       uint16(id),
				State:    stateXML{State: scandata.StateOpen},
				Service: serviceXML{
					Name:      p.Service,
					Product:   p.Product,
					Version:   p.Version,
					ExtraInfo: p.ExtraInfo,
					OSType:    p.OSType,
				},
				Scripts: snapshotScripts(p.Scripts),
			})
		}
	}
	return out
}

func snapshotScripts(scripts []scandata.Script) []scriptXML {
	if len(scripts) == 0 {
		return nil
	}
	out := make([]scriptXML, len(scripts))
	for i, s := range scripts {
		out[i] = scriptXML(s)
	}
	return out
}

// WriteSnapshotFile writes the snapshot into path.
func WriteSnapshotFile(path string, hosts []scandata.Host) (err error) {
	f, err := os.Create(path) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return errors.WrapExportError("cannot create snapshot file", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapExportError("cannot close snapshot file", path, cerr)
		}
	}()
	return WriteSnapshot(f, hosts)
}

package scandata

// MergeStats counts what a merge did to the existing state.
type MergeStats struct {
	Added   int
	Updated int
}

// Merge folds batches into existing and returns the new state. Inputs are not
// modified. Hosts are matched by IP; batches are applied in order, so a host
// present in two batches is merged twice.
func Merge(existing []Host, batches ...[]Host) []Host {
	merged, _ := MergeWithStats(existing, batches...)
	return merged
}

// MergeWithStats is Merge that also reports how many hosts were added or updated.
func MergeWithStats(existing []Host, batches ...[]Host) ([]Host, MergeStats) {
	var stats MergeStats
	state := CloneHosts(existing)
	if state == nil {
		state = []Host{}
	}

	index := make(map[string]int, len(state))
	for i := range state {
		index[state[i].IP] = i
	}

	for _, batch := range batches {
		for i := range batch {
			incoming := &batch[i]
			if pos, ok := index[incoming.IP]; ok {
				mergeHost(&state[pos], incoming)
				stats.Updated++
				continue
			}
			index[incoming.IP] = len(state)
			state = append(state, incoming.Clone())
			stats.Added++
		}
	}

	AssignIDs(state)
	return state, stats
}

// mergeHost folds incoming into dst in place. dst must not alias incoming.
func mergeHost(dst *Host, incoming *Host) {
	if incoming.HasHostname() {
		dst.Hostname = incoming.Hostname
	}

	dst.Ports = unionPorts(dst.Ports, incoming.Ports)

	byPort := make(map[string]int, len(dst.PortDetails))
	for i := range dst.PortDetails {
		if _, ok := byPort[dst.PortDetails[i].Port]; !ok {
			byPort[dst.PortDetails[i].Port] = i
		}
	}
	for _, p := range incoming.PortDetails {
		if pos, ok := byPort[p.Port]; ok {
			dst.PortDetails[pos] = mergePort(dst.PortDetails[pos], p)
			continue
		}
		byPort[p.Port] = len(dst.PortDetails)
		dst.PortDetails = append(dst.PortDetails, p.clone())
	}

	// Repeated script runs are kept as separate observations.
	dst.HostScripts = append(dst.HostScripts, incoming.HostScripts...)
}

// unionPorts returns the distinct values of existing then incoming.
func unionPorts(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, list := range [][]string{existing, incoming} {
		for _, p := range list {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// mergePort overwrites prior with next field by field, keeping prior values
// where next is empty. An "unknown" service counts as empty. Protocols are
// the union of both.
func mergePort(prior, next Port) Port {
	merged := Port{
		Port:      prior.Port,
		Protocols: unionProtocols(prior.Protocols, next.Protocols),
		State:     pick(next.State, prior.State),
		Service:   prior.Service,
		Product:   pick(next.Product, prior.Product),
		Version:   pick(next.Version, prior.Version),
		ExtraInfo: pick(next.ExtraInfo, prior.ExtraInfo),
		OSType:    pick(next.OSType, prior.OSType),
		Scripts:   prior.Scripts,
	}
	if next.Service != "" && next.Service != DefaultService {
		merged.Service = next.Service
	}
	if merged.Service == "" {
		merged.Service = DefaultService
	}
	if len(next.Scripts) > 0 {
		merged.Scripts = next.Scripts
	}
	merged.Scripts = cloneSlice(merged.Scripts)
	return merged
}

func unionProtocols(prior, next []string) []string {
	if len(next) == 0 {
		return cloneSlice(prior)
	}
	return unionPorts(prior, next)
}

func pick(next, prior string) string {
	if next != "" {
		return next
	}
	return prior
}

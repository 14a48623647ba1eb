// Package classify maps service names reported by nmap to categories used for
// highlighting, filtering and link generation. Categories are kept as data in
// an ordered keyword table so new ones only need a new row.
package classify

import (
	"fmt"
	"strings"
)

// Category is a classification label derived from a port's service name.
type Category string

const (
	HTTP          Category = "http"
	SMB           Category = "smb"
	LDAP          Category = "ldap"
	SSH           Category = "ssh"
	Kerberos      Category = "kerberos"
	MySQL         Category = "mysql"
	Nagios        Category = "nagios"
	RDP           Category = "rdp"
	FTP           Category = "ftp"
	Mail          Category = "mail"
	DNS           Category = "dns"
	SNMP          Category = "snmp"
	NFS           Category = "nfs"
	MSSQL         Category = "mssql"
	Oracle        Category = "oracle"
	VNC           Category = "vnc"
	Telnet        Category = "telnet"
	TFTP          Category = "tftp"
	VPN           Category = "vpn"
	MongoDB       Category = "mongodb"
	Redis         Category = "redis"
	Jenkins       Category = "jenkins"
	Elasticsearch Category = "elasticsearch"

	// Standard marks http services on one of the well-known web ports.
	Standard Category = "standard"
)

type rule struct {
	category Category
	keywords []string
}

// rules is ordered; Categories reports matches in this order.
var rules = []rule{
	{HTTP, []string{"http", "https", "nginx", "apache", "tomcat", "iis", "webserver", "web"}},
	{SMB, []string{"microsoft-ds", "netbios-ssn"}},
	{LDAP, []string{"ldap"}},
	{SSH, []string{"ssh"}},
	{Kerberos, []string{"kerberos"}},
	{MySQL, []string{"mysql"}},
	{Nagios, []string{"nagios", "nrpe"}},
	{RDP, []string{"ms-wbt-server", "rdp"}},
	{FTP, []string{"ftp"}},
	{Mail, []string{"smtp", "pop3", "imap"}},
	{DNS, []string{"domain", "dns"}},
	{SNMP, []string{"snmp"}},
	{NFS, []string{"nfs"}},
	{MSSQL, []string{"ms-sql", "mssql"}},
	{Oracle, []string{"oracle"}},
	{VNC, []string{"vnc"}},
	{Telnet, []string{"telnet"}},
	{TFTP, []string{"tftp"}},
	{VPN, []string{"pptp", "l2tp"}},
	{MongoDB, []string{"mongodb"}},
	{Redis, []string{"redis"}},
	{Jenkins, []string{"jenkins"}},
	{Elasticsearch, []string{"elasticsearch"}},
}

var standardHTTPPorts = map[string]bool{
	"80":   true,
	"443":  true,
	"8080": true,
}

// All returns every known category in table order, followed by Standard.
func All() []Category {
	all := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		all = append(all, r.category)
	}
	return append(all, Standard)
}

// ParseCategory validates a user-supplied category name.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range All() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Categories returns the keyword categories whose keywords occur in service.
func Categories(service string) []Category {
	s := strings.ToLower(service)
	var matched []Category
	for _, r := range rules {
		if containsAny(s, r.keywords) {
			matched = append(matched, r.category)
		}
	}
	return matched
}

// Classify returns all categories for a port, including Standard when the
// service is http on a well-known web port.
func Classify(port, service string) []Category {
	matched := Categories(service)
	if standardHTTPPorts[port] && contains(matched, HTTP) {
		matched = append(matched, Standard)
	}
	return matched
}

// Matches reports whether a port with the given service falls in category c.
func Matches(c Category, port, service string) bool {
	if c == Standard {
		return standardHTTPPorts[port] && Matches(HTTP, port, service)
	}
	s := strings.ToLower(service)
	for _, r := range rules {
		if r.category == c {
			return containsAny(s, r.keywords)
		}
	}
	return false
}

// IsHTTP reports whether service looks like a web service.
func IsHTTP(service string) bool {
	return Matches(HTTP, "", service)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func contains(cs []Category, c Category) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

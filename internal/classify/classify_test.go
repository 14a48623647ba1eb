package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		service  string
		expected []Category
	}{
		{"http", []Category{HTTP}},
		{"HTTPS", []Category{HTTP}},
		{"http-proxy", []Category{HTTP}},
		{"Apache Tomcat", []Category{HTTP}},
		{"microsoft-ds", []Category{SMB}},
		{"netbios-ssn", []Category{SMB}},
		{"ldapssl", []Category{LDAP}},
		{"ssh", []Category{SSH}},
		{"kerberos-sec", []Category{Kerberos}},
		{"mysql", []Category{MySQL}},
		{"nrpe", []Category{Nagios}},
		{"ms-wbt-server", []Category{RDP}},
		{"ftp", []Category{FTP}},
		{"tftp", []Category{FTP, TFTP}},
		{"imap", []Category{Mail}},
		{"smtp", []Category{Mail}},
		{"domain", []Category{DNS}},
		{"snmp", []Category{SNMP}},
		{"nfs", []Category{NFS}},
		{"ms-sql-s", []Category{MSSQL}},
		{"oracle-tns", []Category{Oracle}},
		{"vnc-http", []Category{HTTP, VNC}},
		{"telnet", []Category{Telnet}},
		{"pptp", []Category{VPN}},
		{"mongodb", []Category{MongoDB}},
		{"redis", []Category{Redis}},
		{"jenkins", []Category{Jenkins}},
		{"elasticsearch", []Category{Elasticsearch}},
		{"unknown", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categories(tt.service))
		})
	}
}

func TestClassifyStandard(t *testing.T) {
	assert.Equal(t, []Category{HTTP, Standard}, Classify("80", "http"))
	assert.Equal(t, []Category{HTTP, Standard}, Classify("443", "https"))
	assert.Equal(t, []Category{HTTP, Standard}, Classify("8080", "http-proxy"))
	assert.Equal(t, []Category{HTTP}, Classify("8000", "http"))
	assert.Equal(t, []Category{SSH}, Classify("80", "ssh"))
	assert.NotContains(t, Classify("80", "ssh"), Standard)
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(HTTP, "8443", "https-alt"))
	assert.True(t, Matches(Standard, "80", "nginx"))
	assert.False(t, Matches(Standard, "81", "nginx"))
	assert.False(t, Matches(Standard, "80", "ssh"))
	assert.True(t, Matches(SSH, "22", "SSH"))
	assert.False(t, Matches(Category("nope"), "22", "ssh"))
	assert.True(t, IsHTTP("nginx"))
	assert.False(t, IsHTTP("domain"))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" HTTP ")
	require.NoError(t, err)
	assert.Equal(t, HTTP, c)

	c, err = ParseCategory("standard")
	require.NoError(t, err)
	assert.Equal(t, Standard, c)

	_, err = ParseCategory("gopher")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	assert.Equal(t, HTTP, all[0])
	assert.Equal(t, Standard, all[len(all)-1])
	assert.Len(t, all, len(rules)+1)
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		service string
		want    Style
	}{
		{"smb wins", "445", "microsoft-ds", StyleSMB},
		{"standard http", "80", "http", StyleStandardHTTP},
		{"standard https", "443", "https", StyleStandardHTTP},
		{"non-standard http", "8000", "http", StyleHTTP},
		{"ldap", "389", "ldap", StyleLDAP},
		{"ssh", "22", "ssh", StyleSSH},
		{"kerberos", "88", "kerberos-sec", StyleKerberos},
		{"mysql", "3306", "mysql", StyleMySQL},
		{"nagios", "5666", "nrpe", StyleNagios},
		{"rdp", "3389", "ms-wbt-server", StyleRDP},
		{"http beats ldap", "8000", "ldap-http", StyleHTTP},
		{"no style", "53", "domain", StyleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StyleFor(tt.port, tt.service))
		})
	}
}

func TestStylesOrder(t *testing.T) {
	styles := Styles()
	require.Len(t, styles, 9)
	assert.Equal(t, StyleSMB, styles[0])
	assert.Equal(t, StyleRDP, styles[len(styles)-1])
}

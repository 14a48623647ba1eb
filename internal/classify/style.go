package classify

// Style is the single highlight chosen for a port row.
type Style string

const (
	StyleNone         Style = ""
	StyleSMB          Style = "smb"
	StyleStandardHTTP Style = "standard-http"
	StyleHTTP         Style = "http"
	StyleLDAP         Style = "ldap"
	StyleSSH          Style = "ssh"
	StyleKerberos     Style = "kerberos"
	StyleMySQL        Style = "mysql"
	StyleNagios       Style = "nagios"
	StyleRDP          Style = "rdp"
)

// stylePriority is checked top to bottom; the first matching category wins.
var stylePriority = []struct {
	category Category
	style    Style
}{
	{SMB, StyleSMB},
	{Standard, StyleStandardHTTP},
	{HTTP, StyleHTTP},
	{LDAP, StyleLDAP},
	{SSH, StyleSSH},
	{Kerberos, StyleKerberos},
	{MySQL, StyleMySQL},
	{Nagios, StyleNagios},
	{RDP, StyleRDP},
}

// StyleFor picks the highlight for a port.
func StyleFor(port, service string) Style {
	for _, p := range stylePriority {
		if Matches(p.category, port, service) {
			return p.style
		}
	}
	return StyleNone
}

// Styles returns the highlight styles in priority order, for legends.
func Styles() []Style {
	styles := make([]Style, 0, len(stylePriority))
	for _, p := range stylePriority {
		styles = append(styles, p.style)
	}
	return styles
}

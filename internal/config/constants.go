package config

// Default locations on a panel host.
const (
	DefaultPanelDir        = "/var/www/pterodactyl"
	DefaultCredentialsFile = DefaultPanelDir + "/auto_users.txt"
	DefaultConfigFile      = "/etc/pteronode.yaml"
	DefaultPHP             = "php"
)

// Node defaults offered to the operator.
const (
	DefaultNodeName           = "auto-node"
	DefaultNodeMemoryMB       = 1024
	DefaultNodeDiskMB         = 10240
	DefaultNodeOverallocation = 0
)

// DefaultAddressEndpoints are the plain-text address echo services, in the
// order they are tried.
var DefaultAddressEndpoints = []string{
	"https://ipv4.ip.sb",
	"https://ipget.net",
	"https://ip.ping0.cc",
	"https://ip4.seeip.org",
	"https://api.my-ip.io/ip",
	"https://ipv4.icanhazip.com",
	"https://api.ipify.org",
}

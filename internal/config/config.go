package config

import (
	"path/filepath"
	"slices"
)

// Config is the runtime configuration of a provisioning run.
type Config struct {
	// PanelDir is the panel installation directory containing artisan.
	PanelDir string `yaml:"panel_dir"`

	// CredentialsFile is the generated file holding the admin login.
	CredentialsFile string `yaml:"credentials_file"`

	// PHP is the PHP binary used to run artisan.
	PHP string `yaml:"php"`

	// Node holds the artisan flags that are not asked from the operator.
	Node NodeDefaults `yaml:"node"`

	// AddressEndpoints overrides the address echo services.
	AddressEndpoints []string `yaml:"address_endpoints"`
}

// NodeDefaults are the fixed p:node:make flags.
type NodeDefaults struct {
	Description         string `yaml:"description"`
	LocationID          int    `yaml:"location_id"`
	Public              bool   `yaml:"public"`
	Scheme              string `yaml:"scheme"`
	BehindProxy         bool   `yaml:"behind_proxy"`
	Maintenance         bool   `yaml:"maintenance"`
	UploadSizeMB        int    `yaml:"upload_size"`
	DaemonListeningPort int    `yaml:"daemon_listening_port"`
	DaemonSFTPPort      int    `yaml:"daemon_sftp_port"`
	DaemonBase          string `yaml:"daemon_base"`
}

// NodeSpec is the per-run description of the node to create.
// It is built once from operator input plus the resolved address.
type NodeSpec struct {
	Name               string
	MemoryMB           int
	MemoryOverallocate int // percent
	DiskMB             int
	DiskOverallocate   int // percent
	FQDN               string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		PanelDir:         DefaultPanelDir,
		CredentialsFile:  DefaultCredentialsFile,
		PHP:              DefaultPHP,
		Node:             DefaultNodeDefaults(),
		AddressEndpoints: slices.Clone(DefaultAddressEndpoints),
	}
}

// DefaultNodeDefaults returns the flags the installer has always used.
func DefaultNodeDefaults() NodeDefaults {
	return NodeDefaults{
		Description:         "Auto Generate",
		LocationID:          1,
		Public:              true,
		Scheme:              "http",
		UploadSizeMB:        1024,
		DaemonListeningPort: 8080,
		DaemonSFTPPort:      2022,
		DaemonBase:          "/var/lib/pterodactyl",
	}
}

// DefaultNodeSpec returns the node values offered when the operator
// enters nothing.
func DefaultNodeSpec() NodeSpec {
	return NodeSpec{
		Name:               DefaultNodeName,
		MemoryMB:           DefaultNodeMemoryMB,
		MemoryOverallocate: DefaultNodeOverallocation,
		DiskMB:             DefaultNodeDiskMB,
		DiskOverallocate:   DefaultNodeOverallocation,
	}
}

// ArtisanPath returns the path of the artisan script in panelDir.
func ArtisanPath(panelDir string) string {
	return filepath.Join(panelDir, "artisan")
}

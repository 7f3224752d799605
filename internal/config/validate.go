package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Validate checks the configuration for values artisan or the panel would reject.
func (c *Config) Validate() error {
	var errs []error

	if c.PanelDir == "" {
		errs = append(errs, errors.New("panel_dir is required"))
	}
	if c.CredentialsFile == "" {
		errs = append(errs, errors.New("credentials_file is required"))
	}
	if c.PHP == "" {
		errs = append(errs, errors.New("php is required"))
	}
	if err := c.Node.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, endpoint := range c.AddressEndpoints {
		u, err := url.Parse(endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid address endpoint %q", endpoint))
		}
	}

	return errors.Join(errs...)
}

// Validate checks the fixed node flags.
func (d NodeDefaults) Validate() error {
	var errs []error

	if d.LocationID < 1 {
		errs = append(errs, fmt.Errorf("node.location_id must be positive, got %d", d.LocationID))
	}
	if d.Scheme != "http" && d.Scheme != "https" {
		errs = append(errs, fmt.Errorf("node.scheme must be http or https, got %q", d.Scheme))
	}
	if d.UploadSizeMB < 1 {
		errs = append(errs, fmt.Errorf("node.upload_size must be positive, got %d", d.UploadSizeMB))
	}
	if !validPort(d.DaemonListeningPort) {
		errs = append(errs, fmt.Errorf("node.daemon_listening_port out of range: %d", d.DaemonListeningPort))
	}
	if !validPort(d.DaemonSFTPPort) {
		errs = append(errs, fmt.Errorf("node.daemon_sftp_port out of range: %d", d.DaemonSFTPPort))
	}
	if d.DaemonBase == "" {
		errs = append(errs, errors.New("node.daemon_base is required"))
	}

	return errors.Join(errs...)
}

// Validate checks the operator-supplied node values.
// Overallocation may be -1, which the panel treats as "no limit checks".
func (s NodeSpec) Validate() error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, errors.New("node name is required"))
	}
	if s.MemoryMB < 1 {
		errs = append(errs, fmt.Errorf("memory must be positive, got %d", s.MemoryMB))
	}
	if s.DiskMB < 1 {
		errs = append(errs, fmt.Errorf("disk must be positive, got %d", s.DiskMB))
	}
	if s.MemoryOverallocate < -1 {
		errs = append(errs, fmt.Errorf("memory overallocation must be -1 or more, got %d", s.MemoryOverallocate))
	}
	if s.DiskOverallocate < -1 {
		errs = append(errs, fmt.Errorf("disk overallocation must be -1 or more, got %d", s.DiskOverallocate))
	}
	if s.FQDN == "" {
		errs = append(errs, errors.New("node address is required"))
	} else if ip := net.ParseIP(s.FQDN); ip != nil && ip.To4() == nil {
		errs = append(errs, fmt.Errorf("node address must be IPv4 or a hostname, got %s", s.FQDN))
	}

	return errors.Join(errs...)
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

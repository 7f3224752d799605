package artisan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/oneclickvirt/pterodactyl/internal/config"
)

const (
	cmdNodeMake = "p:node:make"
	cmdNodeList = "p:node:list"
)

// Client runs artisan commands inside a panel installation.
type Client struct {
	runner   Runner
	panelDir string
	php      string
	defaults config.NodeDefaults
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCommandTimeout bounds each artisan invocation. Zero means no bound
// beyond the caller's context.
func WithCommandTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a Client for the panel installed at panelDir.
// An empty php means "php" from PATH.
func New(runner Runner, panelDir, php string, defaults config.NodeDefaults, opts ...Option) *Client {
	if php == "" {
		php = config.DefaultPHP
	}
	c := &Client{
		runner:   runner,
		panelDir: panelDir,
		php:      php,
		defaults: defaults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateNode registers a node in the panel database.
func (c *Client) CreateNode(ctx context.Context, spec config.NodeSpec) error {
	res, err := c.artisan(ctx, NodeMakeArgs(spec, c.defaults)...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &CommandError{Command: cmdNodeMake, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// ListNodes returns the panel's nodes in the order artisan prints them.
func (c *Client) ListNodes(ctx context.Context) ([]Node, error) {
	res, err := c.artisan(ctx, cmdNodeList, "--format=json")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, &CommandError{Command: cmdNodeList, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return ParseNodes([]byte(res.Stdout))
}

func (c *Client) artisan(ctx context.Context, args ...string) (Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	full := append([]string{config.ArtisanPath(c.panelDir)}, args...)
	return c.runner.Run(ctx, c.panelDir, c.php, full...)
}

// NodeMakeArgs builds the p:node:make arguments for spec.
func NodeMakeArgs(spec config.NodeSpec, d config.NodeDefaults) []string {
	return []string{
		cmdNodeMake,
		"--name=" + spec.Name,
		"--description=" + d.Description,
		"--locationId=" + strconv.Itoa(d.LocationID),
		"--fqdn=" + spec.FQDN,
		"--public=" + boolFlag(d.Public),
		"--scheme=" + d.Scheme,
		"--proxy=" + boolFlag(d.BehindProxy),
		"--maintenance=" + boolFlag(d.Maintenance),
		"--maxMemory=" + strconv.Itoa(spec.MemoryMB),
		"--overallocateMemory=" + strconv.Itoa(spec.MemoryOverallocate),
		"--maxDisk=" + strconv.Itoa(spec.DiskMB),
		"--overallocateDisk=" + strconv.Itoa(spec.DiskOverallocate),
		"--uploadSize=" + strconv.Itoa(d.UploadSizeMB),
		"--daemonListeningPort=" + strconv.Itoa(d.DaemonListeningPort),
		"--daemonSFTPPort=" + strconv.Itoa(d.DaemonSFTPPort),
		"--daemonBase=" + d.DaemonBase,
		"--no-interaction",
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Node is one record of p:node:list output.
type Node struct {
	ID   int    `json:"-"`
	UUID string `json:"uuid,omitempty"`
	Name string `json:"name,omitempty"`
	FQDN string `json:"fqdn,omitempty"`
}

// UnmarshalJSON accepts the ID as either a JSON number or a string.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(n)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.ID) == 0 {
		return fmt.Errorf("node record has no id")
	}

	raw := bytes.Trim(aux.ID, `"`)
	id, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("invalid node id %s: %w", aux.ID, err)
	}
	n.ID = id
	return nil
}

// ParseNodes decodes p:node:list --format=json output.
// Empty output is an empty list.
func ParseNodes(data []byte) ([]Node, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse node list: %w", err)
	}
	return nodes, nil
}

// LatestNodeID returns the ID of the last node in the list.
func LatestNodeID(nodes []Node) (int, bool) {
	if len(nodes) == 0 {
		return 0, false
	}
	return nodes[len(nodes)-1].ID, true
}

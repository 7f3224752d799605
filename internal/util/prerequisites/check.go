// Package prerequisites checks that the host can run node provisioning:
// required tools on PATH, root privileges and a panel installation.
package prerequisites

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/oneclickvirt/pterodactyl/internal/config"
)

// ErrNotRoot is returned by CheckRoot when the process is not running as root.
var ErrNotRoot = errors.New("must be run as root")

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools a provisioning run needs.
// php is the binary that runs artisan; an empty name means "php".
func DefaultTools(php string) []Tool {
	if php == "" {
		php = "php"
	}
	return []Tool{
		{
			Name:        php,
			Required:    true,
			Description: "Runs the panel's artisan commands",
			InstallURL:  "https://pterodactyl.io/panel/1.0/getting_started.html#dependencies",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "wings",
			Required:    false,
			Description: "Runs the printed registration command on this host",
			InstallURL:  "https://pterodactyl.io/wings/1.0/installing.html",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Try to get version (best effort)
			result.Version = getToolVersion(path)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckAll checks the required tools plus the optional ones.
func CheckAll(php string) *CheckResults {
	defaults := DefaultTools(php)
	optional := OptionalTools()
	all := make([]Tool, 0, len(defaults)+len(optional))
	all = append(all, defaults...)
	all = append(all, optional...)
	return Check(all)
}

// CheckRoot returns ErrNotRoot unless the effective user is root.
func CheckRoot() error {
	if os.Geteuid() != 0 {
		return ErrNotRoot
	}
	return nil
}

// CheckPanelDir verifies that dir holds a panel installation.
func CheckPanelDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("panel directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("panel directory %s is not a directory", dir)
	}

	artisan := config.ArtisanPath(dir)
	if _, err := os.Stat(artisan); err != nil {
		return fmt.Errorf("panel directory %s has no artisan script: %w", dir, err)
	}
	return nil
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(path string) string {
	for _, flag := range []string{"--version", "-v"} {
		// #nosec G204 - path comes from LookPath on a trusted Tool definition
		output, err := exec.Command(path, flag).Output()
		if err == nil {
			// Return first line of output, trimmed
			line, _, _ := strings.Cut(string(output), "\n")
			return strings.TrimSpace(line)
		}
	}

	return ""
}

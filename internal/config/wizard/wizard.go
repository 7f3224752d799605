package wizard

import (
	"context"
	"strconv"
	"strings"

	"github.com/oneclickvirt/pterodactyl/internal/config"
)

// NodeAnswers holds the raw text entered for each node setting.
type NodeAnswers struct {
	Name               string
	Memory             string
	MemoryOverallocate string
	Disk               string
	DiskOverallocate   string
}

// ParseNodeAnswers turns answers into a NodeSpec. Empty answers take the
// value from defaults. If any number fails to parse, all four numeric
// settings revert to defaults and fellBack is true. FQDN is left as in
// defaults.
func ParseNodeAnswers(a NodeAnswers, defaults config.NodeSpec) (spec config.NodeSpec, fellBack bool) {
	spec = defaults
	if name := strings.TrimSpace(a.Name); name != "" {
		spec.Name = name
	}

	fields := []struct {
		raw string
		dst *int
	}{
		{a.Memory, &spec.MemoryMB},
		{a.MemoryOverallocate, &spec.MemoryOverallocate},
		{a.Disk, &spec.DiskMB},
		{a.DiskOverallocate, &spec.DiskOverallocate},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			spec.MemoryMB = defaults.MemoryMB
			spec.MemoryOverallocate = defaults.MemoryOverallocate
			spec.DiskMB = defaults.DiskMB
			spec.DiskOverallocate = defaults.DiskOverallocate
			return spec, true
		}
		*f.dst = n
	}
	return spec, false
}

// ParseNodeID returns the ID entered at the confirmation prompt, or
// detected when the answer is empty or not a positive number.
func ParseNodeID(answer string, detected int) (id int, valid bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return detected, true
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 {
		return detected, false
	}
	return n, true
}

// RunNodeWizard prompts for the node settings, offering defaults.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunNodeWizard(ctx context.Context, defaults config.NodeSpec) (spec config.NodeSpec, fellBack bool, err error) {
	var answers NodeAnswers
	if err := runNodeGroup(ctx, defaults, &answers); err != nil {
		return config.NodeSpec{}, false, err
	}
	spec, fellBack = ParseNodeAnswers(answers, defaults)
	return spec, fellBack, nil
}

// ConfirmNodeID asks the operator to confirm or replace the detected node ID.
func ConfirmNodeID(ctx context.Context, detected int) (int, error) {
	answer, err := runConfirmNodeID(ctx, detected)
	if err != nil {
		return 0, err
	}
	id, _ := ParseNodeID(answer, detected)
	return id, nil
}

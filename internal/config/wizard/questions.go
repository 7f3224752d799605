package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/oneclickvirt/pterodactyl/internal/config"
)

// runNodeGroup prompts for the node name, quotas and overallocation.
func runNodeGroup(ctx context.Context, defaults config.NodeSpec, answers *NodeAnswers) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Node Name").
				Placeholder(defaults.Name).
				Value(&answers.Name),
			huh.NewInput().
				Title("Memory (MB)").
				Placeholder(strconv.Itoa(defaults.MemoryMB)).
				Value(&answers.Memory),
			huh.NewInput().
				Title("Memory Overallocation (%)").
				Description("-1 disables the check").
				Placeholder(strconv.Itoa(defaults.MemoryOverallocate)).
				Value(&answers.MemoryOverallocate),
			huh.NewInput().
				Title("Disk (MB)").
				Placeholder(strconv.Itoa(defaults.DiskMB)).
				Value(&answers.Disk),
			huh.NewInput().
				Title("Disk Overallocation (%)").
				Description("-1 disables the check").
				Placeholder(strconv.Itoa(defaults.DiskOverallocate)).
				Value(&answers.DiskOverallocate),
		).Title("Node").
			Description("Leave a field empty to use the value shown"),
	).RunWithContext(ctx)
}

// runConfirmNodeID prompts for the node ID to issue the token for.
func runConfirmNodeID(ctx context.Context, detected int) (string, error) {
	var answer string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Node ID").
				Description(fmt.Sprintf("Detected %d. Leave empty to use it.", detected)).
				Placeholder(strconv.Itoa(detected)).
				Value(&answer).
				Validate(validateNodeID),
		),
	).RunWithContext(ctx)
	return answer, err
}

func validateNodeID(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 1 {
		return errNumberInvalid
	}
	return nil
}

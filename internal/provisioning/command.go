package provisioning

import "fmt"

// WingsConfigDir is where the agent expects to be configured from.
const WingsConfigDir = "/etc/pterodactyl"

// FormatRegistrationCommand returns the command that registers the agent
// on the new node.
func FormatRegistrationCommand(panelURL, token string, nodeID int) string {
	return fmt.Sprintf("cd %s && sudo wings configure --panel-url %s --token %s --node %d",
		WingsConfigDir, panelURL, token, nodeID)
}

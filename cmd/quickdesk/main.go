package main

import (
	"os"

	"github.com/ShardulMane20/Quick-Desk/cmd/quickdesk/commands"
)

// Version information, set during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// @title                       QuickDesk API
// @version                     1.0
// @description                 Help-desk ticketing API: tickets, replies, live lists and dashboards.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	commands.SetVersionInfo(version, commit, date)

	// Errors are printed by the commands with color formatting.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

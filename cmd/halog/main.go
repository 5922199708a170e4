// HALog - LINAC Water System Log Parser
//
// HALog detects the format of LINAC water-cooling logs and turns them into
// time-indexed min/max/avg tables, falling back to sample data when a file
// cannot be parsed.
package main

import (
	"os"

	"github.com/gobioeng/halog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

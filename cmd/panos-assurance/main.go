package main

import (
	"github.com/allrob23/xsoar-panos-upgrade-automation/cmd/panos-assurance/cli"
)

func main() {
	cli.InitAndExecute()
}

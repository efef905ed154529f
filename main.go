// Package main is the entry point for the grundrisse operator console.
package main

import (
	"github.com/grundrisse/grundrisse/cmd"
	"github.com/grundrisse/grundrisse/config"
	"github.com/grundrisse/grundrisse/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

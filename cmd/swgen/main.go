// swgen - switch fleet configuration generator
//
// swgen renders the Cisco IOS configuration of a fleet of access switches
// from a few topology parameters and optionally pushes it over SSH or telnet.
//
//	swgen generate --switches 3 --start-vlan 11 --access-ports 20 --trunk-ports 4
//	swgen apply -c swgen.yaml            # sandbox: shows what would be sent
//	swgen apply -c swgen.yaml --write    # pushes to every switch
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

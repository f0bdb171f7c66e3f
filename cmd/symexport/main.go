// symexport converts authoring meshes into the runtime's SYMBRES format.
package main

import (
	"os"

	"github.com/Faultbox/symexport/cmd/symexport/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

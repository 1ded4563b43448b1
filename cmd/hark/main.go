// hark is a deterministic natural-language command interpreter.
// Single binary, zero config — utterance in, structured command out.
package main

import (
	"os"

	"github.com/corey/hark/cmd/hark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

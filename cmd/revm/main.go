// revm compiles a regular expression to bytecode and runs it on every
// engine.
//
//	usage: revm <regexp> <string>...
//	       revm prog <regexp>
//	       revm check <case-file>
package main

import (
	"os"

	"github.com/coregx/revm/cmd/revm/command"
)

func main() {
	os.Exit(command.Execute(os.Args[1:], os.Stdout, os.Stderr))
}

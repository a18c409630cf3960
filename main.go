// The main package for the sitemap-generator executable.
package main

import (
	"github.com/amaan-bhati/sitemap-generator/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}

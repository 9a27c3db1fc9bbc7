// Package main is the entry point for the askdb CLI.
// It turns natural-language questions into SQL, charts and atomic checks
// through the query backend.
package main

import (
	"askdb/cli/cmd"
)

func main() {
	cmd.Execute()
}

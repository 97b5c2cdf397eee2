// Command scitree fits binary decision trees on CSV files.
package main

import "github.com/YuminosukeSato/scitree/cmd/scitree/cmd"

func main() {
	cmd.Execute()
}

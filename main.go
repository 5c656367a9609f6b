package main

import "github.com/xvierd/prodvana-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "embed-sync/cmd"

func main() {
	cmd.Execute()
}

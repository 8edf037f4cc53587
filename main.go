package main

import "scpod/cmd"

func main() {
	cmd.Execute()
}

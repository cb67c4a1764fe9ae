package main

import "librarium/cmd/cli/command"

func main() {
	command.Execute()
}

package main

import "vulnscript/cmd/vulnscript/commands"

func main() {
	commands.Execute()
}

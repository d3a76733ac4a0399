package main

import "cubetimer/cmd/cubetimer/commands"

func main() {
	commands.Execute()
}

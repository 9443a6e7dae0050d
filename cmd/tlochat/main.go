package main

import "github.com/dmarques/tlochat/internal/commands"

func main() {
	commands.Execute()
}

package main

import "github.com/glucodiario/diario/cmd/diario/command"

func main() {
	command.Execute()
}

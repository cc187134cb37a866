package main

import "github.com/Skotchmaster/pedidos_api/cmd/pedidos/commands"

func main() {
	commands.Execute()
}

// Command mapctl runs maintenance tasks against the MapMyMajor database.
package main

import "github.com/Vihaan004/Map-My-Major-sub000/cmd/mapctl/commands"

func main() {
	commands.Execute()
}

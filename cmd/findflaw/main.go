package main

import "github.com/philipparndt/findflaw/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/leoschwarz/mbtestgen/cmd"

func main() {
	cmd.Execute()
}

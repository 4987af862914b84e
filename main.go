package main

import "github.com/momentumhq/momentum/cmd"

func main() {
	cmd.Execute()
}

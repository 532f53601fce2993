package main

import "github.com/nfrund/contractgen/cmd/contractgen/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/brazucaphish/console/cmd/brazuca/cmd"

func main() {
	cmd.Execute()
}

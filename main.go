package main

import "github.com/gaurav-prasanna/unorm/cmd"

func main() {
	cmd.Execute()
}

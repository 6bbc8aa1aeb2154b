package main

import "github.com/pomoday/pomoday/cmd"

func main() {
	cmd.Execute()
}

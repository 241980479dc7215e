package main

import "github.com/Azure/subscription-copilot/cmd"

func main() {
	cmd.Execute()
}

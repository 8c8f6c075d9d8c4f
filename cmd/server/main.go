package main

import "github.com/unity-hands/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}

package main

import "voter-registry/cmd"

func main() {
	cmd.Execute()
}

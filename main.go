package main

import "nested-models/cmd"

func main() {
	cmd.Execute()
}

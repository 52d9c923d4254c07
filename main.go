package main

import "fleetwash/cmd"

func main() {
	cmd.Execute()
}

package main

import "duelbot/cmd"

func main() {
	cmd.Execute()
}

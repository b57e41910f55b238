package main

import "josephlewis.net/minsh/cmd"

func main() {
	cmd.Execute()
}

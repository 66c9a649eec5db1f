package main

import "github.com/theopenlane/ecolens/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/conectapg/portal/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/nextlevelbuilder/anonbot/cmd"

func main() {
	cmd.Execute()
}

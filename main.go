package main

import "github.com/ninelives/traintracks/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/davidcollom/denvr-catalog/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/LegacyCodeHQ/importviz/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/sam1-khan/Simple-Invoice-Generator/cmd"

func main() {
	cmd.Execute()
}

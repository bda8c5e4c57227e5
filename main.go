package main

import "github.com/mplanchard/speedy/cmd"

func main() {
	cmd.Execute()
}

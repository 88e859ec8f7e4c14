package main

import "github.com/baayen-heinz/vortexje-go/cmd"

func main() {
	cmd.Execute()
}

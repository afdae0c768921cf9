package main

import "github.com/naka-gawa/gitview/cmd"

func main() {
	cmd.Execute()
}

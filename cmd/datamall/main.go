package main

import "github.com/datamall-go/datamall/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/blacktop/go-termart/cmd/termart/cmd"

func main() {
	cmd.Execute()
}

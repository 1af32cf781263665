package main

import "github.com/frahmantamala/salesops/cmd"

func main() {
	cmd.Execute()
}

package main

import "github/chapool/safe-migrate/cmd"

func main() {
	cmd.Execute()
}

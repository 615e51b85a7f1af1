package main

import "migration-advisor/src/handler/cli"

func main() {
	cli.Run()
}

package main

import (
	"os"

	"github.com/yosbany/nrd-portal/cli"
)

func main() {
	os.Exit(cli.RunUpdateVersion(os.Args[1:], os.Stdout, os.Stderr))
}

package main

import (
	"os"

	"github.com/yosbany/nrd-portal/cli"
)

func main() {
	os.Exit(cli.RunGenerateIcons(os.Args[1:], os.Stdout, os.Stderr))
}

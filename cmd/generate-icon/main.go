package main

import (
	"os"

	"github.com/yosbany/nrd-portal/cli"
)

func main() {
	os.Exit(cli.RunGenerateIcon(os.Args[1:], os.Stdout, os.Stderr))
}

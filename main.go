package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/yosbany/nrd-portal/cli"
)

type command struct {
	run     func(args []string, stdout, stderr io.Writer) int
	summary string
}

var commands = map[string]command{
	"icon":    {cli.RunGenerateIcon, "用文本生成 icon-192.png 与 icon-512.png"},
	"icons":   {cli.RunGenerateIcons, "把清单中的 SVG 批量转换为 PNG"},
	"version": {cli.RunUpdateVersion, "为 HTML 中的资源写入缓存版本参数"},
}

var order = []string{"icon", "icons", "version"}

func main() {
	log.SetFlags(0)
	log.SetPrefix("nrd-tools: ")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 根据子命令分发到对应的工具。
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return 1
		}
		return 0
	}
	cmd, ok := commands[args[0]]
	if !ok {
		log.Printf("未知子命令 %q", args[0])
		usage(stderr)
		return 1
	}
	return cmd.run(args[1:], stdout, stderr)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "用法: nrd-tools <子命令> [选项]")
	for _, name := range order {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}
}

package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer 输出带状态符号的用户提示。
type Printer struct {
	out     io.Writer
	success *color.Color
	info    *color.Color
	warn    *color.Color
	fail    *color.Color
}

// New 创建写入 out 的 Printer；noColor 为 true 时不输出 ANSI 颜色。
func New(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.success, p.info, p.warn, p.fail} {
			c.DisableColor()
		}
	}
	return p
}

// Success 输出 "✓ ..."。
func (p *Printer) Success(format string, args ...any) { p.line(p.success, "✓", format, args...) }

// Info 输出 "ℹ ..."。
func (p *Printer) Info(format string, args ...any) { p.line(p.info, "ℹ", format, args...) }

// Warn 输出 "⚠ ..."。
func (p *Printer) Warn(format string, args ...any) { p.line(p.warn, "⚠", format, args...) }

// Error 输出 "✗ ..."。
func (p *Printer) Error(format string, args ...any) { p.line(p.fail, "✗", format, args...) }

// Plain 输出不带符号的一行。
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) line(c *color.Color, symbol, format string, args ...any) {
	c.Fprintf(p.out, "%s %s\n", symbol, fmt.Sprintf(format, args...))
}

package manifest

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

//go:embed default.manifest
var defaultManifest string

var (
	manifestLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `;`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	manifestParser = participle.MustBuild[Manifest](
		participle.Lexer(manifestLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Manifest is the root node of a build manifest.
type Manifest struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Project  string         `parser:"Newline* 'project' @Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is either an icons block or a stamp block.
type Section struct {
	Icons *IconsSection `parser:"  @@"`
	Stamp *StampSection `parser:"| @@"`
}

// IconsSection lists SVG sources to convert.
type IconsSection struct {
	Entries []*IconEntry `parser:"'icons' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// IconEntry converts one SVG to a square PNG.
type IconEntry struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Source StringLiteral  `parser:"'convert' @String"`
	Size   int            `parser:"'size' @Number"`
	Target *StringLiteral `parser:"( 'to' @String )?"`
}

// TargetPath returns the PNG path; defaults to the source with a .png extension.
func (e *IconEntry) TargetPath() string {
	if e.Target != nil && *e.Target != "" {
		return string(*e.Target)
	}
	src := string(e.Source)
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".png"
}

// StampSection names an HTML file and the assets whose references get a version.
type StampSection struct {
	Pos    lexer.Position `parser:"" json:"-"`
	File   StringLiteral  `parser:"'stamp' @String"`
	Assets []*AssetEntry  `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// AssetPaths returns the asset URLs as plain strings.
func (s *StampSection) AssetPaths() []string {
	out := make([]string, 0, len(s.Assets))
	for _, a := range s.Assets {
		out = append(out, string(a.Path))
	}
	return out
}

// AssetEntry is a single `asset "..."` line.
type AssetEntry struct {
	Path StringLiteral `parser:"'asset' @String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Icons returns every icon entry in declaration order.
func (m *Manifest) Icons() []*IconEntry {
	var out []*IconEntry
	for _, s := range m.Sections {
		if s.Icons != nil {
			out = append(out, s.Icons.Entries...)
		}
	}
	return out
}

// Stamps returns every stamp block in declaration order.
func (m *Manifest) Stamps() []*StampSection {
	var out []*StampSection
	for _, s := range m.Sections {
		if s.Stamp != nil {
			out = append(out, s.Stamp)
		}
	}
	return out
}

// Validate checks values the grammar cannot express.
func (m *Manifest) Validate() error {
	for _, e := range m.Icons() {
		if strings.TrimSpace(string(e.Source)) == "" {
			return fmt.Errorf("%s: convert 的源文件不能为空", e.Pos)
		}
		if e.Size <= 0 {
			return fmt.Errorf("%s: %s 的尺寸必须大于 0，实际为 %d", e.Pos, e.Source, e.Size)
		}
	}
	for _, s := range m.Stamps() {
		if strings.TrimSpace(string(s.File)) == "" {
			return fmt.Errorf("%s: stamp 的文件不能为空", s.Pos)
		}
		for _, a := range s.Assets {
			if strings.TrimSpace(string(a.Path)) == "" {
				return fmt.Errorf("%s: %s 中存在空的 asset", s.Pos, s.File)
			}
		}
	}
	return nil
}

// Parse parses and validates a manifest read from r; name is used in error positions.
func Parse(name string, r io.Reader) (*Manifest, error) {
	m, err := manifestParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("解析清单失败: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseString is Parse for in-memory input.
func ParseString(name, input string) (*Manifest, error) {
	return Parse(name, strings.NewReader(input))
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开清单 %s: %w", path, err)
	}
	defer file.Close()
	return Parse(path, file)
}

// Default returns the built-in manifest for the portal: two icons and index.html.
func Default() *Manifest {
	m, err := ParseString("default.manifest", defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("内置清单无效: %v", err))
	}
	return m
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Manifest, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

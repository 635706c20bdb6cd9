package gen

import (
	"fmt"
	"go/token"
	"go/types"
	"path"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"
)

// CodeGenerator produces the Go source for a resolved config.
type CodeGenerator struct {
	// modulePath is the Go import path of the funmeta module, whose
	// pkg/multi package the generated builders call.
	modulePath string
}

// NewCodeGenerator creates a new code generator.
func NewCodeGenerator(modulePath string) *CodeGenerator {
	return &CodeGenerator{modulePath: modulePath}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the file name from the config (e.g. "funmeta_gen.go").
	Filename string

	// Content is the formatted Go source code.
	Content string
}

// fileContext accumulates what one generated file needs.
type fileContext struct {
	cfg        *Config
	modulePath string

	// Imports maps import path → local alias.
	Imports map[string]string
}

// qualifier names packages by import alias, recording each import it hands
// out. The generated package itself is left unqualified.
func (ctx *fileContext) qualifier(pkg *types.Package) string {
	if pkg.Path() == ctx.cfg.Path {
		return ""
	}
	if alias, ok := ctx.Imports[pkg.Path()]; ok {
		return alias
	}
	alias := UniqueAlias(pkg.Path(), ctx.aliasTaken)
	ctx.Imports[pkg.Path()] = alias
	return alias
}

func (ctx *fileContext) aliasTaken(alias string) bool {
	for _, a := range ctx.Imports {
		if a == alias {
			return true
		}
	}
	return false
}

func (ctx *fileContext) typeString(t types.Type) string {
	return types.TypeString(t, ctx.qualifier)
}

type arrayDecl struct {
	Name     string
	Type     string
	Elem     string
	SwapFunc string
	SwapBody string
	FillFunc string
	FillBody string
	Strategy string
}

type nestedDecl struct {
	Name      string
	Type      string
	Elem      string
	MakeFunc  string
	Params    string
	Shape     string
	BuildExpr string
}

// Generate renders the source file for cfg from its inspection result.
func (cg *CodeGenerator) Generate(cfg *Config, result *InspectResult) (GeneratedFile, error) {
	ctx := &fileContext{
		cfg:        cfg,
		modulePath: cg.modulePath,
		Imports:    make(map[string]string),
	}

	var arrays []arrayDecl
	for _, a := range result.Arrays {
		arrays = append(arrays, ctx.arrayDecl(a))
	}

	var nested []nestedDecl
	for _, n := range result.Nested {
		decl, err := ctx.nestedDecl(n)
		if err != nil {
			return GeneratedFile{}, fmt.Errorf("generating %s: %w", n.Spec.Name, err)
		}
		nested = append(nested, decl)
	}

	content, err := ctx.render(arrays, nested)
	if err != nil {
		return GeneratedFile{}, err
	}

	formatted, err := imports.Process(cfg.Output, []byte(content), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("formatting generated code: %w\n%s", err, content)
	}

	return GeneratedFile{Filename: cfg.Output, Content: string(formatted)}, nil
}

func (ctx *fileContext) arrayDecl(a *ResolvedArray) arrayDecl {
	plan := a.Swap
	depth := len(a.Spec.Dims) + len(plan.Dims)

	var swapBody strings.Builder
	nestLoops(&swapBody, "x", depth, func(index, indent string) {
		xs, ys := "x"+index, "y"+index
		switch plan.Strategy {
		case StrategySelf:
			fmt.Fprintf(&swapBody, "%s%s.Swap(&%s)\n", indent, xs, ys)
		case StrategyScoped:
			fn := "Swap"
			if pkg := definingPackage(plan.Leaf); pkg != nil {
				if q := ctx.qualifier(pkg); q != "" {
					fn = q + ".Swap"
				}
			}
			fmt.Fprintf(&swapBody, "%s%s(&%s, &%s)\n", indent, fn, xs, ys)
		default:
			fmt.Fprintf(&swapBody, "%s%s, %s = %s, %s\n", indent, xs, ys, ys, xs)
		}
	})

	var fillBody strings.Builder
	nestLoops(&fillBody, "out", len(a.Spec.Dims), func(index, indent string) {
		fmt.Fprintf(&fillBody, "%sout%s = v\n", indent, index)
	})

	return arrayDecl{
		Name:     a.Spec.Name,
		Type:     ctx.typeString(a.Type),
		Elem:     ctx.typeString(a.Elem),
		SwapFunc: funcName("Swap", a.Spec.Name),
		SwapBody: swapBody.String(),
		FillFunc: funcName("Fill", a.Spec.Name),
		FillBody: fillBody.String(),
		Strategy: plan.Strategy.String(),
	}
}

func (ctx *fileContext) nestedDecl(n *ResolvedNested) (nestedDecl, error) {
	var familyFunc string
	switch n.Spec.Family {
	case FamilySlice:
		familyFunc = "Slice"
	case FamilyVec:
		familyFunc = "VecOf"
	default:
		return nestedDecl{}, fmt.Errorf("unknown family %q", n.Spec.Family)
	}

	multi := ctx.qualifier(types.NewPackage(ctx.modulePath+"/pkg/multi", "multi"))
	if multi != "" {
		multi += "."
	}

	depth := n.Spec.Depth
	params := make([]string, depth)
	shape := make([]string, depth)
	for i := range params {
		params[i] = fmt.Sprintf("d%d", i)
		shape[i] = params[i]
	}

	// Nest(family[level 1], d0, Nest(family[level 2], d1, ... Leaf(v)))()
	var expr strings.Builder
	for i := range depth {
		fmt.Fprintf(&expr, "%sNest(%s%s[%s], d%d,\n", multi, multi, familyFunc, ctx.typeString(n.Levels[i+1]), i)
		expr.WriteString(strings.Repeat("\t", i+2))
	}
	fmt.Fprintf(&expr, "%sLeaf(v)%s()", multi, strings.Repeat(")", depth))

	return nestedDecl{
		Name:      n.Spec.Name,
		Type:      ctx.typeString(n.Type()),
		Elem:      ctx.typeString(n.Elem()),
		MakeFunc:  funcName("Make", n.Spec.Name),
		Params:    strings.Join(params, ", ") + " int",
		Shape:     strings.Join(shape, " x "),
		BuildExpr: expr.String(),
	}, nil
}

// nestLoops writes n nested range loops over root, indented one tab, and
// calls leaf with the full index suffix ("[i0][i1]") and the innermost
// indentation.
func nestLoops(buf *strings.Builder, root string, n int, leaf func(index, indent string)) {
	indent := "\t"
	index := ""
	for i := range n {
		v := fmt.Sprintf("i%d", i)
		fmt.Fprintf(buf, "%sfor %s := range %s%s {\n", indent, v, root, index)
		index += "[" + v + "]"
		indent += "\t"
	}
	leaf(index, indent)
	for range n {
		indent = indent[:len(indent)-1]
		fmt.Fprintf(buf, "%s}\n", indent)
	}
}

// funcName joins a verb and a declared name, keeping the name's visibility:
// ("Swap", "Grid") → "SwapGrid", ("Swap", "grid") → "swapGrid".
func funcName(verb, name string) string {
	if name == "" {
		return verb
	}
	if unicode.IsUpper([]rune(name)[0]) {
		return verb + name
	}
	return lcFirst(verb) + ucFirst(name)
}

func ucFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lcFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

type importEntry struct {
	Path  string
	Alias string
}

func (ctx *fileContext) sortedImports() []importEntry {
	var entries []importEntry
	for path, alias := range ctx.Imports {
		entries = append(entries, importEntry{Path: path, Alias: alias})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func (ctx *fileContext) render(arrays []arrayDecl, nested []nestedDecl) (string, error) {
	tmpl, err := template.New("file").Parse(fileTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	data := struct {
		Package string
		Imports []importEntry
		Arrays  []arrayDecl
		Nested  []nestedDecl
	}{
		Package: ctx.cfg.Package,
		Imports: ctx.sortedImports(),
		Arrays:  arrays,
		Nested:  nested,
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// generatedIdents are declared inside generated functions and cannot be
// import names.
var generatedIdents = map[string]bool{"x": true, "y": true, "v": true, "out": true}

// ImportAlias returns the identifier a generated file imports pkgPath under:
// the last path element (the one before a /vN suffix), stripped to letters,
// digits and underscores. Keywords and generated identifiers are prefixed
// with "pkg", as are names starting with a digit.
func ImportAlias(pkgPath string) string {
	base := path.Base(pkgPath)
	if isMajorVersion(base) && strings.Contains(pkgPath, "/") {
		base = path.Base(path.Dir(pkgPath))
	}

	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	alias := b.String()

	switch {
	case alias == "":
		return "pkg"
	case unicode.IsDigit([]rune(alias)[0]):
		return "pkg" + alias
	case token.IsKeyword(alias) || generatedIdents[alias]:
		return "pkg" + ucFirst(alias)
	}
	return alias
}

// UniqueAlias is ImportAlias numbered from 2 until taken reports it free.
func UniqueAlias(pkgPath string, taken func(alias string) bool) string {
	alias := ImportAlias(pkgPath)
	for n := 2; taken(alias); n++ {
		alias = fmt.Sprintf("%s%d", ImportAlias(pkgPath), n)
	}
	return alias
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

const fileTemplate = `// Code generated by funmeta. DO NOT EDIT.

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{.Alias}} "{{.Path}}"
{{- end}}
)
{{end}}
{{- range .Arrays}}
// {{.Name}} is {{.Type}}.
type {{.Name}} = {{.Type}}

// {{.SwapFunc}} exchanges x and y element by element ({{.Strategy}}).
func {{.SwapFunc}}(x, y *{{.Name}}) {
{{.SwapBody}}}

// {{.FillFunc}} returns a {{.Name}} with every element set to v.
func {{.FillFunc}}(v {{.Elem}}) {{.Name}} {
	var out {{.Name}}
{{.FillBody}}	return out
}
{{end}}
{{- range .Nested}}
// {{.Name}} is {{.Type}}.
type {{.Name}} = {{.Type}}

// {{.MakeFunc}} returns a {{.Shape}} {{.Name}} with every element set to v.
func {{.MakeFunc}}(v {{.Elem}}, {{.Params}}) {{.Name}} {
	return {{.BuildExpr}}
}
{{end}}`

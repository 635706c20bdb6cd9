package gen

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

// boardModule is a throwaway module: a package with an unexported element
// type that swaps itself, and a subpackage with a Swap function.
var boardModule = map[string]string{
	"go.mod": "module example.com/board\n\ngo 1.22\n",

	"board.go": `package board

type cell struct {
	v     int
	swaps int
}

func (c *cell) Swap(o *cell) {
	c.v, o.v = o.v, c.v
	c.swaps++
	o.swaps++
}
`,

	"pieces/pieces.go": `package pieces

type Piece struct {
	Name  string
	Swaps int
}

func Swap(x, y *Piece) {
	*x, *y = *y, *x
	x.Swaps++
	y.Swaps++
}
`,

	"funmeta.yaml": `package: board
path: example.com/board
arrays:
  - name: Grid
    elem: cell
    pkg: example.com/board
    dims: [2, 2]
  - name: Pieces
    elem: Piece
    pkg: example.com/board/pieces
    dims: [3]
  - name: Nums
    elem: int
    dims: [2]
`,
}

// boardReport uses every generated function; it can only be added once
// the generated file exists.
var boardReport = map[string]string{
	"report.go": `package board

import (
	"fmt"

	"example.com/board/pieces"
)

func Report() string {
	x, y := FillGrid(cell{v: 1}), FillGrid(cell{v: 2})
	SwapGrid(&x, &y)

	p := Pieces{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	q := FillPieces(pieces.Piece{Name: "z"})
	SwapPieces(&p, &q)

	m, n := Nums{1, 2}, Nums{3, 4}
	SwapNums(&m, &n)

	return fmt.Sprintf("%d%d%d%d %d|%s%s%s %s %d|%v %v",
		x[0][0].v, x[0][1].v, x[1][0].v, x[1][1].v, y[1][1].swaps,
		p[0].Name, p[1].Name, p[2].Name, q[2].Name, p[0].Swaps,
		m, n)
}
`,

	"cmd/report/main.go": `package main

import (
	"fmt"

	"example.com/board"
)

func main() {
	fmt.Println(board.Report())
}
`,
}

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func requireGo(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not available")
	}
	return goBin
}

func TestRun_Module(t *testing.T) {
	goBin := requireGo(t)
	dir := t.TempDir()
	writeTree(t, dir, boardModule)
	g := &Generator{Logger: zaptest.NewLogger(t)}
	config := filepath.Join(dir, "funmeta.yaml")

	res, err := g.Run(config)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Written {
		t.Error("first run did not write the file")
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{
		"package board",
		`pieces "example.com/board/pieces"`,
		"type Grid = [2][2]cell",
		"x[i0][i1].Swap(&y[i0][i1])",
		"type Pieces = [3]pieces.Piece",
		"pieces.Swap(&x[i0], &y[i0])",
		"type Nums = [2]int",
		"x[i0], y[i0] = y[i0], x[i0]",
	} {
		if !strings.Contains(string(data), w) {
			t.Errorf("generated code missing %q\n%s", w, data)
		}
	}

	// The package now compiles with the generated file and code using it.
	writeTree(t, dir, boardReport)
	res, err = g.Run(config)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res.Written {
		t.Error("second run rewrote an up-to-date file")
	}

	cmd := exec.Command(goBin, "run", "./cmd/report")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go run: %v\n%s", err, out)
	}
	// Cells swap through their method, pieces through pieces.Swap, ints by
	// assignment; each leaf is exchanged exactly once.
	if got, want := strings.TrimSpace(string(out)), "2222 1|zzz c 1|[3 4] [1 2]"; got != want {
		t.Errorf("report = %q; want %q", got, want)
	}
}

func TestRun_ModulePackageError(t *testing.T) {
	requireGo(t)
	dir := t.TempDir()
	writeTree(t, dir, boardModule)
	writeTree(t, dir, map[string]string{
		"broken/broken.go": "package broken\n\nvar X int = \"no\"\n",
		"funmeta.yaml":     "package: board\narrays:\n  - name: Xs\n    elem: int\n    pkg: example.com/board/broken\n    dims: [1]\n",
	})

	_, err := (&Generator{}).Run(filepath.Join(dir, "funmeta.yaml"))
	if err == nil || !strings.Contains(err.Error(), "example.com/board/broken") {
		t.Errorf("err = %v; want package error naming example.com/board/broken", err)
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultOutput)); !os.IsNotExist(err) {
		t.Errorf("output written despite error (stat err = %v)", err)
	}
}

package catalog

import (
	"testing"

	"github.com/misyltoad/ShaderCompile2/config"
)

func benchCatalog(b *testing.B) *Catalog {
	b.Helper()
	cat, err := Build([]config.Entry{{
		Name: "bench",
		Shader: config.Shader{
			Version: "ps_3_0",
			Files:   []string{"bench.fxc"},
			Dynamic: []config.Define{
				{Name: "D0", MinVal: 0, MaxVal: 9},
				{Name: "D1", MinVal: 0, MaxVal: 9},
				{Name: "D2", MinVal: 0, MaxVal: 9},
				{Name: "D3", MinVal: 0, MaxVal: 9},
			},
			Skip: "$D0 == $D1 && $D2 > 3",
		},
	}})
	if err != nil {
		b.Fatal(err)
	}
	return cat
}

// BenchmarkGetCombo benchmarks bookmark-based random access.
func BenchmarkGetCombo(b *testing.B) {
	cat := benchCatalog(b)
	total := cat.Total()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cur := cat.GetCombo(uint64(i) % total)
		if cur == nil {
			b.Fatal("GetCombo returned nil")
		}
	}
}

// BenchmarkNextWalk benchmarks the filtered iteration hot path over the
// full command axis.
func BenchmarkNextWalk(b *testing.B) {
	cat := benchCatalog(b)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var cur *Cursor
		n := 0
		for cmd := uint64(0); ; {
			cur, cmd = cat.Next(cmd, cur, cat.Total())
			if cur == nil {
				break
			}
			n++
		}
		if n == 0 {
			b.Fatal("walk yielded no combos")
		}
	}
}

// BenchmarkAppendCommand benchmarks payload serialization with a reused
// buffer.
func BenchmarkAppendCommand(b *testing.B) {
	cat := benchCatalog(b)
	cur := cat.GetCombo(1234)
	buf := make([]byte, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		buf = cur.AppendCommand(buf[:0])
	}
}

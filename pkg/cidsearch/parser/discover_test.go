package parser

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestDiscoverWorkbooks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xlsx", "b.xls", "c.XLSX", "notes.txt", "d.xlsx.bak"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := DiscoverWorkbooks(dir)
	sort.Strings(got)

	want := []string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xls")}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %q, got %q", want[i], got[i])
		}
	}
}

func TestDiscoverWorkbooksMissingDirectory(t *testing.T) {
	if got := DiscoverWorkbooks(filepath.Join(t.TempDir(), "missing")); len(got) != 0 {
		t.Errorf("Expected no workbooks, got %v", got)
	}
}

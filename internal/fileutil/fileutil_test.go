package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// writeTree creates files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// readTree returns every regular file under root keyed by slash path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	got := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		got[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return got
}

// ---------------------------------------------------------------------------
// TestCopyDir - Static directory mirroring
// ---------------------------------------------------------------------------

func TestCopyDir(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "static")
	dst := filepath.Join(t.TempDir(), "public")

	files := map[string]string{
		"index.css":           "body{}",
		"images/tolkien.png":  "png",
		"images/deep/x/y.txt": "nested",
	}
	writeTree(t, src, files)
	writeTree(t, dst, map[string]string{"stale.html": "old", "images/old.png": "old"})
	if err := os.MkdirAll(filepath.Join(src, "empty"), 0o750); err != nil {
		t.Fatal(err)
	}

	if err := fileutil.CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	if diff := cmp.Diff(files, readTree(t, dst)); diff != "" {
		t.Errorf("destination tree mismatch (-want +got):\n%s", diff)
	}
	if info, err := os.Stat(filepath.Join(dst, "empty")); err != nil || !info.IsDir() {
		t.Errorf("empty directory not copied: %v", err)
	}
	if diff := cmp.Diff(files, readTree(t, src)); diff != "" {
		t.Errorf("source tree modified (-want +got):\n%s", diff)
	}
}

func TestCopyDir_CreatesMissingDestination(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a"})
	dst := filepath.Join(t.TempDir(), "does", "not", "exist")

	if err := fileutil.CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}
	if !fileutil.FileExists(filepath.Join(dst, "a.txt")) {
		t.Error("a.txt not copied")
	}
}

func TestCopyDir_Errors(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	src := filepath.Join(base, "static")
	writeTree(t, src, map[string]string{"a.txt": "a"})
	file := filepath.Join(base, "file.txt")
	writeTree(t, base, map[string]string{"file.txt": "x"})

	tests := []struct {
		name    string
		src     string
		dst     string
		wantErr error
	}{
		{name: "missing source", src: filepath.Join(base, "missing"), dst: filepath.Join(base, "out"), wantErr: fileutil.ErrSourceNotFound},
		{name: "source is a file", src: file, dst: filepath.Join(base, "out"), wantErr: fileutil.ErrSourceNotFound},
		{name: "same directory", src: src, dst: src, wantErr: fileutil.ErrOverlappingDirs},
		{name: "destination inside source", src: src, dst: filepath.Join(src, "public"), wantErr: fileutil.ErrOverlappingDirs},
		{name: "source inside destination", src: src, dst: base, wantErr: fileutil.ErrOverlappingDirs},
	}

	// Sequential so the check below runs after every refused copy.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fileutil.CopyDir(tt.src, tt.dst)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CopyDir() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// The refused copies must not have wiped anything.
	if !fileutil.FileExists(filepath.Join(src, "a.txt")) {
		t.Error("source file removed by refused copy")
	}
}

func TestCopyDir_SiblingWithSharedPrefix(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	src := filepath.Join(base, "static")
	dst := filepath.Join(base, "static-public")
	writeTree(t, src, map[string]string{"a.txt": "a"})

	if err := fileutil.CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir() error = %v, want nil for sibling directories", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Page writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "blog", "glorfindel", "index.html")

	if err := fileutil.WriteFileAtomic(path, []byte("<p>first</p>")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("<p>second</p>")); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "<p>second</p>" {
		t.Errorf("content = %q, want %q", data, "<p>second</p>")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"index.html"}, names); diff != "" {
		t.Errorf("leftover temp files (-want +got):\n%s", diff)
	}
}

func TestWriteFileAtomic_ParentIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"blog": "not a dir"})

	err := fileutil.WriteFileAtomic(filepath.Join(dir, "blog", "index.html"), []byte("x"))
	if err == nil {
		t.Fatal("WriteFileAtomic() expected error when parent is a file")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"page.md": "# x", "sub/keep": ""})

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file", path: filepath.Join(dir, "page.md"), want: true},
		{name: "directory", path: filepath.Join(dir, "sub"), want: false},
		{name: "nonexistent", path: filepath.Join(dir, "nope"), want: false},
		{name: "empty path", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCheckOverlap - Nested directory detection
// ---------------------------------------------------------------------------

func TestCheckOverlap(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	content := filepath.Join(base, "content")

	tests := []struct {
		name    string
		src     string
		dst     string
		wantErr bool
	}{
		{name: "siblings", src: content, dst: filepath.Join(base, "public"), wantErr: false},
		{name: "shared prefix", src: content, dst: filepath.Join(base, "content-public"), wantErr: false},
		{name: "same directory", src: content, dst: content, wantErr: true},
		{name: "destination inside source", src: content, dst: filepath.Join(content, "public"), wantErr: true},
		{name: "source inside destination", src: content, dst: base, wantErr: true},
		{name: "unclean paths", src: filepath.Join(base, "x", "..", "content"), dst: content + string(filepath.Separator), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.CheckOverlap(tt.src, tt.dst)
			if tt.wantErr != errors.Is(err, fileutil.ErrOverlappingDirs) {
				t.Errorf("CheckOverlap(%q, %q) error = %v, wantErr %v", tt.src, tt.dst, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Path versus asset name detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "default", want: false},
		{input: "site.css", want: false},
		{input: "", want: false},
		{input: "./site.html", want: true},
		{input: "/absolute/site.css", want: true},
		{input: `C:\site\page.html`, want: true},
		{input: "assets/page.html", want: true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanUserPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hasError bool
	}{
		{
			name:     "simple path",
			input:    "file.txt",
			expected: "file.txt",
			hasError: false,
		},
		{
			name:     "relative path",
			input:    "./subdir/file.txt",
			expected: "subdir/file.txt",
			hasError: false,
		},
		{
			name:     "path with traversal",
			input:    "../../../etc/passwd",
			expected: "",
			hasError: true,
		},
		{
			name:     "hidden traversal",
			input:    "a/../../b",
			expected: "",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanUserPath(tt.input)
			if tt.hasError {
				if err == nil {
					t.Fatalf("expected error for %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("CleanUserPath(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWriteFileContained(t *testing.T) {
	base := t.TempDir()

	if err := WriteFileContained(base, "sites/abc/util.mjs", []byte("export {}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "sites", "abc", "util.mjs"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(data) != "export {}" {
		t.Errorf("unexpected content: %q", string(data))
	}
}

func TestWriteFileContained_RejectsEscape(t *testing.T) {
	base := t.TempDir()

	if err := WriteFileContained(base, "../escape.txt", []byte("nope")); err == nil {
		t.Fatal("expected error for escaping path, got none")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(base), "escape.txt")); err == nil {
		t.Error("escaping file was written")
	}
}

func TestWriteFileContained_OverwritesExisting(t *testing.T) {
	base := t.TempDir()

	if err := WriteFileContained(base, "a.txt", []byte("one")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteFileContained(base, "a.txt", []byte("two")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(base, "a.txt"))
	if string(data) != "two" {
		t.Errorf("expected overwrite, got %q", string(data))
	}
}

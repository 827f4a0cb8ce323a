package header

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/licenseward/licenseward/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestScanLeadingComment(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantText string
		insertAt int
	}{
		{
			name:     "plain comment block",
			content:  "# Copyright 2025 Nati\n\nimport os\n",
			wantText: "# Copyright 2025 Nati\n",
			insertAt: 0,
		},
		{
			name:     "hashbang skipped",
			content:  "#!/usr/bin/env python3\n# Copyright 2025 Nati\n\nimport os\n",
			wantText: "# Copyright 2025 Nati\n",
			insertAt: len("#!/usr/bin/env python3\n"),
		},
		{
			name:     "blank lines before block",
			content:  "\n\n# hello\ncode\n",
			wantText: "# hello\n",
			insertAt: 2,
		},
		{
			name:     "no comment block",
			content:  "import os\n",
			wantText: "",
			insertAt: 0,
		},
		{
			name:     "block stops at blank line",
			content:  "# one\n# two\n\n# later comment\n",
			wantText: "# one\n# two\n",
			insertAt: 0,
		},
		{
			name:     "empty file",
			content:  "",
			wantText: "",
			insertAt: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := scanLeadingComment(tt.content)
			if block.text != tt.wantText {
				t.Errorf("text = %q, want %q", block.text, tt.wantText)
			}
			if block.insertAt != tt.insertAt {
				t.Errorf("insertAt = %d, want %d", block.insertAt, tt.insertAt)
			}
		})
	}
}

func TestProcessPrependsMissingHeader(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Template: "Copyright {year} {licensee}", Licensee: "Nati", Year: 2025}
	path := writeFile(t, dir, "a.py", "import os\n")

	results, err := Process(context.Background(), []string{path}, spec, Options{})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if results[0].Status != StatusMissing || !results[0].Rewritten {
		t.Fatalf("result = %+v, want missing and rewritten", results[0])
	}

	want := "# Copyright 2025 Nati\n\nimport os\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestProcessPreservesHashbang(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Template: "Copyright {year} {licensee}", Licensee: "Nati", Year: 2025}
	path := writeFile(t, dir, "a.py", "#!/usr/bin/env python3\nimport os\n")

	if _, err := Process(context.Background(), []string{path}, spec, Options{}); err != nil {
		t.Fatal(err)
	}

	want := "#!/usr/bin/env python3\n# Copyright 2025 Nati\n\nimport os\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestProcessReplacesOutdatedHeader(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Template: "Copyright {year} {licensee}", Licensee: "Nati", Year: 2025}
	path := writeFile(t, dir, "a.py", "# Copyright 2019 Nati\n\nimport os\n")

	results, err := Process(context.Background(), []string{path}, spec, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != StatusOutdated || !results[0].Rewritten {
		t.Fatalf("result = %+v, want outdated and rewritten", results[0])
	}

	want := "# Copyright 2025 Nati\n\nimport os\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestProcessIdempotent(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Template: "Copyright {year} {licensee}", Licensee: "Nati", Year: 2025}
	path := writeFile(t, dir, "a.py", "import os\n")

	for i := 0; i < 2; i++ {
		if _, err := Process(context.Background(), []string{path}, spec, Options{}); err != nil {
			t.Fatal(err)
		}
	}
	first := readFile(t, path)

	results, err := Process(context.Background(), []string{path}, spec, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != StatusMatched || results[0].Rewritten {
		t.Fatalf("result = %+v, want matched and untouched", results[0])
	}
	if got := readFile(t, path); got != first {
		t.Errorf("file changed on repeated run: %q vs %q", got, first)
	}
}

func TestProcessDryRun(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Template: "Copyright {year} {licensee}", Licensee: "Nati", Year: 2025}
	original := "import os\n"
	path := writeFile(t, dir, "a.py", original)

	results, err := Process(context.Background(), []string{path}, spec, Options{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != StatusMissing || results[0].Rewritten {
		t.Fatalf("result = %+v, want missing and not rewritten", results[0])
	}
	if got := readFile(t, path); got != original {
		t.Errorf("dry run modified file: %q", got)
	}
}

func TestProcessMissingFile(t *testing.T) {
	spec := Spec{Template: "Copyright {year}", Year: 2025}

	results, err := Process(context.Background(), []string{"/nonexistent/a.py"}, spec, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !errs.Is(results[0].Err, errs.ErrCodeFileAccess) {
		t.Errorf("err = %v, want code %s", results[0].Err, errs.ErrCodeFileAccess)
	}
	if results[0].Matched() {
		t.Error("Matched() = true for failed file")
	}
}

func TestProcessInvalidTemplate(t *testing.T) {
	_, err := Process(context.Background(), nil, Spec{}, Options{})
	if !errs.Is(err, errs.ErrCodeInvalidTemplate) {
		t.Errorf("Process() error = %v, want code %s", err, errs.ErrCodeInvalidTemplate)
	}
}

func TestProcessManyFilesPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{Template: "Copyright {year} {licensee}", Licensee: "Nati", Year: 2025}

	files := []string{
		writeFile(t, dir, "ok.py", "# Copyright 2025 Nati\n\nimport os\n"),
		writeFile(t, dir, "stale.py", "# Copyright 2019 Nati\n\nimport os\n"),
		writeFile(t, dir, "bare.py", "import os\n"),
	}

	results, err := Process(context.Background(), files, spec, Options{Workers: 4})
	if err != nil {
		t.Fatal(err)
	}

	wantStatus := []Status{StatusMatched, StatusOutdated, StatusMissing}
	for i, want := range wantStatus {
		if results[i].Path != files[i] {
			t.Errorf("results[%d].Path = %s, want %s", i, results[i].Path, files[i])
		}
		if results[i].Status != want {
			t.Errorf("results[%d].Status = %s, want %s", i, results[i].Status, want)
		}
	}

	if got := NeedsFix(results); got != 2 {
		t.Errorf("NeedsFix() = %d, want 2", got)
	}
}

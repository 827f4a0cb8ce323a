package header

import (
	"context"
	"os"
	"strings"

	errs "github.com/licenseward/licenseward/pkg/errors"
	"github.com/licenseward/licenseward/pkg/pool"
)

// FileResult is the outcome of verifying (and possibly rewriting) one file.
// Results are per-run; nothing is persisted.
type FileResult struct {
	Path      string
	Status    Status
	Rewritten bool
	Err       error
}

// Matched reports whether the file needed no fix.
func (r FileResult) Matched() bool {
	return r.Err == nil && r.Status == StatusMatched
}

// Options configures a Process run.
type Options struct {
	// DryRun reports mismatches without touching any file.
	DryRun bool

	// Workers bounds concurrent file processing. Clamped to [1, 32].
	Workers int
}

// Process verifies every file against the spec, rewriting mismatches unless
// opts.DryRun is set. Results are index-aligned with files. A file that
// cannot be read or written gets its error recorded and does not disturb
// the rest of the batch.
func Process(ctx context.Context, files []string, spec Spec, opts Options) ([]FileResult, error) {
	rendered, err := spec.Render()
	if err != nil {
		return nil, err
	}
	spec = spec.WithDefaults()

	tasks := make([]pool.Task[FileResult], len(files))
	for i, path := range files {
		tasks[i] = func(context.Context) (FileResult, error) {
			return processFile(path, spec, rendered, opts.DryRun), nil
		}
	}

	results := pool.Run(ctx, tasks, opts.Workers)

	out := make([]FileResult, len(results))
	for i, res := range results {
		out[i] = res.Value
		if res.Err != nil {
			// Pool-level failure (cancellation, panic); attach it to
			// the file's result like any other per-file error.
			out[i] = FileResult{Path: files[i], Status: StatusMissing, Err: res.Err}
		}
	}
	return out, nil
}

// NeedsFix counts files that were not matched at invocation time: the
// format command's exit code.
func NeedsFix(results []FileResult) int {
	count := 0
	for _, r := range results {
		if !r.Matched() {
			count++
		}
	}
	return count
}

func processFile(path string, spec Spec, rendered string, dryRun bool) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Status: StatusMissing,
			Err: errs.Wrap(errs.ErrCodeFileAccess, err, "cannot read %s", path)}
	}
	content := string(data)

	block := scanLeadingComment(content)
	status := spec.match(block.text)
	result := FileResult{Path: path, Status: status}
	if status == StatusMatched || dryRun {
		return result
	}

	var updated string
	switch status {
	case StatusMissing:
		// Prepend after any hashbang and leading blank lines; the rest
		// of the file is preserved byte-for-byte.
		updated = content[:block.insertAt] + rendered + content[block.insertAt:]
	case StatusOutdated:
		updated = content[:block.start] + rendered + trimOneBlank(content[block.end:])
	}

	if err := os.WriteFile(path, []byte(updated), permsOf(path)); err != nil {
		result.Err = errs.Wrap(errs.ErrCodeFileAccess, err, "cannot rewrite %s", path)
		return result
	}
	result.Rewritten = true
	return result
}

// permsOf preserves the file's existing mode on rewrite.
func permsOf(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

// trimOneBlank drops a single leading blank line, so replacing an outdated
// block (whose rendering ends in a blank separator) stays idempotent.
func trimOneBlank(s string) string {
	return strings.TrimPrefix(s, "\n")
}

// commentBlock is the span of a file's leading comment block.
type commentBlock struct {
	text     string // The block's lines, or "" when absent
	start    int    // Byte offset of the block's first line
	end      int    // Byte offset just past the block's last line
	insertAt int    // Offset for prepending: after hashbang and leading blanks
}

// scanLeadingComment finds the contiguous comment block at the top of a
// file. A hashbang line and blank lines before the block are skipped; the
// block ends at the first non-comment line.
func scanLeadingComment(content string) commentBlock {
	offset := 0
	block := commentBlock{}
	inBlock := false

	for offset < len(content) {
		lineEnd := strings.IndexByte(content[offset:], '\n')
		next := len(content)
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}
		line := content[offset:next]
		trimmed := strings.TrimRight(line, "\n")

		switch {
		case !inBlock && offset == 0 && strings.HasPrefix(trimmed, hashbangPrefix):
			block.insertAt = next
		case !inBlock && strings.TrimSpace(trimmed) == "":
			block.insertAt = next
		case strings.HasPrefix(trimmed, commentPrefix):
			if !inBlock {
				inBlock = true
				block.start = offset
			}
			block.text += line
			block.end = next
		default:
			return block
		}

		offset = next
	}
	return block
}

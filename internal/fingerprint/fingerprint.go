// Package fingerprint computes SHA-256 digests of generated tables so runs
// with the same seed and parameters can be checked for identical output.
package fingerprint

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dbsmedya/gotreasury/internal/table"
)

// TableHash is the digest of one table.
type TableHash struct {
	Table string
	Rows  int64
	Hash  string
}

// Table computes the digest of t. The schema line and every rendered row
// are hashed in order, so a change to column names, types, row order or
// any value changes the digest.
func Table(t *table.Table) TableHash {
	hasher := sha256.New()

	cols := t.Schema.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name + ":" + string(c.Type)
	}
	hasher.Write([]byte(strings.Join(header, "\x00")))
	hasher.Write([]byte("\n"))

	names := t.Schema.Names()
	for i := range t.Rows {
		hasher.Write([]byte(serializeRow(names, t.FormatRow(i))))
		hasher.Write([]byte("\n"))
	}

	return TableHash{
		Table: t.Name,
		Rows:  int64(t.Len()),
		Hash:  hex.EncodeToString(hasher.Sum(nil)),
	}
}

// Tables computes digests for each table, in input order.
func Tables(tables []*table.Table) []TableHash {
	out := make([]TableHash, len(tables))
	for i, t := range tables {
		out[i] = Table(t)
	}
	return out
}

// serializeRow renders a row as col1=val1 NUL col2=val2 ...
func serializeRow(columns, values []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + "=" + values[i]
	}
	return strings.Join(parts, "\x00")
}

// Mismatch describes one table whose digest differs.
type Mismatch struct {
	Table    string
	Expected string
	Actual   string
	Reason   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s", m.Table, m.Reason)
}

// Compare reports every table that is missing from either side or whose
// row count or digest differs. The result is sorted by table name.
func Compare(expected, actual []TableHash) []Mismatch {
	want := make(map[string]TableHash, len(expected))
	for _, h := range expected {
		want[h.Table] = h
	}
	got := make(map[string]TableHash, len(actual))
	for _, h := range actual {
		got[h.Table] = h
	}

	var mismatches []Mismatch
	for name, w := range want {
		g, ok := got[name]
		switch {
		case !ok:
			mismatches = append(mismatches, Mismatch{Table: name, Expected: w.Hash, Reason: "missing from actual output"})
		case w.Rows != g.Rows:
			mismatches = append(mismatches, Mismatch{
				Table: name, Expected: w.Hash, Actual: g.Hash,
				Reason: fmt.Sprintf("row count mismatch: expected=%d, actual=%d", w.Rows, g.Rows),
			})
		case w.Hash != g.Hash:
			mismatches = append(mismatches, Mismatch{
				Table: name, Expected: w.Hash, Actual: g.Hash,
				Reason: fmt.Sprintf("SHA256 hash mismatch: expected=%s, actual=%s", w.Hash, g.Hash),
			})
		}
	}
	for name, g := range got {
		if _, ok := want[name]; !ok {
			mismatches = append(mismatches, Mismatch{Table: name, Actual: g.Hash, Reason: "not expected"})
		}
	}

	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].Table < mismatches[j].Table })
	return mismatches
}

// WriteManifest writes one "hash  rows  table" line per digest, the
// format read back by ReadManifest.
func WriteManifest(w io.Writer, hashes []TableHash) error {
	for _, h := range hashes {
		if _, err := fmt.Fprintf(w, "%s  %d  %s\n", h.Hash, h.Rows, h.Table); err != nil {
			return err
		}
	}
	return nil
}

// ReadManifest parses a manifest written by WriteManifest. Blank lines and
// lines starting with # are skipped.
func ReadManifest(r io.Reader) ([]TableHash, error) {
	var hashes []TableHash
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("manifest line %d: expected 3 fields, got %d", lineNo, len(fields))
		}
		if _, err := hex.DecodeString(fields[0]); err != nil || len(fields[0]) != sha256.Size*2 {
			return nil, fmt.Errorf("manifest line %d: invalid SHA256 digest %q", lineNo, fields[0])
		}
		rows, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: invalid row count: %w", lineNo, err)
		}
		hashes = append(hashes, TableHash{Hash: fields[0], Rows: rows, Table: fields[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return hashes, nil
}

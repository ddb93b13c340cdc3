package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Delimiter separates fields within a row. Fields must never contain it,
// because MergeSave matches owners by splitting on the first occurrence.
const Delimiter = ","

// RowParser converts the fields of a single data row into a record.
// Returning an error causes the row to be skipped, not the whole load.
type RowParser[T any] func(fields []string) (T, error)

// RowsFunc produces the current serialized rows for one owner id. An owner
// with no records must return an empty slice, which removes its rows from
// the file on the next MergeSave.
type RowsFunc func(ownerId string) ([]string, error)

// Load reads all records from a header-prefixed delimited file. A missing or
// empty file yields an empty result. Malformed rows are logged and skipped so
// a single bad line never aborts the load.
func Load[T any](path string, parse RowParser[T], logger *zap.SugaredLogger) []T {
	file, err := os.Open(path)
	if err != nil {
		logger.Infow("data file not found, starting with an empty dataset", "path", path)
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		logger.Infow("data file is empty", "path", path)
		return nil
	}

	var records []T
	line := 1
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		record, err := parse(strings.Split(raw, Delimiter))
		if err != nil {
			logger.Warnw("skipping malformed row", "path", path, "line", line, "error", err)
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		logger.Warnw("stopped reading data file", "path", path, "error", err)
	}

	return records
}

// MergeSave rewrites path so that rows belonging to the given owners reflect
// their current records, while every other row passes through byte for byte,
// including rows this process cannot parse. Owners whose serializer fails are
// omitted from this save and reported in the returned error; the remaining
// owners are still written. Saving zero owners leaves the file untouched.
func MergeSave(path, header string, ownerIds []string, rows RowsFunc, logger *zap.SugaredLogger) error {
	if len(ownerIds) == 0 {
		return nil
	}

	modified := mapset.NewThreadUnsafeSet(ownerIds...)
	lines := []string{header}

	if file, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(file)
		if scanner.Scan() {
			lines[0] = scanner.Text()
		}
		for scanner.Scan() {
			raw := scanner.Text()
			if strings.TrimSpace(raw) == "" {
				continue
			}
			ownerId, _, _ := strings.Cut(raw, Delimiter)
			if !modified.Contains(ownerId) {
				lines = append(lines, raw)
			}
		}
		err = scanner.Err()
		file.Close()
		if err != nil {
			return fmt.Errorf("error reading existing file %s: %w", path, err)
		}
	}

	var failed error
	for _, ownerId := range ownerIds {
		serialized, err := rows(ownerId)
		if err != nil {
			logger.Errorw("omitting owner from save", "path", path, "ownerId", ownerId, "error", err)
			failed = multierr.Append(failed, fmt.Errorf("owner %s: %w", ownerId, err))
			continue
		}
		lines = append(lines, serialized...)
	}

	var content strings.Builder
	for _, line := range lines {
		content.WriteString(line)
		content.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	return failed
}

// Row joins fields into a single data row, rejecting any field that contains
// the delimiter, since such a field would corrupt the owner-id split on the
// next merge.
func Row(fields ...string) (string, error) {
	for _, field := range fields {
		if strings.Contains(field, Delimiter) {
			return "", fmt.Errorf("field %q contains the %q delimiter", field, Delimiter)
		}
	}
	return strings.Join(fields, Delimiter), nil
}

package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

	// Migrations also run against sqlite for local work and tests, so
	// postgres-only syntax is rejected.
	nonPortableSQL = []struct {
		re   *regexp.Regexp
		hint string
	}{
		{regexp.MustCompile(`(?i)\bgen_random_uuid\s*\(`), "generate ids in the application"},
		{regexp.MustCompile(`(?i)\bcreate\s+extension\b`), "extensions are postgres-only"},
		{regexp.MustCompile(`::\s*[a-z]`), "use CAST(... AS ...) instead of ::"},
		{regexp.MustCompile(`(?i)\bnow\s*\(\s*\)`), "use CURRENT_TIMESTAMP"},
		{regexp.MustCompile(`(?i)\bserial\b`), "use explicit keys"},
		{regexp.MustCompile(`(?i)\btimestamptz\b`), "sqlite scans it as text; use TIMESTAMP with UTC values"},
	}
)

// ValidateDir checks migration filenames, duplicate versions, goose headers,
// balanced statement blocks and portable SQL.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("read file %q: %w", full, err)
		}
		if err := validateSQL(name, string(b)); err != nil {
			return err
		}
	}

	return nil
}

func validateSQL(name, txt string) error {
	if !strings.Contains(txt, "-- +goose Up") {
		return fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
	}
	if !strings.Contains(txt, "-- +goose Down") {
		return fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
	}
	begins := strings.Count(txt, "-- +goose StatementBegin")
	ends := strings.Count(txt, "-- +goose StatementEnd")
	if begins != ends {
		return fmt.Errorf("migration %q has %d StatementBegin and %d StatementEnd", name, begins, ends)
	}

	for _, line := range strings.Split(txt, "\n") {
		code := strings.TrimSpace(line)
		if strings.HasPrefix(code, "--") {
			continue
		}
		for _, rule := range nonPortableSQL {
			if rule.re.MatchString(code) {
				return fmt.Errorf("migration %q is not portable: %q (%s)", name, code, rule.hint)
			}
		}
	}
	return nil
}

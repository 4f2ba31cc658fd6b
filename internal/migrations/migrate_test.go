package migrations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLatestVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000001_voucher_redemptions.up.sql",
		"000001_voucher_redemptions.down.sql",
		"000012_later.up.sql",
		"notes.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "000099_dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := LatestVersion(dir); got != 12 {
		t.Errorf("LatestVersion = %d, want 12", got)
	}
}

func TestLatestVersionMissingDir(t *testing.T) {
	if got := LatestVersion(filepath.Join(t.TempDir(), "nope")); got != 0 {
		t.Errorf("LatestVersion of a missing dir = %d, want 0", got)
	}
}

func TestShippedMigrationsPresent(t *testing.T) {
	if got := LatestVersion("../../migrations"); got < 1 {
		t.Errorf("no migrations found in ./migrations")
	}
}

func TestRunMigrationsNeedsURL(t *testing.T) {
	if err := RunMigrations("", "migrations"); err == nil {
		t.Errorf("empty database URL accepted")
	}
}

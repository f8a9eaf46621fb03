package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeHashFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestComputeBlake3Hash(t *testing.T) {
	dir := t.TempDir()
	path := writeHashFixture(t, dir, "config.yaml", "store:\n  capacity: 10\n")

	first, err := ComputeBlake3Hash(path)
	if err != nil {
		t.Fatalf("ComputeBlake3Hash() failed: %v", err)
	}
	if len(first) != 64 || first != strings.ToLower(first) {
		t.Fatalf("hash %q is not lowercase 64-char hex", first)
	}

	again, err := ComputeBlake3Hash(path)
	if err != nil {
		t.Fatalf("ComputeBlake3Hash() failed on rehash: %v", err)
	}
	if first != again {
		t.Errorf("hash not deterministic: %q then %q", first, again)
	}

	other := writeHashFixture(t, dir, "other.yaml", "store:\n  capacity: 11\n")
	otherHash, err := ComputeBlake3Hash(other)
	if err != nil {
		t.Fatalf("ComputeBlake3Hash() failed: %v", err)
	}
	if otherHash == first {
		t.Error("different content produced the same hash")
	}

	if _, err := ComputeBlake3Hash(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("ComputeBlake3Hash() on a missing file succeeded, want error")
	}
}

func TestVerifyFileHash(t *testing.T) {
	dir := t.TempDir()
	path := writeHashFixture(t, dir, "config.yaml", "store:\n  capacity: 10\n")

	hash, err := ComputeBlake3Hash(path)
	if err != nil {
		t.Fatalf("ComputeBlake3Hash() failed: %v", err)
	}

	if err := VerifyFileHash(path, hash); err != nil {
		t.Errorf("VerifyFileHash() with correct hash failed: %v", err)
	}

	err = VerifyFileHash(path, "deadbeef")
	if err == nil || !strings.Contains(err.Error(), "hash mismatch") {
		t.Errorf("VerifyFileHash() with wrong hash = %v, want hash mismatch", err)
	}
}

func TestGenerateChecksumsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeHashFixture(t, dir, "config.yaml", "store:\n  capacity: 10\n")

	report, err := GenerateChecksumsWithReport(dir, []string{"config.yaml", "missing.yaml"}, false)
	if err != nil {
		t.Fatalf("GenerateChecksumsWithReport() failed: %v", err)
	}
	if !report.Written {
		t.Error("report.Written = false, want true")
	}
	if len(report.Files) != 2 {
		t.Fatalf("len(report.Files) = %d, want 2", len(report.Files))
	}
	if !report.Files[0].Exists || report.Files[0].Hash == "" {
		t.Error("config.yaml should be reported with a computed hash")
	}
	if report.Files[1].Exists || report.Files[1].Hash != "" {
		t.Error("missing.yaml should be reported as absent without a hash")
	}

	manifest, err := LoadChecksums(dir)
	if err != nil {
		t.Fatalf("LoadChecksums() failed: %v", err)
	}
	if manifest.Version != 1 {
		t.Errorf("manifest.Version = %d, want 1", manifest.Version)
	}
	if got := manifest.Hashes["config.yaml"]; got != report.Files[0].Hash {
		t.Errorf("manifest hash %q does not match report hash %q", got, report.Files[0].Hash)
	}
	if _, ok := manifest.Hashes["missing.yaml"]; ok {
		t.Error("absent file should not get a manifest entry")
	}
}

func TestGenerateChecksumsDryRun(t *testing.T) {
	dir := t.TempDir()
	writeHashFixture(t, dir, "config.yaml", "store:\n  capacity: 10\n")

	report, err := GenerateChecksumsWithReport(dir, []string{"config.yaml"}, true)
	if err != nil {
		t.Fatalf("GenerateChecksumsWithReport() failed: %v", err)
	}
	if report.Written {
		t.Error("report.Written = true, want false in dry-run")
	}
	if report.Files[0].Hash == "" {
		t.Error("dry-run should still compute hashes")
	}
	if _, err := os.Stat(filepath.Join(dir, ".checksums")); !os.IsNotExist(err) {
		t.Fatal(".checksums should not be written in dry-run mode")
	}
}

func TestLoadChecksumsRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	writeHashFixture(t, dir, ".checksums", "version: 9\nhashes: {}\n")

	_, err := LoadChecksums(dir)
	if err == nil || !strings.Contains(err.Error(), "unsupported checksums version") {
		t.Fatalf("LoadChecksums() = %v, want unsupported version error", err)
	}
}

func TestLoadChecksumsMissingManifest(t *testing.T) {
	if _, err := LoadChecksums(t.TempDir()); err == nil {
		t.Fatal("LoadChecksums() without a manifest succeeded, want error")
	}
}

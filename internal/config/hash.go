package config

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// checksumFile is the manifest name written next to the files it covers.
const checksumFile = ".checksums"

// ChecksumManifest is the parsed .checksums file sitting next to the
// configuration it covers.
type ChecksumManifest struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	Hashes      map[string]string `yaml:"hashes"`
}

// HashUpdateFileResult captures checksum generation outcome for one file.
type HashUpdateFileResult struct {
	Filename string
	Path     string
	Exists   bool
	Hash     string
}

// HashUpdateReport captures checksum generation details for a config directory.
type HashUpdateReport struct {
	ConfigDir    string
	ChecksumPath string
	Written      bool
	Files        []HashUpdateFileResult
}

// ComputeBlake3Hash streams a file through BLAKE3 and returns the digest
// as lowercase hex.
func ComputeBlake3Hash(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// VerifyFileHash verifies a file against an expected BLAKE3 hash.
func VerifyFileHash(filePath, expectedHash string) error {
	actualHash, err := ComputeBlake3Hash(filePath)
	if err != nil {
		return fmt.Errorf("failed to compute hash: %w", err)
	}
	if actualHash != expectedHash {
		return fmt.Errorf("hash mismatch for %s: expected %s, got %s",
			filepath.Base(filePath), expectedHash, actualHash)
	}
	return nil
}

// hashEntry hashes one candidate file. Absent files are reported rather
// than failing generation so optional files can be listed unconditionally.
func hashEntry(configDir, filename string) (HashUpdateFileResult, error) {
	entry := HashUpdateFileResult{
		Filename: filename,
		Path:     filepath.Join(configDir, filename),
	}
	if _, err := os.Stat(entry.Path); os.IsNotExist(err) {
		return entry, nil
	}

	hash, err := ComputeBlake3Hash(entry.Path)
	if err != nil {
		return entry, fmt.Errorf("failed to hash %s: %w", filename, err)
	}
	entry.Exists = true
	entry.Hash = hash
	return entry, nil
}

// GenerateChecksums computes BLAKE3 hashes for config files and writes .checksums.
func GenerateChecksums(configDir string, files []string) error {
	_, err := GenerateChecksumsWithReport(configDir, files, false)
	return err
}

// GenerateChecksumsWithReport computes config file hashes and optionally
// writes .checksums. When dryRun is true, it computes hashes and returns
// report details without writing files.
func GenerateChecksumsWithReport(configDir string, files []string, dryRun bool) (*HashUpdateReport, error) {
	report := &HashUpdateReport{
		ConfigDir:    configDir,
		ChecksumPath: filepath.Join(configDir, checksumFile),
		Files:        make([]HashUpdateFileResult, 0, len(files)),
	}

	manifest := ChecksumManifest{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Hashes:      make(map[string]string),
	}
	for _, filename := range files {
		entry, err := hashEntry(configDir, filename)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, entry)
		if entry.Exists {
			manifest.Hashes[filename] = entry.Hash
		}
	}

	if dryRun {
		return report, nil
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checksums: %w", err)
	}
	if err := os.WriteFile(report.ChecksumPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write checksums: %w", err)
	}
	report.Written = true

	return report, nil
}

// LoadChecksums reads the .checksums file from a config directory.
func LoadChecksums(configDir string) (*ChecksumManifest, error) {
	data, err := os.ReadFile(filepath.Join(configDir, checksumFile))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("checksums file not found (run 'hookwell config lock')")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checksums: %w", err)
	}

	var manifest ChecksumManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse checksums: %w", err)
	}
	if manifest.Version != 1 {
		return nil, fmt.Errorf("unsupported checksums version: %d", manifest.Version)
	}
	return &manifest, nil
}

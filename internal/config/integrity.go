package config

import (
	"fmt"
	"path/filepath"
)

// IntegrityResult collects integrity verification findings for config check.
type IntegrityResult struct {
	Passed   bool
	Warnings []string
	Errors   []string
}

// VerifyIntegrity checks a config file against the .checksums manifest in
// its directory. A missing manifest is a warning, not a failure; a manifest
// that does not cover the file, or a mismatching hash, fails the check.
func VerifyIntegrity(configPath string) (*IntegrityResult, error) {
	result := &IntegrityResult{Passed: true}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}
	dir := filepath.Dir(absPath)

	manifest, err := LoadChecksums(dir)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no .checksums manifest found in %s; run 'hookwell config lock' to enable integrity verification", dir))
		return result, nil
	}

	basename := filepath.Base(absPath)
	expectedHash, ok := manifest.Hashes[basename]
	if !ok {
		result.Passed = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("file %s not in .checksums manifest; run 'hookwell config lock'", basename))
		return result, nil
	}

	actualHash, err := ComputeBlake3Hash(absPath)
	if err != nil {
		result.Passed = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to hash %s: %v", basename, err))
		return result, nil
	}

	if actualHash != expectedHash {
		result.Passed = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("hash mismatch for %s (expected %s, got %s)", basename, expectedHash, actualHash))
	}

	return result, nil
}

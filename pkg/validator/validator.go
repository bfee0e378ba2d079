// Package validator checks that Maestro flow files carry the required
// tags and that tag values follow the suite's conventions.
package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileType classifies a flow file by its location in the suite.
type FileType string

const (
	TypeTest        FileType = "test"
	TypeShared      FileType = "shared"
	TypeQualityGate FileType = "quality-gate"
	TypeTestSuite   FileType = "test-suite"
)

// Required tag keys per file type. Shared components, quality gates and
// test suites only need a platform; tests carry the full set.
var requiredTags = map[FileType][]string{
	TypeTest:        {"feature", "test-type", "priority", "platform"},
	TypeShared:      {"platform"},
	TypeQualityGate: {"platform"},
	TypeTestSuite:   {"platform"},
}

// Valid values for value-carrying tag keys.
var validValues = map[string][]string{
	"platform":  {"ios", "android"},
	"test-type": {"happy-path", "negative", "edge-case"},
	"priority":  {"p0", "p1", "p2", "p3"},
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	File    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Result contains the validation result.
type Result struct {
	// Files is the list of flow file paths checked.
	Files []string
	// Errors contains all validation errors found.
	Errors []error
	// Warnings contains non-blocking findings (unknown tag keys or
	// values, single-platform cross-platform files).
	Warnings []error
}

// IsValid returns true if there are no validation errors.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Validator validates flow file tags.
type Validator struct{}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// Validate validates a file or directory tree of .yaml/.yml flow files.
func (v *Validator) Validate(path string) *Result {
	result := &Result{}

	info, err := os.Stat(path)
	if err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			File:    path,
			Message: fmt.Sprintf("cannot access: %v", err),
		})
		return result
	}

	var files []string
	if info.IsDir() {
		files, err = collectFlowFiles(path)
		if err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				File:    path,
				Message: fmt.Sprintf("failed to scan directory: %v", err),
			})
			return result
		}
	} else {
		files = []string{path}
	}

	for _, file := range files {
		v.validateFile(file, result)
	}

	return result
}

// collectFlowFiles finds all .yaml/.yml files in a directory.
func collectFlowFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files, err
}

// validateFile checks the tags of a single flow file.
func (v *Validator) validateFile(filePath string, result *Result) {
	result.Files = append(result.Files, filePath)

	tags, err := ExtractTags(filePath)
	if err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			File:    filePath,
			Message: fmt.Sprintf("parse error: %v", err),
		})
		return
	}

	if len(tags) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			File:    filePath,
			Message: "no tags found",
		})
		return
	}

	tagValues := groupTags(tags)
	fileType := ClassifyFile(filePath)

	for _, required := range requiredTags[fileType] {
		if _, ok := tagValues[required]; !ok {
			result.Errors = append(result.Errors, &ValidationError{
				File:    filePath,
				Message: fmt.Sprintf("missing required tag: %s", required),
			})
		}
	}

	for key, values := range tagValues {
		allowed, known := validValues[key]
		if !known {
			if key != "feature" && len(values) > 0 {
				result.Warnings = append(result.Warnings, &ValidationError{
					File:    filePath,
					Message: fmt.Sprintf("unknown tag key: %s", key),
				})
			}
			continue
		}
		for _, value := range values {
			if !contains(allowed, value) {
				result.Warnings = append(result.Warnings, &ValidationError{
					File:    filePath,
					Message: fmt.Sprintf("unknown %s value %q (valid: %s)", key, value, strings.Join(allowed, ", ")),
				})
			}
		}
	}

	v.checkNaming(filePath, tagValues, result)
}

// checkNaming enforces the platform file-naming convention: a
// -ios.yaml/-android.yaml suffix must come with the matching platform
// tag, and a cross-platform file tagged for a single platform is
// suspicious.
func (v *Validator) checkNaming(filePath string, tagValues map[string][]string, result *Result) {
	platforms, tagged := tagValues["platform"]
	if !tagged {
		return
	}

	switch name := filepath.Base(filePath); {
	case strings.HasSuffix(name, "-ios.yaml"):
		if !contains(platforms, "ios") {
			result.Errors = append(result.Errors, &ValidationError{
				File:    filePath,
				Message: "file name has -ios suffix but no platform:ios tag",
			})
		}
	case strings.HasSuffix(name, "-android.yaml"):
		if !contains(platforms, "android") {
			result.Errors = append(result.Errors, &ValidationError{
				File:    filePath,
				Message: "file name has -android suffix but no platform:android tag",
			})
		}
	default:
		if len(platforms) == 1 {
			result.Warnings = append(result.Warnings, &ValidationError{
				File:    filePath,
				Message: fmt.Sprintf("cross-platform file tagged only platform:%s", platforms[0]),
			})
		}
	}
}

// ClassifyFile determines the file type from its path.
func ClassifyFile(filePath string) FileType {
	switch {
	case strings.Contains(filePath, "shared-components"):
		return TypeShared
	case strings.Contains(filePath, "quality-gates"):
		return TypeQualityGate
	case strings.Contains(filePath, "test-suites"):
		return TypeTestSuite
	default:
		return TypeTest
	}
}

// flowHeader is the flow config document preceding the first "---".
type flowHeader struct {
	Tags []string `yaml:"tags"`
}

// ExtractTags reads the tags list from a flow file's header document
// (the part before the first "---"). Files without a header document,
// or whose header is not a mapping, have no tags.
func ExtractTags(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath) //#nosec G304 -- user-provided flow file
	if err != nil {
		return nil, err
	}

	header, ok := splitHeader(string(data))
	if !ok {
		return nil, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(header), &node); err != nil {
		return nil, err
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 ||
		node.Content[0].Kind != yaml.MappingNode {
		return nil, nil
	}

	var h flowHeader
	if err := node.Decode(&h); err != nil {
		return nil, err
	}
	return h.Tags, nil
}

// splitHeader returns the content before the first document separator.
func splitHeader(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), true
		}
	}
	return "", false
}

// groupTags splits "key:value" tags into a key -> values map.
// Bare tags (no colon) map to an empty value list entry.
func groupTags(tags []string) map[string][]string {
	grouped := make(map[string][]string)
	for _, tag := range tags {
		key, value, found := strings.Cut(tag, ":")
		if found {
			grouped[key] = append(grouped[key], value)
		} else if _, ok := grouped[tag]; !ok {
			grouped[tag] = nil
		}
	}
	return grouped
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

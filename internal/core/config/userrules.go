package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/oops/internal/core/rule"
)

// RuleFilePattern selects user rule files below the rules directory.
const RuleFilePattern = "**/*.{yaml,yml}"

// LoadUserRules reads every rule file below dir in path order. Each file holds
// one rule; a missing name defaults to the file name without extension.
//
// Unreadable or malformed files are reported in the joined error and skipped;
// the declarations of all other files are still returned. A missing dir is
// not an error.
func LoadUserRules(dir string) ([]rule.Declaration, error) {
	if dir == "" {
		return nil, nil
	}
	if info, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rules dir: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("rules dir %s is not a directory", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), RuleFilePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob rules dir: %w", err)
	}
	sort.Strings(matches)

	var (
		decls []rule.Declaration
		errs  []error
	)
	for _, rel := range matches {
		path := filepath.Join(dir, filepath.FromSlash(rel))

		decl, err := readRuleFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		decls = append(decls, decl)
	}

	return decls, errors.Join(errs...)
}

func readRuleFile(path string) (rule.Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rule.Declaration{}, fmt.Errorf("read rule file %q: %w", path, err)
	}

	var decl rule.Declaration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&decl); err != nil && !errors.Is(err, io.EOF) {
		return rule.Declaration{}, fmt.Errorf("parse rule file %q: %w", path, err)
	}

	if decl.Name == "" {
		decl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	decl.Source = path
	return decl, nil
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// mappingFile renames CSV headers before the column filter runs:
//
//	columns:
//	  English: en
//	  Spanish (MX): es-MX
type mappingFile struct {
	Columns map[string]string `yaml:"columns"`
}

func loadMapping(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var file mappingFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	if file.Columns == nil {
		file.Columns = map[string]string{}
	}
	return file.Columns, nil
}

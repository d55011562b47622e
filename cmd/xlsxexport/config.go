package main

import (
	"fmt"
	"os"

	"github.com/JuanDavidPardo/profoundui-framework/xl"
	"gopkg.in/yaml.v3"
)

// columnConfig is one entry of the column format file. Type is a full data
// type name, Code a one-character legacy type code; Type wins when both are set.
type columnConfig struct {
	Type   string `yaml:"type"`
	Code   string `yaml:"code"`
	DecPos string `yaml:"decPos"`
}

type formatFile struct {
	SheetName string         `yaml:"sheetName"`
	Columns   []columnConfig `yaml:"columns"`
}

func loadFormatFile(path string) (*formatFile, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ff formatFile
	if err := yaml.Unmarshal(blob, &ff); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &ff, nil
}

// apply sets the configured formats on the first columns of ws.
func (ff *formatFile) apply(ws *xl.Worksheet) error {
	if ff.SheetName != "" {
		ws.Name = ff.SheetName
	}
	for i, c := range ff.Columns {
		if i >= ws.ColumnCount() {
			return fmt.Errorf("format file has %d columns, input has %d", len(ff.Columns), ws.ColumnCount())
		}
		source := c.Type
		if source == "" {
			source = c.Code
		}
		if err := ws.SetColumnCode(i, source, c.DecPos); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rename

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// mappingFile is the YAML form of a Table:
//
//	packages: {old/pkg: new/pkg}
//	classes: {pkg/Bar: pkg/Baz}
//	fields: [{owner: pkg/Bar, name: x, to: field_1}]
//	methods: [{owner: pkg/Bar, name: run, desc: ()V, to: func_1}]
//	inheritance: {pkg/Sub: [pkg/Bar]}
type mappingFile struct {
	Packages    map[string]string   `yaml:"packages"`
	Classes     map[string]string   `yaml:"classes"`
	Fields      []fieldEntry        `yaml:"fields"`
	Methods     []methodEntry       `yaml:"methods"`
	Inheritance map[string][]string `yaml:"inheritance"`
}

type fieldEntry struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
	To    string `yaml:"to"`
}

type methodEntry struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
	Desc  string `yaml:"desc"`
	To    string `yaml:"to"`
}

// Load reads a YAML mapping document into a new Table. An empty document
// yields the identity renamer.
func Load(r io.Reader) (*Table, error) {
	var mf mappingFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&mf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding mapping: %w", err)
	}

	t := NewTable()
	for oldPkg, newPkg := range mf.Packages {
		t.MapPackage(oldPkg, newPkg)
	}
	for oldName, newName := range mf.Classes {
		t.MapClass(oldName, newName)
	}
	for i, f := range mf.Fields {
		if f.Owner == "" || f.Name == "" || f.To == "" {
			return nil, fmt.Errorf("field mapping %d: owner, name and to are required", i)
		}
		t.MapField(f.Owner, f.Name, f.To)
	}
	for i, m := range mf.Methods {
		if m.Owner == "" || m.Name == "" || m.Desc == "" || m.To == "" {
			return nil, fmt.Errorf("method mapping %d: owner, name, desc and to are required", i)
		}
		if _, err := MapMethodDesc(m.Desc, identityType); err != nil {
			return nil, fmt.Errorf("method mapping %d: %w", i, err)
		}
		t.MapMethod(m.Owner, m.Name, m.Desc, m.To)
	}
	for owner, parents := range mf.Inheritance {
		t.SetParents(owner, parents...)
	}
	return t, nil
}

// LoadFile reads a YAML mapping file into a new Table.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mapping: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func identityType(name string) (string, error) { return name, nil }

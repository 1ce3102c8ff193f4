// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests keep the Go struct JSON tags and the CUE schema field names in
// step, so that a renamed field cannot be silently ignored on load.

// cueFields returns the regular field names of a CUE struct definition.
func cueFields(t *testing.T, val cue.Value) []string {
	t.Helper()

	iter, err := val.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}

	var fields []string
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType().IsHidden() || sel.IsDefinition() {
			continue
		}
		fields = append(fields, strings.TrimSuffix(sel.String(), "?"))
	}
	slices.Sort(fields)
	return fields
}

// jsonFields returns the JSON tag names of a struct type.
func jsonFields(typ reflect.Type) []string {
	var fields []string
	for i := range typ.NumField() {
		f := typ.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields = append(fields, name)
		}
	}
	slices.Sort(fields)
	return fields
}

func TestSchemaSync(t *testing.T) {
	t.Parallel()

	schema := cuecontext.New().CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile schema: %v", schema.Err())
	}

	tests := []struct {
		definition string
		goType     reflect.Type
	}{
		{"#Config", reflect.TypeFor[Config]()},
		{"#HeadConfig", reflect.TypeFor[HeadConfig]()},
		{"#FindConfig", reflect.TypeFor[FindConfig]()},
		{"#LogConfig", reflect.TypeFor[LogConfig]()},
		{"#UIConfig", reflect.TypeFor[UIConfig]()},
		{"#ShellConfig", reflect.TypeFor[ShellConfig]()},
	}

	for _, tt := range tests {
		t.Run(tt.definition, func(t *testing.T) {
			t.Parallel()

			def := schema.LookupPath(cue.ParsePath(tt.definition))
			if def.Err() != nil {
				t.Fatalf("definition %s not found: %v", tt.definition, def.Err())
			}

			cueNames := cueFields(t, def)
			goNames := jsonFields(tt.goType)
			if !slices.Equal(cueNames, goNames) {
				t.Errorf("%s fields = %v, Go %s JSON tags = %v", tt.definition, cueNames, tt.goType.Name(), goNames)
			}
		})
	}
}

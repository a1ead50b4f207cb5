package macro

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// goldenDefine is one #define in a golden case: an object-like macro when
// Params and Variadic are both empty, otherwise function-like.
type goldenDefine struct {
	Name     string   `yaml:"name"`
	Params   []string `yaml:"params,omitempty"`
	Variadic string   `yaml:"variadic,omitempty"`
	Body     string   `yaml:"body"`
}

// goldenCase is one end-to-end expansion scenario from SPEC_FULL.md §8.
type goldenCase struct {
	Name    string         `yaml:"name"`
	Defines []goldenDefine `yaml:"defines"`
	Input   string         `yaml:"input"`
	Want    string         `yaml:"want"`
}

// goldenFile mirrors the teacher's TestFile shape in
// pkg/parser/parser_test.go, one level up from "tests: [...]".
type goldenFile struct {
	Tests []goldenCase `yaml:"tests"`
}

func TestExpandGolden(t *testing.T) {
	data, err := os.ReadFile("testdata/expand.yaml")
	if err != nil {
		t.Fatalf("failed to read expand.yaml: %v", err)
	}

	var file goldenFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("failed to parse expand.yaml: %v", err)
	}

	for _, tc := range file.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			e, _ := newTestEngine()
			for _, d := range tc.Defines {
				if len(d.Params) == 0 && d.Variadic == "" {
					defineObject(e, d.Name, d.Body)
					continue
				}
				defineFunction(e, d.Name, d.Params, d.Variadic, d.Body)
			}

			got := runSpell(e, tc.Input)
			if got != tc.Want {
				t.Errorf("got %q, want %q", got, tc.Want)
			}
		})
	}
}

package bench

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kocubinski/minirel-bench/bench/util"
)

func infoFilename(scriptPath string) string {
	return scriptPath + ".info.json"
}

// GenerateFile writes the script to path. The file is closed on every
// return path; a failed close fails the run.
func GenerateFile(s *Script, path string, opts WriteOptions) (sum *Summary, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating script file: %w", err)
	}
	defer func() {
		cerr := f.Close()
		if cerr != nil && err == nil {
			sum, err = nil, fmt.Errorf("error closing script file %s: %w", path, cerr)
		}
	}()

	sum, err = s.Write(f, opts)
	if err != nil {
		return nil, fmt.Errorf("error generating script %s: %w", path, err)
	}
	sum.OutFile = path
	return sum, nil
}

// WriteInfo stores the run summary next to the script.
func WriteInfo(scriptPath string, sum *Summary) error {
	return util.SaveJSON(infoFilename(scriptPath), sum)
}

// ReadInfo loads the summary written by WriteInfo.
func ReadInfo(scriptPath string) (*Summary, error) {
	var sum Summary
	found, err := util.LoadJSON(infoFilename(scriptPath), &sum)
	if err != nil {
		return nil, fmt.Errorf("error reading info file: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no info file for %s", scriptPath)
	}
	return &sum, nil
}

// LoadParams reads a parameter set from a YAML file. Unknown keys are
// rejected so that a typo cannot silently fall back to a zero value.
func LoadParams(path string) (ScriptParams, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return ScriptParams{}, fmt.Errorf("error reading params file: %w", err)
	}
	return ParseParams(bz)
}

func ParseParams(bz []byte) (ScriptParams, error) {
	var p ScriptParams
	dec := yaml.NewDecoder(bytes.NewReader(bz))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return ScriptParams{}, fmt.Errorf("error parsing params: %w", err)
	}
	return p, nil
}

// MarshalParams renders a parameter set in the format LoadParams reads.
func MarshalParams(p ScriptParams) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("error marshaling params: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package util holds config file and log file helpers for the binary.
package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OpenLog opens path for appending, creating its directory as needed.
// An empty path, or one that cannot be opened, discards.
func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	file = io.Discard
	if path == "" {
		return
	}

	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
		return
	}

	opened, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
		return
	}

	file = opened
	return
}

func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// LoadConfig unmarshals yaml from path into cfg.
func LoadConfig(cfg any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	err = errors.Wrapf(err, "failed to unmarshal %s", path)
	return
}

// SampleConfig writes data to path unless a file is already there, reporting whether it wrote.
// The sample must itself be valid yaml.
func SampleConfig(data []byte, path string, mode os.FileMode) (wrote bool, err error) {

	_, err = os.Stat(path)
	if err == nil {
		return // already have a cfg
	}

	var check map[string]any
	err = yaml.Unmarshal(data, &check)
	if err != nil {
		err = errors.Wrapf(err, "sample config is not yaml")
		return
	}

	err = os.WriteFile(path, data, mode)
	if err != nil {
		err = errors.Wrapf(err, "failed to write to %s", path)
		return
	}

	wrote = true
	return
}

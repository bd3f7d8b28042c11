// Package testing moves package tests to the repository root, so fixtures
// such as configs/rules.yaml resolve the same way they do for the binary.
//
// Usage, in some_test.go:
//
//	import (
//	  _ "liyu1981.xyz/sensor-alarm-service/pkg/testing"
//	)
package testing

import (
	"os"
	"path/filepath"
	"runtime"
)

// Root is the directory holding go.mod.
var Root string

func findRoot(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func init() {
	_, filename, _, _ := runtime.Caller(0)
	root, ok := findRoot(filepath.Dir(filename))
	if !ok {
		panic("go.mod not found above " + filename)
	}
	if err := os.Chdir(root); err != nil {
		panic(err)
	}
	Root = root
}

package test

import (
	"os"
	"path"
	"path/filepath"
	"runtime"

	. "github.com/onsi/gomega"
)

// FileToBytes loads a fixture from test/data.
func FileToBytes(fileName string) ([]byte, error) {
	_, thisFile, _, _ := runtime.Caller(0)

	urlPath, err := filepath.Abs(path.Join(thisFile, "../..", "test", "data", fileName))
	if err != nil {
		return nil, err
	}

	Expect(urlPath).To(BeAnExistingFile())

	return os.ReadFile(urlPath)
}

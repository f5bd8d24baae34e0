package assert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// EqualToFixture compares actual with the text fixture
// testdata/fixtures/<test name>_<name>.txt. Subtest separators in the test
// name become underscores.
// If GEN_FIXTURE=true is set, it writes actual to the fixture file instead.
func (a *Assert) EqualToFixture(name string, actual string) {
	a.T.Helper()

	testName := strings.ReplaceAll(a.T.Name(), "/", "_")
	fixturePath := filepath.Join("testdata", "fixtures", testName+"_"+name+".txt")

	if os.Getenv("GEN_FIXTURE") == "true" {
		err := os.MkdirAll(filepath.Dir(fixturePath), 0755)
		a.NoError(err, "Failed to create fixture directory")
		err = os.WriteFile(fixturePath, []byte(actual), 0644)
		a.NoError(err, "Failed to write fixture file")
		return
	}

	expected, err := os.ReadFile(fixturePath)
	if !a.NoError(err, "Failed to read fixture file") {
		return
	}
	a.Equal(string(expected), actual, "Result does not match fixture %s", fixturePath)
}

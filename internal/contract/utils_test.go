package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"strong", 8.2, StrongValue},
		{"strong boundary", 7.5, StrongValue},
		{"steady", 6.0, SteadyValue},
		{"steady boundary", 5.0, SteadyValue},
		{"fragile", 3.1, FragileValue},
		{"zero", 0, FragileValue},
		{"sentinel", -1, UnknownValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPlainLabel(tt.score))
		})
	}
}

func TestShouldIgnore(t *testing.T) {
	excludes := []string{"vendor/", ".min.js", "node_modules/", "*.pb.go", "generated"}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"vendor prefix", "vendor/lib/thing.go", true},
		{"minified suffix", "assets/app.min.js", true},
		{"glob base match", "api/service.pb.go", true},
		{"substring", "internal/generated/code.go", true},
		{"clean path", "internal/core/agg.go", false},
		{"similar but not prefix", "myvendor/thing.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.path, excludes))
		})
	}
}

func TestWarnLine(t *testing.T) {
	assert.Equal(t, "Warn dropping orphan", warnLine("dropping orphan", nil))
	assert.Equal(t, "Warn scan failed: boom", warnLine("scan failed", errors.New("boom")))
}

func TestIsTestOrConfigFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"test prefix", "pkg/test_app.py", true},
		{"go test suffix", "pkg/handler_test.go", true},
		{"bare test stem", "spec/apptest.py", true},
		{"config dot", "app/config.py", true},
		{"config yaml", "deploy/config.yaml", true},
		{"uppercase test", "pkg/TestRunner.java", true},
		{"regular source", "pkg/handler.go", false},
		{"test in middle", "pkg/contested.go", false},
		{"configurator", "pkg/configurator.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTestOrConfigFile(tt.path))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.go", TruncatePath("short.go", 40))
	assert.Equal(t, "...d/deep/file.go", TruncatePath("some/very/nested/deep/file.go", 17))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

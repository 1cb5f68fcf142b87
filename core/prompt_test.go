package core

import (
	"testing"

	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/assert"
)

func TestRenderPrompt(t *testing.T) {
	catalog := schema.DefaultCatalog()
	content := "package main\n\nfunc main() {}\n"

	prompt := RenderPrompt("cmd/app/main.go", schema.IntuitiveDesign, catalog[schema.IntuitiveDesign], content)

	assert.Contains(t, prompt, "cmd/app/main.go")
	assert.Contains(t, prompt, string(schema.IntuitiveDesign))
	assert.Contains(t, prompt, catalog[schema.IntuitiveDesign])
	assert.Contains(t, prompt, content)
	assert.Contains(t, prompt, "(X/10)")
}

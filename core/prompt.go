// Package core implements the scoring and aggregation pipeline: prompt
// rendering, score parsing, metric extraction, record joining, grouping
// and LOC-weighted aggregation into chart-ready series.
package core

import (
	"fmt"

	"github.com/huangsam/maintscore/schema"
)

// promptTemplate is the review instruction sent to the model. The closing
// sentence pins the reply format that ParseScore expects.
const promptTemplate = `You are a highly respected tech lead conducting a code review of %s. ` +
	`Evaluate the code below on the metric of %s: %s ` +
	`Provide your reasoning in a few short sentences, then conclude with a ` +
	`numerical response in the exact format (X/10) where X is an integer from 0 to 10.

%s`

// RenderPrompt builds the review prompt for one (file, metric) pair.
// The description comes from the metric catalog.
func RenderPrompt(filePath string, metric schema.MetricName, description, content string) string {
	return fmt.Sprintf(promptTemplate, filePath, metric, description, content)
}

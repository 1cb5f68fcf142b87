package schema

import (
	"sort"
	"strings"
)

// Catalog maps each metric to its rubric description. It is fixed
// configuration injected into the pipeline at startup, not mutable state.
type Catalog map[MetricName]string

// Metrics returns the catalog's metric names in a stable order.
func (c Catalog) Metrics() []MetricName {
	names := make([]MetricName, 0, len(c))
	for m := range c {
		names = append(names, m)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Has reports whether the metric is part of the catalog.
func (c Catalog) Has(m MetricName) bool {
	_, ok := c[m]
	return ok
}

// Label turns a metric name into its display form: underscores become
// spaces and each word is title-cased.
func (m MetricName) Label() string {
	words := strings.Split(string(m), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// DefaultCatalog returns the rubric shipped with maintscore.
func DefaultCatalog() Catalog {
	return Catalog{
		IntuitiveDesign: `Variable and Function Naming: Clear names indicating purpose and type.
Comment Quality: Comments clarify the 'why,' not just the 'what.'
Code Organization: Logical structuring is key, extending to function and class organization.
API Usability: Includes intuitiveness, documentation quality, and new developer onboarding.
Code Simplicity: Aim for straightforward code without sacrificing functionality.`,

		FunctionalCohesion: `Single Responsibility Principle: Each function or module should have one, and only one, reason to change.
Separation of Concerns: Different aspects of the program should be separated into distinct sections of the codebase.
Function Length: Aim for shorter functions when possible to make the code more readable and maintainable.
Module Cohesion: Functions within a module should be strongly related in functionality. Avoid "god" modules that do everything.`,

		AdaptiveResilience: `Error-Handling: Employ comprehensive error-handling mechanisms, not just for external calls but also for internal logic that is prone to failure.
Graceful Degradation: Code should still function, albeit at a reduced level, even when some subsystems or services fail.
Resource Management: Explicitly manage all resources, including connections, memory, and thread management.
Adaptability: Ensure the code can adapt to different conditions, including load and data variability.`,

		CodeEfficiency: `Algorithmic Complexity: Use efficient algorithms and data structures. Complexity worse than O(n logn) should be justified.
Resource Utilization: Monitor CPU and memory usage and minimize their footprint.
Concurrency: Make use of parallelism and asynchronous programming where appropriate.
Data Fetching and Caching: Optimize how data is retrieved and stored.`,

		DataSecurity: `Data Validation: Validate all user inputs at both client and server sides.
Data Sanitation: Ensure that all data is sanitized to prevent injection attacks.
Password and API Key Security: Sensitive information should be encrypted, securely stored and securely transmitted.
Data Integrity Checks: Implement controls to ensure data is not tampered with during storage or transmission.
Least Privilege Access: Assign minimal required permissions for database access, file operations, and API calls.
Logging and Monitoring: Keep detailed logs for security-relevant events.`,
	}
}

// AllowedExtensions is the fixed allow-list of source file extensions that
// qualify for scoring, shared by the local scanner and the GitHub fetcher.
var AllowedExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".java": {}, ".c": {}, ".cpp": {}, ".h": {},
	".cs": {}, ".go": {}, ".rb": {}, ".php": {}, ".swift": {}, ".ts": {},
	".kt": {}, ".rs": {}, ".scala": {}, ".m": {}, ".sh": {}, ".sql": {},
	".html": {}, ".css": {},
}

// MinLineCount is the minimum number of lines a file must have before it is
// worth spending a model call on.
const MinLineCount = 50

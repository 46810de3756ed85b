// Package urls provides centralized constants for the external URLs used
// throughout the application.
//
// All links to Notion's dashboard and developer documentation are defined
// here so they can be updated in a single location.
//
// Usage:
//
//	import "github.com/muurk/faultnote/internal/urls"
//
//	fmt.Printf("Create an integration at: %s\n", urls.Integrations)
package urls

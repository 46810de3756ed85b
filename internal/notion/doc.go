// Package notion provides an HTTP client for the two Notion API calls
// faultnote needs: listing the pages an integration can see and appending
// a fault log entry to one of them.
//
// # Entry Layout
//
// An entry is appended as a single toggleable heading_3 block titled
// "📋 Error Log Entry". Its children are three labelled paragraphs and an
// optional code block:
//   - 🔴 Error (red label)
//   - 🟡 Problem (yellow label)
//   - 🟢 Solution (green label)
//   - code block, only when Code is non-blank
//
// Text longer than Notion's 2000 character limit per rich-text object is
// split across consecutive objects.
//
// # Usage Example
//
//	client := notion.NewClient(notion.ClientConfig{Token: os.Getenv("NOTION_API_KEY")})
//
//	pages, err := client.ListPages(ctx)
//	if err != nil {
//	    fmt.Println(notion.ShortMessage(err))
//	    return
//	}
//
//	err = client.AppendEntry(ctx, pages[0].ID, notion.Entry{
//	    Error:    "NullPointerException",
//	    Problem:  "config read before load",
//	    Solution: "load config in main",
//	})
//
// # Error Handling
//
// Every failure is returned as *APIError. Use the predicates to branch:
//
//	if notion.IsAuthError(err) {
//	    // token missing or rejected
//	}
//	for _, line := range notion.TroubleshootingHint(err) {
//	    fmt.Println(line)
//	}
//
// The client never retries. IsRetryable only reports whether doing the same
// thing again has a chance of succeeding.
package notion

package errs

import "strings"

// sanitize flattens multi-line values before they are embedded in error messages,
// keeping log lines intact when arbitrary input ends up in an error.
func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "\r", " ")
}

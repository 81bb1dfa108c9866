package convert

import "strings"

const outputSuffix = "_cntk_text"

// DefaultOutputPath inserts "_cntk_text" before the last '.' of the input
// path, or appends it when there is none.
func DefaultOutputPath(input string) string {
	dot := strings.LastIndex(input, ".")
	if dot == -1 {
		dot = len(input)
	}
	return input[:dot] + outputSuffix + input[dot:]
}

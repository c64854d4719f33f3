package fetcher

import "strings"

// SplitTSV splits tab-separated text into rows of cells. Quote characters have
// no special meaning. The line terminator is taken from the first one in the
// content: "\n" (with an optional preceding "\r") or a bare "\r". A final
// terminator does not start an extra row. Row order is kept and no row is
// skipped.
func SplitTSV(content string) [][]string {
	if content == "" {
		return [][]string{}
	}

	sep := "\n"
	if i := strings.IndexAny(content, "\r\n"); i >= 0 && content[i] == '\r' && !strings.HasPrefix(content[i:], "\r\n") {
		sep = "\r"
	}
	content = strings.TrimSuffix(content, sep)

	lines := strings.Split(content, sep)
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

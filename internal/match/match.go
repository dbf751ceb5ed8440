package match

import "regexp"

// Hit is one textual pattern match located in a file's content.
type Hit struct {
	Offset int    // byte offset of the match start
	Line   int    // 1-based line number
	Column int    // 1-based column on that line
	Text   string // matched text
}

// Evaluate runs one compiled pattern over content via non-overlapping
// global search and resolves every match to a line through the index.
// Matches whose text satisfies the exclude pattern are dropped; pass a nil
// exclude to keep everything.
//
// Both regexps must be compiled once at rule registration and never carry
// state between calls — *regexp.Regexp is safe for concurrent use, so one
// rule can be evaluated by several agents' goroutines at once.
func Evaluate(pattern, exclude *regexp.Regexp, content string, idx *LineIndex) []Hit {
	locs := pattern.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	hits := make([]Hit, 0, len(locs))
	for _, loc := range locs {
		text := content[loc[0]:loc[1]]
		if exclude != nil && exclude.MatchString(text) {
			continue
		}
		hits = append(hits, Hit{
			Offset: loc[0],
			Line:   idx.LineAt(loc[0]),
			Column: idx.ColumnAt(loc[0]),
			Text:   text,
		})
	}
	return hits
}

package newmm

import "github.com/npillmayer/thaiseg/dictionary"

// SegmentLongest splits text into words by greedy longest matching: at each
// position the longest dictionary word ending on a cluster boundary is
// taken. Text not covered by the dictionary is handled as in Segment.
func SegmentLongest(text string, dict *dictionary.Dictionary) []string {
	if text == "" {
		return []string{}
	}
	if dict == nil {
		dict = dictionary.Default()
	}
	runes := []rune(text)
	validPos := clusterEnds(runes)
	tokens := make([]string, 0, len(runes)/4+1)
	for pos := 0; pos < len(runes); {
		end := -1
		ends := dict.Prefixes(runes, pos)
		for i := len(ends) - 1; i >= 0; i-- {
			if validPos.Contains(ends[i]) {
				end = ends[i]
				break
			}
		}
		if end < 0 {
			end = unknownWordEnd(runes, pos, validPos, dict)
		}
		tokens = append(tokens, string(runes[pos:end]))
		pos = end
	}
	return tokens
}

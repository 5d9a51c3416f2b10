package controller

import (
	"github.com/tidwall/gjson"

	"github.com/coursechat/coursechat/tools"
)

// AggregateSources walks the round log in order and extracts attribution
// sources from tool results. Duplicates (same text and link) keep their first
// occurrence. Malformed or missing attribution contributes nothing; this
// never fails.
func AggregateSources(rounds []RoundRecord) []tools.Source {
	out := []tools.Source{}
	seen := map[tools.Source]struct{}{}
	for _, rec := range rounds {
		for _, res := range rec.Results {
			if len(res.Attribution) == 0 {
				continue
			}
			parsed := gjson.ParseBytes(res.Attribution)
			if !parsed.IsArray() {
				continue
			}
			parsed.ForEach(func(_, v gjson.Result) bool {
				text := v.Get("text").String()
				if text == "" {
					return true
				}
				src := tools.Source{Text: text, Link: v.Get("link").String()}
				if _, dup := seen[src]; dup {
					return true
				}
				seen[src] = struct{}{}
				out = append(out, src)
				return true
			})
		}
	}
	return out
}

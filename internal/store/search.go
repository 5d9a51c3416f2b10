package store

import (
	"sort"
	"strings"
)

// defaultSearchLimit caps hits per search when the caller passes limit <= 0.
const defaultSearchLimit = 5

// Hit is one search result with enough context to format and attribute it.
type Hit struct {
	CourseTitle string
	Lesson      int
	Text        string
	Link        string
}

// Search scores chunks by lexical keyword overlap with the query and returns
// the best hits, most relevant first. courseTitle, when non-empty, must be an
// already-resolved exact title; lessonNumber > 0 restricts to that lesson.
//
// This is deliberately plain keyword matching: embedding and vector-similarity
// retrieval live behind an external service boundary, not here.
func (c *Catalog) Search(query, courseTitle string, lessonNumber, limit int) []Hit {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	type scored struct {
		hit   Hit
		score int
		order int
	}
	var candidates []scored
	order := 0
	for _, course := range c.courses {
		if courseTitle != "" && course.Title != courseTitle {
			continue
		}
		for _, chunk := range course.Chunks {
			if lessonNumber > 0 && chunk.Lesson != lessonNumber {
				continue
			}
			score := overlap(terms, tokenize(chunk.Text))
			if score == 0 {
				continue
			}
			candidates = append(candidates, scored{
				hit: Hit{
					CourseTitle: course.Title,
					Lesson:      chunk.Lesson,
					Text:        chunk.Text,
					Link:        c.LessonLink(course.Title, chunk.Lesson),
				},
				score: score,
				order: order,
			})
			order++
		}
	}

	// Stable by construction: ties keep catalog order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	hits := make([]Hit, 0, len(candidates))
	for _, cand := range candidates {
		hits = append(hits, cand.hit)
	}
	return hits
}

func tokenize(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, f := range strings.Fields(strings.ToLower(s)) {
		f = strings.Trim(f, ".,;:!?\"'()[]")
		if len(f) < 2 {
			continue
		}
		out[f] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/coursechat/coursechat/internal/store"
)

type CourseOutlineInput struct {
	CourseTitle string `json:"course_title" jsonschema_description:"Course title to get the outline for; partial matches work."`
}

var CourseOutlineInputSchema = GenerateSchema[CourseOutlineInput]()

// NewCourseOutlineTool builds the outline tool: course title, link, and the
// numbered lesson list. The course link, when present, is attributed as a source.
func NewCourseOutlineTool(cat *store.Catalog) ToolDefinition {
	return ToolDefinition{
		Name:        "get_course_outline",
		Description: "Get a course outline showing the course title, link, and all lessons with their numbers and titles.",
		InputSchema: CourseOutlineInputSchema,
		Execute: func(ctx context.Context, input json.RawMessage) (Result, error) {
			var in CourseOutlineInput
			if err := json.Unmarshal(input, &in); err != nil {
				return Result{}, fmt.Errorf("invalid outline input: %w", err)
			}
			course, ok := cat.ResolveCourse(in.CourseTitle)
			if !ok {
				return Result{Content: fmt.Sprintf("No course found matching '%s'", in.CourseTitle)}, nil
			}
			return formatOutline(course), nil
		},
	}
}

func formatOutline(course store.Course) Result {
	var out []string
	out = append(out, fmt.Sprintf("**%s**", course.Title))
	if course.Link != "" {
		out = append(out, fmt.Sprintf("Course Link: %s", course.Link))
	}

	if len(course.Lessons) > 0 {
		out = append(out, "", "**Lessons:**")
		lessons := make([]store.Lesson, len(course.Lessons))
		copy(lessons, course.Lessons)
		sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Number < lessons[j].Number })
		for _, l := range lessons {
			out = append(out, fmt.Sprintf("%d. %s", l.Number, l.Title))
		}
	} else {
		out = append(out, "", "No lessons found for this course.")
	}

	res := Result{Content: strings.Join(out, "\n")}
	res.Sources = append(res.Sources, Source{Text: course.Title, Link: course.Link})
	return res
}

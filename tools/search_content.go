package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coursechat/coursechat/internal/store"
)

type SearchContentInput struct {
	Query        string `json:"query" jsonschema_description:"What to search for in the course content."`
	CourseName   string `json:"course_name,omitempty" jsonschema_description:"Course title to search within; partial matches work, e.g. 'MCP', 'Introduction'."`
	LessonNumber int    `json:"lesson_number,omitempty" jsonschema_description:"Specific lesson number to search within, e.g. 1, 2, 3."`
}

var SearchContentInputSchema = GenerateSchema[SearchContentInput]()

// NewSearchContentTool builds the course content search tool over the catalog.
// Every hit contributes a "[Course - Lesson N]" header in the content and a
// matching attribution source with the lesson link when one exists.
func NewSearchContentTool(cat *store.Catalog) ToolDefinition {
	return ToolDefinition{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering.",
		InputSchema: SearchContentInputSchema,
		Execute: func(ctx context.Context, input json.RawMessage) (Result, error) {
			var in SearchContentInput
			if err := json.Unmarshal(input, &in); err != nil {
				return Result{}, fmt.Errorf("invalid search input: %w", err)
			}
			if strings.TrimSpace(in.Query) == "" {
				return Result{}, fmt.Errorf("search query must not be empty")
			}
			return searchContent(cat, in), nil
		},
	}
}

// searchContent keeps lookup misses as readable content rather than errors so
// the model can adjust its arguments and try again within the round budget.
func searchContent(cat *store.Catalog, in SearchContentInput) Result {
	courseTitle := ""
	if in.CourseName != "" {
		course, ok := cat.ResolveCourse(in.CourseName)
		if !ok {
			return Result{Content: fmt.Sprintf("No course found matching '%s'", in.CourseName)}
		}
		courseTitle = course.Title
	}

	hits := cat.Search(in.Query, courseTitle, in.LessonNumber, 0)
	if len(hits) == 0 {
		var filterInfo strings.Builder
		if courseTitle != "" {
			fmt.Fprintf(&filterInfo, " in course '%s'", courseTitle)
		}
		if in.LessonNumber > 0 {
			fmt.Fprintf(&filterInfo, " in lesson %d", in.LessonNumber)
		}
		return Result{Content: fmt.Sprintf("No relevant content found%s.", filterInfo.String())}
	}

	var blocks []string
	var sources []Source
	for _, h := range hits {
		header := h.CourseTitle
		if h.Lesson > 0 {
			header = fmt.Sprintf("%s - Lesson %d", h.CourseTitle, h.Lesson)
		}
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", header, h.Text))
		sources = append(sources, Source{Text: header, Link: h.Link})
	}
	return Result{
		Content: strings.Join(blocks, "\n\n"),
		Sources: sources,
	}
}

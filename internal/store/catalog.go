package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lesson is one numbered lesson within a course.
type Lesson struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title"`
	Link   string `yaml:"link,omitempty"`
}

// Chunk is a retrievable fragment of course content, optionally tied to a lesson.
type Chunk struct {
	Lesson int    `yaml:"lesson,omitempty"`
	Text   string `yaml:"text"`
}

// Course is one catalog entry as loaded from a YAML file.
type Course struct {
	Title   string   `yaml:"title"`
	Link    string   `yaml:"link,omitempty"`
	Lessons []Lesson `yaml:"lessons,omitempty"`
	Chunks  []Chunk  `yaml:"chunks,omitempty"`
}

// Catalog holds the loaded course material. Read-only after Load; safe to
// share across concurrent queries.
type Catalog struct {
	courses []Course
}

// Load reads every *.yaml / *.yml file under dir into a catalog.
// File order is lexicographic so catalog order is stable across runs.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	cat := &Catalog{}
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read course file %s: %w", p, err)
		}
		var c Course
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse course file %s: %w", p, err)
		}
		if strings.TrimSpace(c.Title) == "" {
			return nil, fmt.Errorf("course file %s: missing title", p)
		}
		cat.courses = append(cat.courses, c)
	}
	return cat, nil
}

// NewCatalog builds a catalog directly from courses, mainly for tests.
func NewCatalog(courses ...Course) *Catalog {
	return &Catalog{courses: courses}
}

// Courses returns the catalog entries in load order.
func (c *Catalog) Courses() []Course {
	out := make([]Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// ResolveCourse matches a possibly-partial course title, case-insensitively.
// An exact title match wins over a substring match.
func (c *Catalog) ResolveCourse(name string) (Course, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Course{}, false
	}
	for _, course := range c.courses {
		if strings.ToLower(course.Title) == needle {
			return course, true
		}
	}
	for _, course := range c.courses {
		if strings.Contains(strings.ToLower(course.Title), needle) {
			return course, true
		}
	}
	return Course{}, false
}

// LessonLink returns the link for a lesson of the named course, or "".
func (c *Catalog) LessonLink(courseTitle string, lessonNumber int) string {
	for _, course := range c.courses {
		if course.Title != courseTitle {
			continue
		}
		for _, l := range course.Lessons {
			if l.Number == lessonNumber {
				return l.Link
			}
		}
	}
	return ""
}

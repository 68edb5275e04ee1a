package database

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"elearn/models"
	"elearn/store"
)

// Catalog is the YAML layout of a course seed file.
type Catalog struct {
	Courses []models.Course `yaml:"courses"`
}

// LoadCatalog parses and validates a course catalog.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cat.Courses))
	for _, c := range cat.Courses {
		if strings.TrimSpace(c.ID) == "" {
			return Catalog{}, fmt.Errorf("course %q has no id", c.Title)
		}
		if seen[c.ID] {
			return Catalog{}, fmt.Errorf("duplicate course id %q", c.ID)
		}
		seen[c.ID] = true

		lessons := make(map[int]bool, len(c.Lessons))
		for _, l := range c.Lessons {
			if lessons[l.ID] {
				return Catalog{}, fmt.Errorf("course %q: duplicate lesson id %d", c.ID, l.ID)
			}
			lessons[l.ID] = true
		}
	}
	return cat, nil
}

// SeedCourses upserts every course of the catalog at path into st and
// returns how many were written.
func SeedCourses(ctx context.Context, st store.Store, path string) (int, error) {
	cat, err := LoadCatalog(path)
	if err != nil {
		return 0, err
	}
	for _, c := range cat.Courses {
		if c.Lessons == nil {
			c.Lessons = []models.Lesson{}
		}
		if err := st.SaveCourse(ctx, c); err != nil {
			return 0, fmt.Errorf("save course %s: %w", c.ID, err)
		}
	}
	return len(cat.Courses), nil
}

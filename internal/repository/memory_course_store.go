package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/query"
)

// MemoryCourseStore keeps courses and their references in process memory.
// It is used for local development and tests.
type MemoryCourseStore struct {
	mu      sync.RWMutex
	seq     int
	courses []models.Course
	refs    referenceIndex
}

// NewMemoryCourseStore constructs an empty MemoryCourseStore.
func NewMemoryCourseStore() *MemoryCourseStore {
	return &MemoryCourseStore{refs: newReferenceIndex()}
}

// Seed adds reference records. Existing records with the same UUID are replaced.
func (s *MemoryCourseStore) Seed(refs References) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs.add(refs)
}

// Len returns the number of stored courses.
func (s *MemoryCourseStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses)
}

func (s *MemoryCourseStore) Aggregate(ctx context.Context, stages []query.Stage, opts query.PageOptions) ([]models.CourseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched, err := s.filter(query.Restrictions(stages))
	if err != nil {
		return nil, err
	}

	if opts.Paged() {
		sortCourses(matched, opts.Sort)
		skip := opts.Skip()
		if skip >= len(matched) {
			matched = nil
		} else {
			end := skip + opts.Limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[skip:end]
		}
	}

	records := make([]models.CourseRecord, 0, len(matched))
	for i := range matched {
		record := newCourseRecord(matched[i])
		for _, e := range query.Enrichments(stages) {
			if err := s.refs.enrich(&record, &matched[i], e); err != nil {
				return nil, err
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *MemoryCourseStore) Count(ctx context.Context, stages []query.Stage) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched, err := s.filter(query.Restrictions(stages))
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *MemoryCourseStore) ExistsByName(ctx context.Context, name, excludeUUID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nameTaken(name, excludeUUID), nil
}

func (s *MemoryCourseStore) FindByUUID(ctx context.Context, uuid string) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.courses {
		if s.courses[i].UUID == uuid {
			course := cloneCourse(s.courses[i])
			return &course, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryCourseStore) Create(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(course.Name, "") {
		return fmt.Errorf("create course %q: %w", course.Name, ErrDuplicate)
	}
	for i := range s.courses {
		if s.courses[i].UUID == course.UUID {
			return fmt.Errorf("create course %s: %w", course.UUID, ErrDuplicate)
		}
	}

	s.seq++
	course.ID = strconv.Itoa(s.seq)
	s.courses = append(s.courses, cloneCourse(*course))
	return nil
}

func (s *MemoryCourseStore) UpdateByUUID(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].UUID != course.UUID {
			continue
		}
		if s.nameTaken(course.Name, course.UUID) {
			return fmt.Errorf("update course %q: %w", course.Name, ErrDuplicate)
		}
		updated := cloneCourse(*course)
		updated.ID = s.courses[i].ID
		updated.CreatedDate = s.courses[i].CreatedDate
		s.courses[i] = updated
		course.ID = updated.ID
		course.CreatedDate = updated.CreatedDate
		return nil
	}
	return ErrNotFound
}

func (s *MemoryCourseStore) nameTaken(name, excludeUUID string) bool {
	for i := range s.courses {
		if s.courses[i].Name == name && s.courses[i].UUID != excludeUUID {
			return true
		}
	}
	return false
}

// filter returns copies of the courses satisfying every restriction, in insertion order.
func (s *MemoryCourseStore) filter(restrictions []query.Restrict) ([]models.Course, error) {
	out := make([]models.Course, 0, len(s.courses))
	for i := range s.courses {
		ok, err := matchesAll(&s.courses[i], restrictions)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, cloneCourse(s.courses[i]))
		}
	}
	return out, nil
}

func matchesAll(course *models.Course, restrictions []query.Restrict) (bool, error) {
	for _, r := range restrictions {
		ok, err := matches(course, r)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matches(course *models.Course, r query.Restrict) (bool, error) {
	switch r.Op {
	case query.OpText:
		term, _ := r.Value.(string)
		return matchesText(course, term), nil
	case query.OpEq:
		value, ok := scalarField(course, r.Field)
		if !ok {
			return false, fmt.Errorf("restrict: unknown field %q", r.Field)
		}
		return value == fmt.Sprint(r.Value), nil
	case query.OpIn:
		value, ok := scalarField(course, r.Field)
		if !ok {
			return false, fmt.Errorf("restrict: unknown field %q", r.Field)
		}
		candidates, ok := r.Value.([]string)
		if !ok {
			return false, fmt.Errorf("restrict: %s expects []string, got %T", r.Op, r.Value)
		}
		for _, c := range candidates {
			if c == value {
				return true, nil
			}
		}
		return false, nil
	case query.OpContains:
		list, ok := courseListField(course, r.Field)
		if !ok {
			return false, fmt.Errorf("restrict: unknown list field %q", r.Field)
		}
		want := fmt.Sprint(r.Value)
		for _, id := range list {
			if id == want {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("restrict: unsupported op %q", r.Op)
}

// matchesText reports whether any word of term occurs in the name or
// description, ignoring case.
func matchesText(course *models.Course, term string) bool {
	haystack := strings.ToLower(course.Name + " " + course.Description)
	for _, word := range strings.Fields(strings.ToLower(term)) {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}

func scalarField(course *models.Course, field string) (string, bool) {
	switch field {
	case query.FieldUUID:
		return course.UUID, true
	case query.FieldStatus:
		return string(course.Status), true
	case "name":
		return course.Name, true
	}
	return "", false
}

func sortCourses(courses []models.Course, fields []query.SortField) {
	if len(fields) == 0 {
		return
	}
	sort.SliceStable(courses, func(i, j int) bool {
		for _, f := range fields {
			cmp := compareCourses(&courses[i], &courses[j], f.Field)
			if cmp == 0 {
				continue
			}
			if f.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareCourses(a, b *models.Course, field string) int {
	switch field {
	case query.FieldCreatedDate:
		return a.CreatedDate.Compare(b.CreatedDate)
	case "updatedDate":
		return a.UpdatedDate.Compare(b.UpdatedDate)
	case "name":
		return strings.Compare(a.Name, b.Name)
	}
	return 0
}

func cloneCourse(c models.Course) models.Course {
	c.CategoryUUIDs = cloneIDs(c.CategoryUUIDs)
	c.CourseModeUUIDs = cloneIDs(c.CourseModeUUIDs)
	c.InstructorUUIDs = cloneIDs(c.InstructorUUIDs)
	c.SponsorUUIDs = cloneIDs(c.SponsorUUIDs)
	c.CourseReactionUUIDs = cloneIDs(c.CourseReactionUUIDs)
	c.CourseRatingUUIDs = cloneIDs(c.CourseRatingUUIDs)
	return c
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

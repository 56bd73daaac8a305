package repository

import (
	"context"
	"errors"
	"time"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/query"
)

var (
	// ErrNotFound is returned when no course matches the requested UUID.
	ErrNotFound = errors.New("repository: course not found")
	// ErrDuplicate is returned when a write violates a unique name or uuid.
	ErrDuplicate = errors.New("repository: duplicate course")
)

// CourseStore executes course lookups described by query stages and persists courses.
type CourseStore interface {
	// Aggregate runs stages and returns the joined records. Sorting, skip and
	// limit from opts apply only when opts.Paged() is true.
	Aggregate(ctx context.Context, stages []query.Stage, opts query.PageOptions) ([]models.CourseRecord, error)
	// Count returns how many courses satisfy the restrictions in stages.
	Count(ctx context.Context, stages []query.Stage) (int, error)
	ExistsByName(ctx context.Context, name, excludeUUID string) (bool, error)
	FindByUUID(ctx context.Context, uuid string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	UpdateByUUID(ctx context.Context, course *models.Course) error
}

// References holds the records courses point at. Stores that own their
// reference data accept it through Seed.
type References struct {
	Categories      []models.Category
	CourseModes     []models.CourseMode
	Instructors     []models.Instructor
	Sponsors        []models.Sponsor
	CourseReactions []models.CourseReaction
	CourseRatings   []models.CourseRating
}

// QueryObserver receives the duration of every store call.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// ObservedCourseStore reports store call timings to a QueryObserver.
type ObservedCourseStore struct {
	next     CourseStore
	observer QueryObserver
}

// NewObservedCourseStore wraps next. A nil observer disables reporting.
func NewObservedCourseStore(next CourseStore, observer QueryObserver) *ObservedCourseStore {
	return &ObservedCourseStore{next: next, observer: observer}
}

func (s *ObservedCourseStore) observe(label string, start time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveDBQuery(label, time.Since(start))
}

func (s *ObservedCourseStore) Aggregate(ctx context.Context, stages []query.Stage, opts query.PageOptions) ([]models.CourseRecord, error) {
	defer s.observe("courses.aggregate", time.Now())
	return s.next.Aggregate(ctx, stages, opts)
}

func (s *ObservedCourseStore) Count(ctx context.Context, stages []query.Stage) (int, error) {
	defer s.observe("courses.count", time.Now())
	return s.next.Count(ctx, stages)
}

func (s *ObservedCourseStore) ExistsByName(ctx context.Context, name, excludeUUID string) (bool, error) {
	defer s.observe("courses.exists_by_name", time.Now())
	return s.next.ExistsByName(ctx, name, excludeUUID)
}

func (s *ObservedCourseStore) FindByUUID(ctx context.Context, uuid string) (*models.Course, error) {
	defer s.observe("courses.find_by_uuid", time.Now())
	return s.next.FindByUUID(ctx, uuid)
}

func (s *ObservedCourseStore) Create(ctx context.Context, course *models.Course) error {
	defer s.observe("courses.create", time.Now())
	return s.next.Create(ctx, course)
}

func (s *ObservedCourseStore) UpdateByUUID(ctx context.Context, course *models.Course) error {
	defer s.observe("courses.update", time.Now())
	return s.next.UpdateByUUID(ctx, course)
}

// courseListField returns the reference list of course named by field.
func courseListField(course *models.Course, field string) ([]string, bool) {
	switch field {
	case query.FieldCategoryUUIDs:
		return course.CategoryUUIDs, true
	case query.FieldCourseModeUUIDs:
		return course.CourseModeUUIDs, true
	case query.FieldInstructorUUIDs:
		return course.InstructorUUIDs, true
	case query.FieldSponsorUUIDs:
		return course.SponsorUUIDs, true
	case query.FieldReactionUUIDs:
		return course.CourseReactionUUIDs, true
	case query.FieldRatingUUIDs:
		return course.CourseRatingUUIDs, true
	}
	return nil, false
}

// pickByUUID returns the entries of index named by ids, in ids order, skipping
// unknown and repeated identifiers. The result is never nil.
func pickByUUID[T any](index map[string]T, ids []string) []T {
	out := make([]T, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := index[id]; ok {
			out = append(out, item)
		}
	}
	return out
}

func newCourseRecord(course models.Course) models.CourseRecord {
	return models.CourseRecord{
		CourseBase:      course.CourseBase,
		Categories:      []models.Category{},
		CourseModes:     []models.CourseMode{},
		Instructors:     []models.Instructor{},
		Sponsors:        []models.Sponsor{},
		CourseReactions: []models.CourseReaction{},
		CourseRatings:   []models.CourseRating{},
	}
}

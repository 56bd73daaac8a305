package repository

import (
	"fmt"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/query"
)

// referenceIndex keys every reference record by UUID, one map per collection.
type referenceIndex struct {
	categories      map[string]models.Category
	courseModes     map[string]models.CourseMode
	instructors     map[string]models.Instructor
	sponsors        map[string]models.Sponsor
	courseReactions map[string]models.CourseReaction
	courseRatings   map[string]models.CourseRating
}

func newReferenceIndex() referenceIndex {
	return referenceIndex{
		categories:      map[string]models.Category{},
		courseModes:     map[string]models.CourseMode{},
		instructors:     map[string]models.Instructor{},
		sponsors:        map[string]models.Sponsor{},
		courseReactions: map[string]models.CourseReaction{},
		courseRatings:   map[string]models.CourseRating{},
	}
}

func (idx referenceIndex) add(refs References) {
	for _, c := range refs.Categories {
		idx.categories[c.UUID] = c
	}
	for _, m := range refs.CourseModes {
		idx.courseModes[m.UUID] = m
	}
	for _, i := range refs.Instructors {
		idx.instructors[i.UUID] = i
	}
	for _, s := range refs.Sponsors {
		idx.sponsors[s.UUID] = s
	}
	for _, r := range refs.CourseReactions {
		idx.courseReactions[r.UUID] = r
	}
	for _, r := range refs.CourseRatings {
		idx.courseRatings[r.UUID] = r
	}
}

// enrich replaces the identifiers held in e.Field with the matching records.
func (idx referenceIndex) enrich(record *models.CourseRecord, course *models.Course, e query.Enrich) error {
	ids, ok := courseListField(course, e.Field)
	if !ok {
		return fmt.Errorf("enrich: unknown field %q", e.Field)
	}
	if e.ForeignKey != query.FieldUUID {
		return fmt.Errorf("enrich: unsupported foreign key %q", e.ForeignKey)
	}

	switch e.ForeignCollection {
	case query.CollectionCategories:
		record.Categories = pickByUUID(idx.categories, ids)
	case query.CollectionCourseModes:
		record.CourseModes = pickByUUID(idx.courseModes, ids)
	case query.CollectionInstructors:
		record.Instructors = pickByUUID(idx.instructors, ids)
	case query.CollectionSponsors:
		record.Sponsors = pickByUUID(idx.sponsors, ids)
	case query.CollectionCourseReactions:
		record.CourseReactions = pickByUUID(idx.courseReactions, ids)
	case query.CollectionCourseRatings:
		record.CourseRatings = pickByUUID(idx.courseRatings, ids)
	default:
		return fmt.Errorf("enrich: unknown collection %q", e.ForeignCollection)
	}
	return nil
}

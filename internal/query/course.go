package query

import "strings"

// Course document fields referenced by stages.
const (
	FieldUUID            = "uuid"
	FieldStatus          = "status"
	FieldCreatedDate     = "createdDate"
	FieldCategoryUUIDs   = "categoryUuids"
	FieldCourseModeUUIDs = "courseModeUuids"
	FieldInstructorUUIDs = "instructorUuids"
	FieldSponsorUUIDs    = "sponsorUuids"
	FieldReactionUUIDs   = "courseReactionsUuids"
	FieldRatingUUIDs     = "courseRatingsUuids"
)

// Collections holding the records a course references.
const (
	CollectionCourses         = "courses"
	CollectionCategories      = "categories"
	CollectionCourseModes     = "course_modes"
	CollectionInstructors     = "instructors"
	CollectionSponsors        = "sponsors"
	CollectionCourseReactions = "course_reactions"
	CollectionCourseRatings   = "course_ratings"
)

// CourseEnrichments lists the joins applied to every course lookup, in order.
var CourseEnrichments = []Enrich{
	{Field: FieldCategoryUUIDs, ForeignCollection: CollectionCategories, ForeignKey: FieldUUID},
	{Field: FieldCourseModeUUIDs, ForeignCollection: CollectionCourseModes, ForeignKey: FieldUUID},
	{Field: FieldInstructorUUIDs, ForeignCollection: CollectionInstructors, ForeignKey: FieldUUID},
	{Field: FieldSponsorUUIDs, ForeignCollection: CollectionSponsors, ForeignKey: FieldUUID},
	{Field: FieldReactionUUIDs, ForeignCollection: CollectionCourseReactions, ForeignKey: FieldUUID},
	{Field: FieldRatingUUIDs, ForeignCollection: CollectionCourseRatings, ForeignKey: FieldUUID},
}

// CourseFilter holds the optional listing filters. Empty values mean no restriction.
type CourseFilter struct {
	Search       string
	Status       string
	CategoryID   string
	CourseModeID string
	InstructorID string
	SponsorID    string
	UUIDs        []string
}

// BuildCourseStages turns filter into restriction stages followed by the
// course enrichments. The UUID allow-list, when present, is always first.
func BuildCourseStages(filter CourseFilter) []Stage {
	stages := make([]Stage, 0, len(CourseEnrichments)+7)

	if len(filter.UUIDs) > 0 {
		uuids := make([]string, len(filter.UUIDs))
		copy(uuids, filter.UUIDs)
		stages = append(stages, Restrict{Field: FieldUUID, Op: OpIn, Value: uuids})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		stages = append(stages, Restrict{Op: OpText, Value: search})
	}
	if filter.Status != "" {
		stages = append(stages, Restrict{Field: FieldStatus, Op: OpEq, Value: filter.Status})
	}

	memberships := []struct {
		field string
		value string
	}{
		{FieldCategoryUUIDs, filter.CategoryID},
		{FieldCourseModeUUIDs, filter.CourseModeID},
		{FieldInstructorUUIDs, filter.InstructorID},
		{FieldSponsorUUIDs, filter.SponsorID},
	}
	for _, m := range memberships {
		if m.value != "" {
			stages = append(stages, Restrict{Field: m.field, Op: OpContains, Value: m.value})
		}
	}

	for _, e := range CourseEnrichments {
		stages = append(stages, e)
	}
	return stages
}

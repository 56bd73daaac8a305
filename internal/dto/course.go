package dto

import (
	"strings"
	"time"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/query"
	"github.com/noah-isme/educamedic-api/pkg/pagination"
)

// FacebookDataRequest is the social metadata submitted with a course.
type FacebookDataRequest struct {
	PageID   string `json:"pageId" validate:"required"`
	PageName string `json:"pageName" validate:"required"`
	EventURL string `json:"eventUrl" validate:"required,url"`
}

// CourseRequest is the payload accepted when creating or replacing a course.
type CourseRequest struct {
	Name                string              `json:"name" validate:"required,max=255"`
	Description         string              `json:"description" validate:"required"`
	StartDate           time.Time           `json:"startDate" validate:"required"`
	EndDate             time.Time           `json:"endDate" validate:"required,gtefield=StartDate"`
	StartHour           string              `json:"startHour" validate:"required"`
	EndHour             string              `json:"endHour" validate:"required"`
	Duration            string              `json:"duration" validate:"required"`
	Status              models.CourseStatus `json:"status" validate:"required,oneof=Active Inactive"`
	CategoryUUIDs       []string            `json:"categoryUuids" validate:"dive,required"`
	CourseModeUUIDs     []string            `json:"courseModeUuids" validate:"dive,required"`
	InstructorUUIDs     []string            `json:"instructorUuids" validate:"dive,required"`
	SponsorUUIDs        []string            `json:"sponsorUuids" validate:"dive,required"`
	CourseReactionUUIDs []string            `json:"courseReactionsUuids" validate:"dive,required"`
	CourseRatingUUIDs   []string            `json:"courseRatingsUuids" validate:"dive,required"`
	URLMeeting          string              `json:"urlMeeting" validate:"required,url"`
	ImageURL            string              `json:"imageUrl" validate:"omitempty,url"`
	PublicationDate     time.Time           `json:"publicationDate" validate:"required"`
	FacebookData        FacebookDataRequest `json:"facebookData"`
}

// ApplyTo copies the mutable fields of the request onto course. Identity and
// timestamps are left untouched.
func (r CourseRequest) ApplyTo(course *models.Course) {
	course.Name = strings.TrimSpace(r.Name)
	course.Description = r.Description
	course.StartDate = r.StartDate.UTC()
	course.EndDate = r.EndDate.UTC()
	course.StartHour = r.StartHour
	course.EndHour = r.EndHour
	course.Duration = r.Duration
	course.Status = r.Status
	course.CategoryUUIDs = nonNil(r.CategoryUUIDs)
	course.CourseModeUUIDs = nonNil(r.CourseModeUUIDs)
	course.InstructorUUIDs = nonNil(r.InstructorUUIDs)
	course.SponsorUUIDs = nonNil(r.SponsorUUIDs)
	course.CourseReactionUUIDs = nonNil(r.CourseReactionUUIDs)
	course.CourseRatingUUIDs = nonNil(r.CourseRatingUUIDs)
	course.URLMeeting = r.URLMeeting
	course.ImageURL = r.ImageURL
	course.PublicationDate = r.PublicationDate.UTC()
	course.FacebookData = models.FacebookData{
		PageID:   r.FacebookData.PageID,
		PageName: r.FacebookData.PageName,
		EventURL: r.FacebookData.EventURL,
	}
}

// CoursePatchRequest is a partial course update. Nil fields keep their stored value.
type CoursePatchRequest struct {
	Name                *string              `json:"name"`
	Description         *string              `json:"description"`
	StartDate           *time.Time           `json:"startDate"`
	EndDate             *time.Time           `json:"endDate"`
	StartHour           *string              `json:"startHour"`
	EndHour             *string              `json:"endHour"`
	Duration            *string              `json:"duration"`
	Status              *models.CourseStatus `json:"status"`
	CategoryUUIDs       *[]string            `json:"categoryUuids"`
	CourseModeUUIDs     *[]string            `json:"courseModeUuids"`
	InstructorUUIDs     *[]string            `json:"instructorUuids"`
	SponsorUUIDs        *[]string            `json:"sponsorUuids"`
	CourseReactionUUIDs *[]string            `json:"courseReactionsUuids"`
	CourseRatingUUIDs   *[]string            `json:"courseRatingsUuids"`
	URLMeeting          *string              `json:"urlMeeting"`
	ImageURL            *string              `json:"imageUrl"`
	PublicationDate     *time.Time           `json:"publicationDate"`
	FacebookData        *FacebookDataRequest `json:"facebookData"`
}

// Merge overlays the fields present in the patch onto base. The result must
// be validated as a whole before it is applied.
func (p CoursePatchRequest) Merge(base CourseRequest) CourseRequest {
	merged := base
	setField(&merged.Name, p.Name)
	setField(&merged.Description, p.Description)
	setField(&merged.StartDate, p.StartDate)
	setField(&merged.EndDate, p.EndDate)
	setField(&merged.StartHour, p.StartHour)
	setField(&merged.EndHour, p.EndHour)
	setField(&merged.Duration, p.Duration)
	setField(&merged.Status, p.Status)
	setField(&merged.CategoryUUIDs, p.CategoryUUIDs)
	setField(&merged.CourseModeUUIDs, p.CourseModeUUIDs)
	setField(&merged.InstructorUUIDs, p.InstructorUUIDs)
	setField(&merged.SponsorUUIDs, p.SponsorUUIDs)
	setField(&merged.CourseReactionUUIDs, p.CourseReactionUUIDs)
	setField(&merged.CourseRatingUUIDs, p.CourseRatingUUIDs)
	setField(&merged.URLMeeting, p.URLMeeting)
	setField(&merged.ImageURL, p.ImageURL)
	setField(&merged.PublicationDate, p.PublicationDate)
	setField(&merged.FacebookData, p.FacebookData)
	return merged
}

// NewCourseRequest returns the request that reproduces the mutable fields of course.
func NewCourseRequest(course models.Course) CourseRequest {
	return CourseRequest{
		Name:                course.Name,
		Description:         course.Description,
		StartDate:           course.StartDate,
		EndDate:             course.EndDate,
		StartHour:           course.StartHour,
		EndHour:             course.EndHour,
		Duration:            course.Duration,
		Status:              course.Status,
		CategoryUUIDs:       nonNil(course.CategoryUUIDs),
		CourseModeUUIDs:     nonNil(course.CourseModeUUIDs),
		InstructorUUIDs:     nonNil(course.InstructorUUIDs),
		SponsorUUIDs:        nonNil(course.SponsorUUIDs),
		CourseReactionUUIDs: nonNil(course.CourseReactionUUIDs),
		CourseRatingUUIDs:   nonNil(course.CourseRatingUUIDs),
		URLMeeting:          course.URLMeeting,
		ImageURL:            course.ImageURL,
		PublicationDate:     course.PublicationDate,
		FacebookData: FacebookDataRequest{
			PageID:   course.FacebookData.PageID,
			PageName: course.FacebookData.PageName,
			EventURL: course.FacebookData.EventURL,
		},
	}
}

func setField[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

type CategoryView struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CourseModeView struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type InstructorView struct {
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	Grado          string `json:"grado"`
	Profession     string `json:"profession"`
	Description    string `json:"description"`
	Specialization string `json:"specialization"`
}

type SponsorView struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	LogoURL    string `json:"logoUrl"`
	WebsiteURL string `json:"websiteUrl"`
}

type CourseReactionView struct {
	UUID     string `json:"uuid"`
	UserUUID string `json:"userUuid"`
	Reaction string `json:"reaction"`
}

type CourseRatingView struct {
	UUID     string  `json:"uuid"`
	UserUUID string  `json:"userUuid"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
}

// CourseView is the public representation of a course.
type CourseView struct {
	ID              string               `json:"id"`
	UUID            string               `json:"uuid"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	StartDate       time.Time            `json:"startDate"`
	EndDate         time.Time            `json:"endDate"`
	StartHour       string               `json:"startHour"`
	EndHour         string               `json:"endHour"`
	Duration        string               `json:"duration"`
	Status          models.CourseStatus  `json:"status"`
	Categories      []CategoryView       `json:"categories"`
	CourseModes     []CourseModeView     `json:"courseModes"`
	Instructors     []InstructorView     `json:"instructors"`
	Sponsors        []SponsorView        `json:"sponsors"`
	CourseReactions []CourseReactionView `json:"courseReactions"`
	CourseRatings   []CourseRatingView   `json:"courseRatings"`
	FacebookData    models.FacebookData  `json:"facebookData"`
	CreatedDate     time.Time            `json:"createdDate"`
	UpdatedDate     time.Time            `json:"updatedDate"`
	URLMeeting      string               `json:"urlMeeting"`
	PublicationDate time.Time            `json:"publicationDate"`
	ImageURL        string               `json:"imageUrl"`
	AverageRating   float64              `json:"averageRating"`
}

// CoursePage is one page of a course listing.
type CoursePage struct {
	Data       []CourseView    `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// NewCourseView shapes a joined course record into its public view.
func NewCourseView(record models.CourseRecord) CourseView {
	return CourseView{
		ID:              record.ID,
		UUID:            record.UUID,
		Name:            record.Name,
		Description:     record.Description,
		StartDate:       record.StartDate,
		EndDate:         record.EndDate,
		StartHour:       record.StartHour,
		EndHour:         record.EndHour,
		Duration:        record.Duration,
		Status:          record.Status,
		Categories:      project(record.Categories, newCategoryView),
		CourseModes:     project(record.CourseModes, newCourseModeView),
		Instructors:     project(record.Instructors, newInstructorView),
		Sponsors:        project(record.Sponsors, newSponsorView),
		CourseReactions: project(record.CourseReactions, newCourseReactionView),
		CourseRatings:   project(record.CourseRatings, newCourseRatingView),
		FacebookData:    record.FacebookData,
		CreatedDate:     record.CreatedDate,
		UpdatedDate:     record.UpdatedDate,
		URLMeeting:      record.URLMeeting,
		PublicationDate: record.PublicationDate,
		ImageURL:        record.ImageURL,
		AverageRating:   AverageRating(record.CourseRatings),
	}
}

// AverageRating is the mean of the ratings, or 0 when there are none.
func AverageRating(ratings []models.CourseRating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Rating
	}
	return sum / float64(len(ratings))
}

func project[T, V any](in []T, fn func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, item := range in {
		out = append(out, fn(item))
	}
	return out
}

func newCategoryView(c models.Category) CategoryView {
	return CategoryView{UUID: c.UUID, Name: c.Name, Description: c.Description}
}

func newCourseModeView(m models.CourseMode) CourseModeView {
	return CourseModeView{UUID: m.UUID, Name: m.Name, Description: m.Description}
}

func newInstructorView(i models.Instructor) InstructorView {
	return InstructorView{
		UUID:           i.UUID,
		Name:           i.Name,
		LastName:       i.LastName,
		Grado:          i.Grado,
		Profession:     i.Profession,
		Description:    i.Description,
		Specialization: i.Specialization,
	}
}

func newSponsorView(s models.Sponsor) SponsorView {
	return SponsorView{UUID: s.UUID, Name: s.Name, LogoURL: s.LogoURL, WebsiteURL: s.WebsiteURL}
}

func newCourseReactionView(r models.CourseReaction) CourseReactionView {
	return CourseReactionView{UUID: r.UUID, UserUUID: r.UserUUID, Reaction: r.Reaction}
}

func newCourseRatingView(r models.CourseRating) CourseRatingView {
	return CourseRatingView{UUID: r.UUID, UserUUID: r.UserUUID, Rating: r.Rating, Comment: r.Comment}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// CourseListQuery holds the query string accepted by the course listing.
type CourseListQuery struct {
	Page         *int   `form:"page" binding:"omitempty,min=1"`
	Limit        *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	Sort         string `form:"sort"`
	Search       string `form:"search"`
	Status       string `form:"status"`
	CategoryID   string `form:"categoryId"`
	CourseModeID string `form:"courseModeId"`
	InstructorID string `form:"instructorId"`
	SponsorID    string `form:"sponsorId"`
}

// Filter returns the restriction part of the query.
func (q CourseListQuery) Filter() query.CourseFilter {
	return query.CourseFilter{
		Search:       strings.TrimSpace(q.Search),
		Status:       strings.TrimSpace(q.Status),
		CategoryID:   strings.TrimSpace(q.CategoryID),
		CourseModeID: strings.TrimSpace(q.CourseModeID),
		InstructorID: strings.TrimSpace(q.InstructorID),
		SponsorID:    strings.TrimSpace(q.SponsorID),
	}
}

// PageOptions returns the paging part of the query.
func (q CourseListQuery) PageOptions() query.PageOptions {
	opts := query.PageOptions{Sort: query.ParseSort(q.Sort)}
	if q.Page != nil {
		opts.Page = *q.Page
	}
	if q.Limit != nil {
		opts.Limit = *q.Limit
	}
	return opts
}

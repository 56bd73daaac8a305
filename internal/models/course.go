package models

import "time"

// CourseStatus enumerates the publication states of a course.
type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "Active"
	CourseStatusInactive CourseStatus = "Inactive"
)

// FacebookData is the social sharing metadata embedded in every course.
type FacebookData struct {
	PageID   string `json:"pageId" bson:"pageId"`
	PageName string `json:"pageName" bson:"pageName"`
	EventURL string `json:"eventUrl" bson:"eventUrl"`
}

// CourseBase holds the scalar fields shared by stored and joined courses.
type CourseBase struct {
	ID              string       `json:"id" bson:"_id,omitempty"`
	UUID            string       `json:"uuid" bson:"uuid"`
	Name            string       `json:"name" bson:"name"`
	Description     string       `json:"description" bson:"description"`
	StartDate       time.Time    `json:"startDate" bson:"startDate"`
	EndDate         time.Time    `json:"endDate" bson:"endDate"`
	StartHour       string       `json:"startHour" bson:"startHour"`
	EndHour         string       `json:"endHour" bson:"endHour"`
	Duration        string       `json:"duration" bson:"duration"`
	Status          CourseStatus `json:"status" bson:"status"`
	URLMeeting      string       `json:"urlMeeting" bson:"urlMeeting"`
	ImageURL        string       `json:"imageUrl" bson:"imageUrl"`
	PublicationDate time.Time    `json:"publicationDate" bson:"publicationDate"`
	CreatedDate     time.Time    `json:"createdDate" bson:"createdDate"`
	UpdatedDate     time.Time    `json:"updatedDate" bson:"updatedDate"`
	FacebookData    FacebookData `json:"facebookData" bson:"facebookData"`
}

// Course is the stored form of a course: references are kept as UUID lists.
type Course struct {
	CourseBase `bson:",inline"`

	CategoryUUIDs       []string `json:"categoryUuids" bson:"categoryUuids"`
	CourseModeUUIDs     []string `json:"courseModeUuids" bson:"courseModeUuids"`
	InstructorUUIDs     []string `json:"instructorUuids" bson:"instructorUuids"`
	SponsorUUIDs        []string `json:"sponsorUuids" bson:"sponsorUuids"`
	CourseReactionUUIDs []string `json:"courseReactionsUuids" bson:"courseReactionsUuids"`
	CourseRatingUUIDs   []string `json:"courseRatingsUuids" bson:"courseRatingsUuids"`
}

// CourseRecord is a course after enrichment: every reference list has been
// replaced in place by the matching records of its collection.
type CourseRecord struct {
	CourseBase `bson:",inline"`

	Categories      []Category       `bson:"categoryUuids"`
	CourseModes     []CourseMode     `bson:"courseModeUuids"`
	Instructors     []Instructor     `bson:"instructorUuids"`
	Sponsors        []Sponsor        `bson:"sponsorUuids"`
	CourseReactions []CourseReaction `bson:"courseReactionsUuids"`
	CourseRatings   []CourseRating   `bson:"courseRatingsUuids"`
}

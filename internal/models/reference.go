package models

import "time"

// Category groups courses by subject area.
type Category struct {
	UUID        string    `db:"uuid" json:"uuid" bson:"uuid"`
	Name        string    `db:"name" json:"name" bson:"name"`
	Description string    `db:"description" json:"description" bson:"description"`
	CreatedDate time.Time `db:"created_date" json:"createdDate" bson:"createdDate"`
}

// CourseMode describes how a course is delivered (synchronous, asynchronous...).
type CourseMode struct {
	UUID        string `db:"uuid" json:"uuid" bson:"uuid"`
	Name        string `db:"name" json:"name" bson:"name"`
	Description string `db:"description" json:"description" bson:"description"`
}

type Instructor struct {
	UUID              string `db:"uuid" json:"uuid" bson:"uuid"`
	Name              string `db:"name" json:"name" bson:"name"`
	LastName          string `db:"last_name" json:"lastName" bson:"lastName"`
	Grado             string `db:"grado" json:"grado" bson:"grado"`
	Profession        string `db:"profession" json:"profession" bson:"profession"`
	Description       string `db:"description" json:"description" bson:"description"`
	Email             string `db:"email" json:"email" bson:"email"`
	Phone             string `db:"phone" json:"phone" bson:"phone"`
	Specialization    string `db:"specialization" json:"specialization" bson:"specialization"`
	YearsOfExperience int    `db:"years_of_experience" json:"yearsOfExperience" bson:"yearsOfExperience"`
}

type Sponsor struct {
	UUID        string `db:"uuid" json:"uuid" bson:"uuid"`
	Name        string `db:"name" json:"name" bson:"name"`
	Description string `db:"description" json:"description" bson:"description"`
	LogoURL     string `db:"logo_url" json:"logoUrl" bson:"logoUrl"`
	WebsiteURL  string `db:"website_url" json:"websiteUrl" bson:"websiteUrl"`
}

// CourseReaction is a single user reaction (like, love...) left on a course.
type CourseReaction struct {
	UUID        string    `db:"uuid" json:"uuid" bson:"uuid"`
	UserUUID    string    `db:"user_uuid" json:"userUuid" bson:"userUuid"`
	Reaction    string    `db:"reaction" json:"reaction" bson:"reaction"`
	CreatedDate time.Time `db:"created_date" json:"createdDate" bson:"createdDate"`
}

// CourseRating is a single user rating of a course.
type CourseRating struct {
	UUID        string    `db:"uuid" json:"uuid" bson:"uuid"`
	UserUUID    string    `db:"user_uuid" json:"userUuid" bson:"userUuid"`
	Rating      float64   `db:"rating" json:"rating" bson:"rating"`
	Comment     string    `db:"comment" json:"comment" bson:"comment"`
	CreatedDate time.Time `db:"created_date" json:"createdDate" bson:"createdDate"`
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/query"
)

const courseColumns = `id, uuid, name, description, start_date, end_date, start_hour, end_hour, duration, status,
	category_uuids, course_mode_uuids, instructor_uuids, sponsor_uuids, course_reaction_uuids, course_rating_uuids,
	url_meeting, image_url, publication_date, created_date, updated_date,
	facebook_page_id, facebook_page_name, facebook_event_url`

const courseSearchVector = `to_tsvector('simple', name || ' ' || description)`

var courseSchema = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id BIGSERIAL PRIMARY KEY,
		uuid TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		start_hour TEXT NOT NULL DEFAULT '',
		end_hour TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		category_uuids TEXT[] NOT NULL DEFAULT '{}',
		course_mode_uuids TEXT[] NOT NULL DEFAULT '{}',
		instructor_uuids TEXT[] NOT NULL DEFAULT '{}',
		sponsor_uuids TEXT[] NOT NULL DEFAULT '{}',
		course_reaction_uuids TEXT[] NOT NULL DEFAULT '{}',
		course_rating_uuids TEXT[] NOT NULL DEFAULT '{}',
		url_meeting TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		publication_date TIMESTAMPTZ NOT NULL,
		created_date TIMESTAMPTZ NOT NULL,
		updated_date TIMESTAMPTZ NOT NULL,
		facebook_page_id TEXT NOT NULL DEFAULT '',
		facebook_page_name TEXT NOT NULL DEFAULT '',
		facebook_event_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS courses_search_idx ON courses USING GIN (` + courseSearchVector + `)`,
	`CREATE TABLE IF NOT EXISTS categories (
		uuid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS course_modes (
		uuid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS instructors (
		uuid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		last_name TEXT NOT NULL DEFAULT '',
		grado TEXT NOT NULL DEFAULT '',
		profession TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		specialization TEXT NOT NULL DEFAULT '',
		years_of_experience INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS sponsors (
		uuid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		logo_url TEXT NOT NULL DEFAULT '',
		website_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS course_reactions (
		uuid TEXT PRIMARY KEY,
		user_uuid TEXT NOT NULL,
		reaction TEXT NOT NULL,
		created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS course_ratings (
		uuid TEXT PRIMARY KEY,
		user_uuid TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// referenceColumns lists the selectable columns of every reference table.
var referenceColumns = map[string]string{
	query.CollectionCategories:      "uuid, name, description, created_date",
	query.CollectionCourseModes:     "uuid, name, description",
	query.CollectionInstructors:     "uuid, name, last_name, grado, profession, description, email, phone, specialization, years_of_experience",
	query.CollectionSponsors:        "uuid, name, description, logo_url, website_url",
	query.CollectionCourseReactions: "uuid, user_uuid, reaction, created_date",
	query.CollectionCourseRatings:   "uuid, user_uuid, rating, comment, created_date",
}

var courseScalarColumns = map[string]string{
	query.FieldUUID:        "uuid",
	query.FieldStatus:      "status",
	query.FieldCreatedDate: "created_date",
	"updatedDate":          "updated_date",
	"name":                 "name",
}

var courseListColumns = map[string]string{
	query.FieldCategoryUUIDs:   "category_uuids",
	query.FieldCourseModeUUIDs: "course_mode_uuids",
	query.FieldInstructorUUIDs: "instructor_uuids",
	query.FieldSponsorUUIDs:    "sponsor_uuids",
	query.FieldReactionUUIDs:   "course_reaction_uuids",
	query.FieldRatingUUIDs:     "course_rating_uuids",
}

// courseRow is the relational shape of a course.
type courseRow struct {
	ID                  int64          `db:"id"`
	UUID                string         `db:"uuid"`
	Name                string         `db:"name"`
	Description         string         `db:"description"`
	StartDate           time.Time      `db:"start_date"`
	EndDate             time.Time      `db:"end_date"`
	StartHour           string         `db:"start_hour"`
	EndHour             string         `db:"end_hour"`
	Duration            string         `db:"duration"`
	Status              string         `db:"status"`
	CategoryUUIDs       pq.StringArray `db:"category_uuids"`
	CourseModeUUIDs     pq.StringArray `db:"course_mode_uuids"`
	InstructorUUIDs     pq.StringArray `db:"instructor_uuids"`
	SponsorUUIDs        pq.StringArray `db:"sponsor_uuids"`
	CourseReactionUUIDs pq.StringArray `db:"course_reaction_uuids"`
	CourseRatingUUIDs   pq.StringArray `db:"course_rating_uuids"`
	URLMeeting          string         `db:"url_meeting"`
	ImageURL            string         `db:"image_url"`
	PublicationDate     time.Time      `db:"publication_date"`
	CreatedDate         time.Time      `db:"created_date"`
	UpdatedDate         time.Time      `db:"updated_date"`
	FacebookPageID      string         `db:"facebook_page_id"`
	FacebookPageName    string         `db:"facebook_page_name"`
	FacebookEventURL    string         `db:"facebook_event_url"`
}

func newCourseRow(c *models.Course) courseRow {
	id, _ := strconv.ParseInt(c.ID, 10, 64)
	return courseRow{
		ID:                  id,
		UUID:                c.UUID,
		Name:                c.Name,
		Description:         c.Description,
		StartDate:           c.StartDate,
		EndDate:             c.EndDate,
		StartHour:           c.StartHour,
		EndHour:             c.EndHour,
		Duration:            c.Duration,
		Status:              string(c.Status),
		CategoryUUIDs:       pq.StringArray(cloneIDs(c.CategoryUUIDs)),
		CourseModeUUIDs:     pq.StringArray(cloneIDs(c.CourseModeUUIDs)),
		InstructorUUIDs:     pq.StringArray(cloneIDs(c.InstructorUUIDs)),
		SponsorUUIDs:        pq.StringArray(cloneIDs(c.SponsorUUIDs)),
		CourseReactionUUIDs: pq.StringArray(cloneIDs(c.CourseReactionUUIDs)),
		CourseRatingUUIDs:   pq.StringArray(cloneIDs(c.CourseRatingUUIDs)),
		URLMeeting:          c.URLMeeting,
		ImageURL:            c.ImageURL,
		PublicationDate:     c.PublicationDate,
		CreatedDate:         c.CreatedDate,
		UpdatedDate:         c.UpdatedDate,
		FacebookPageID:      c.FacebookData.PageID,
		FacebookPageName:    c.FacebookData.PageName,
		FacebookEventURL:    c.FacebookData.EventURL,
	}
}

func (r courseRow) model() models.Course {
	return models.Course{
		CourseBase: models.CourseBase{
			ID:              strconv.FormatInt(r.ID, 10),
			UUID:            r.UUID,
			Name:            r.Name,
			Description:     r.Description,
			StartDate:       r.StartDate,
			EndDate:         r.EndDate,
			StartHour:       r.StartHour,
			EndHour:         r.EndHour,
			Duration:        r.Duration,
			Status:          models.CourseStatus(r.Status),
			URLMeeting:      r.URLMeeting,
			ImageURL:        r.ImageURL,
			PublicationDate: r.PublicationDate,
			CreatedDate:     r.CreatedDate,
			UpdatedDate:     r.UpdatedDate,
			FacebookData: models.FacebookData{
				PageID:   r.FacebookPageID,
				PageName: r.FacebookPageName,
				EventURL: r.FacebookEventURL,
			},
		},
		CategoryUUIDs:       cloneIDs(r.CategoryUUIDs),
		CourseModeUUIDs:     cloneIDs(r.CourseModeUUIDs),
		InstructorUUIDs:     cloneIDs(r.InstructorUUIDs),
		SponsorUUIDs:        cloneIDs(r.SponsorUUIDs),
		CourseReactionUUIDs: cloneIDs(r.CourseReactionUUIDs),
		CourseRatingUUIDs:   cloneIDs(r.CourseRatingUUIDs),
	}
}

// PostgresCourseStore stores courses in PostgreSQL with references kept as
// text arrays. Enrichments run as one batched lookup per reference table.
type PostgresCourseStore struct {
	db *sqlx.DB
}

// NewPostgresCourseStore constructs a PostgresCourseStore.
func NewPostgresCourseStore(db *sqlx.DB) *PostgresCourseStore {
	return &PostgresCourseStore{db: db}
}

// EnsureSchema creates the course and reference tables when missing.
func (s *PostgresCourseStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range courseSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure course schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresCourseStore) Aggregate(ctx context.Context, stages []query.Stage, opts query.PageOptions) ([]models.CourseRecord, error) {
	where, args, err := courseWhere(query.Restrictions(stages))
	if err != nil {
		return nil, err
	}

	q := "SELECT " + courseColumns + " FROM courses" + where
	if opts.Paged() {
		q += " ORDER BY " + courseOrderBy(opts.Sort) + fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Skip())
	} else {
		q += " ORDER BY id"
	}

	var rows []courseRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	courses := make([]models.Course, len(rows))
	records := make([]models.CourseRecord, len(rows))
	for i, row := range rows {
		courses[i] = row.model()
		records[i] = newCourseRecord(courses[i])
	}

	for _, e := range query.Enrichments(stages) {
		idx, err := s.loadReferences(ctx, courses, e)
		if err != nil {
			return nil, err
		}
		for i := range records {
			if err := idx.enrich(&records[i], &courses[i], e); err != nil {
				return nil, err
			}
		}
	}
	return records, nil
}

func (s *PostgresCourseStore) Count(ctx context.Context, stages []query.Stage) (int, error) {
	where, args, err := courseWhere(query.Restrictions(stages))
	if err != nil {
		return 0, err
	}
	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM courses"+where, args...); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return total, nil
}

func (s *PostgresCourseStore) ExistsByName(ctx context.Context, name, excludeUUID string) (bool, error) {
	q := "SELECT 1 FROM courses WHERE name = $1"
	args := []interface{}{name}
	if excludeUUID != "" {
		q += " AND uuid <> $2"
		args = append(args, excludeUUID)
	}
	var exists int
	if err := s.db.GetContext(ctx, &exists, q+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check course name: %w", err)
	}
	return true, nil
}

func (s *PostgresCourseStore) FindByUUID(ctx context.Context, uuid string) (*models.Course, error) {
	var row courseRow
	if err := s.db.GetContext(ctx, &row, "SELECT "+courseColumns+" FROM courses WHERE uuid = $1", uuid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	course := row.model()
	return &course, nil
}

func (s *PostgresCourseStore) Create(ctx context.Context, course *models.Course) error {
	const q = `INSERT INTO courses (uuid, name, description, start_date, end_date, start_hour, end_hour, duration, status,
		category_uuids, course_mode_uuids, instructor_uuids, sponsor_uuids, course_reaction_uuids, course_rating_uuids,
		url_meeting, image_url, publication_date, created_date, updated_date,
		facebook_page_id, facebook_page_name, facebook_event_url)
		VALUES (:uuid, :name, :description, :start_date, :end_date, :start_hour, :end_hour, :duration, :status,
		:category_uuids, :course_mode_uuids, :instructor_uuids, :sponsor_uuids, :course_reaction_uuids, :course_rating_uuids,
		:url_meeting, :image_url, :publication_date, :created_date, :updated_date,
		:facebook_page_id, :facebook_page_name, :facebook_event_url)
		RETURNING id`

	rows, err := s.db.NamedQueryContext(ctx, q, newCourseRow(course))
	if err != nil {
		return mapPostgresWriteError("create course", course.Name, err)
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("create course: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return mapPostgresWriteError("create course", course.Name, err)
	}
	course.ID = strconv.FormatInt(id, 10)
	return nil
}

// UpdateByUUID rewrites every mutable column. id, uuid and created_date are left alone.
func (s *PostgresCourseStore) UpdateByUUID(ctx context.Context, course *models.Course) error {
	const q = `UPDATE courses SET name = :name, description = :description, start_date = :start_date, end_date = :end_date,
		start_hour = :start_hour, end_hour = :end_hour, duration = :duration, status = :status,
		category_uuids = :category_uuids, course_mode_uuids = :course_mode_uuids, instructor_uuids = :instructor_uuids,
		sponsor_uuids = :sponsor_uuids, course_reaction_uuids = :course_reaction_uuids, course_rating_uuids = :course_rating_uuids,
		url_meeting = :url_meeting, image_url = :image_url, publication_date = :publication_date, updated_date = :updated_date,
		facebook_page_id = :facebook_page_id, facebook_page_name = :facebook_page_name, facebook_event_url = :facebook_event_url
		WHERE uuid = :uuid`

	res, err := s.db.NamedExecContext(ctx, q, newCourseRow(course))
	if err != nil {
		return mapPostgresWriteError("update course", course.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// loadReferences fetches every record of e.ForeignCollection referenced by courses.
func (s *PostgresCourseStore) loadReferences(ctx context.Context, courses []models.Course, e query.Enrich) (referenceIndex, error) {
	idx := newReferenceIndex()
	columns, ok := referenceColumns[e.ForeignCollection]
	if !ok {
		return idx, fmt.Errorf("enrich: unknown collection %q", e.ForeignCollection)
	}

	ids := make([]string, 0)
	seen := map[string]struct{}{}
	for i := range courses {
		list, ok := courseListField(&courses[i], e.Field)
		if !ok {
			return idx, fmt.Errorf("enrich: unknown field %q", e.Field)
		}
		for _, id := range list {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return idx, nil
	}

	q := fmt.Sprintf("SELECT %s FROM %s WHERE uuid = ANY($1)", columns, e.ForeignCollection)
	var refs References
	var err error
	switch e.ForeignCollection {
	case query.CollectionCategories:
		err = s.db.SelectContext(ctx, &refs.Categories, q, pq.Array(ids))
	case query.CollectionCourseModes:
		err = s.db.SelectContext(ctx, &refs.CourseModes, q, pq.Array(ids))
	case query.CollectionInstructors:
		err = s.db.SelectContext(ctx, &refs.Instructors, q, pq.Array(ids))
	case query.CollectionSponsors:
		err = s.db.SelectContext(ctx, &refs.Sponsors, q, pq.Array(ids))
	case query.CollectionCourseReactions:
		err = s.db.SelectContext(ctx, &refs.CourseReactions, q, pq.Array(ids))
	case query.CollectionCourseRatings:
		err = s.db.SelectContext(ctx, &refs.CourseRatings, q, pq.Array(ids))
	}
	if err != nil {
		return idx, fmt.Errorf("load %s: %w", e.ForeignCollection, err)
	}
	idx.add(refs)
	return idx, nil
}

// courseWhere renders restrictions as a WHERE clause with positional arguments.
func courseWhere(restrictions []query.Restrict) (string, []interface{}, error) {
	if len(restrictions) == 0 {
		return "", nil, nil
	}
	conditions := make([]string, 0, len(restrictions))
	args := make([]interface{}, 0, len(restrictions))

	for _, r := range restrictions {
		placeholder := fmt.Sprintf("$%d", len(args)+1)
		switch r.Op {
		case query.OpText:
			conditions = append(conditions, courseSearchVector+" @@ plainto_tsquery('simple', "+placeholder+")")
			args = append(args, r.Value)
		case query.OpEq:
			column, ok := courseScalarColumns[r.Field]
			if !ok {
				return "", nil, fmt.Errorf("restrict: unknown field %q", r.Field)
			}
			conditions = append(conditions, column+" = "+placeholder)
			args = append(args, r.Value)
		case query.OpIn:
			column, ok := courseScalarColumns[r.Field]
			if !ok {
				return "", nil, fmt.Errorf("restrict: unknown field %q", r.Field)
			}
			values, ok := r.Value.([]string)
			if !ok {
				return "", nil, fmt.Errorf("restrict: %s expects []string, got %T", r.Op, r.Value)
			}
			conditions = append(conditions, column+" = ANY("+placeholder+")")
			args = append(args, pq.Array(values))
		case query.OpContains:
			column, ok := courseListColumns[r.Field]
			if !ok {
				return "", nil, fmt.Errorf("restrict: unknown list field %q", r.Field)
			}
			conditions = append(conditions, placeholder+" = ANY("+column+")")
			args = append(args, r.Value)
		default:
			return "", nil, fmt.Errorf("restrict: unsupported op %q", r.Op)
		}
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

func courseOrderBy(fields []query.SortField) string {
	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		column, ok := courseScalarColumns[f.Field]
		if !ok {
			continue
		}
		if f.Descending {
			parts = append(parts, column+" DESC")
		} else {
			parts = append(parts, column+" ASC")
		}
	}
	parts = append(parts, "id")
	return strings.Join(parts, ", ")
}

func mapPostgresWriteError(op, name string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s %q: %w", op, name, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

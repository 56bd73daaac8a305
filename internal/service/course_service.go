package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/educamedic-api/internal/dto"
	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/query"
	"github.com/noah-isme/educamedic-api/internal/repository"
	appErrors "github.com/noah-isme/educamedic-api/pkg/errors"
	"github.com/noah-isme/educamedic-api/pkg/pagination"
)

type courseStore interface {
	Aggregate(ctx context.Context, stages []query.Stage, opts query.PageOptions) ([]models.CourseRecord, error)
	Count(ctx context.Context, stages []query.Stage) (int, error)
	ExistsByName(ctx context.Context, name, excludeUUID string) (bool, error)
	FindByUUID(ctx context.Context, uuid string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	UpdateByUUID(ctx context.Context, course *models.Course) error
}

// CourseService orchestrates course listing and mutations.
type CourseService struct {
	store     courseStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCourseService constructs a CourseService.
func NewCourseService(store courseStore, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		store:     store,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of courses matching filter. Sorting and windowing
// only apply when both opts.Page and opts.Limit are set.
func (s *CourseService) List(ctx context.Context, filter query.CourseFilter, opts query.PageOptions) (*dto.CoursePage, error) {
	stages := query.BuildCourseStages(filter)

	records, err := s.store.Aggregate(ctx, stages, opts)
	if err != nil {
		s.logger.Error("failed to aggregate courses", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	total, err := s.store.Count(ctx, stages)
	if err != nil {
		s.logger.Error("failed to count courses", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to count courses")
	}

	views := make([]dto.CourseView, 0, len(records))
	for _, record := range records {
		views = append(views, dto.NewCourseView(record))
	}

	meta := pagination.Unpaged(total)
	if opts.Paged() {
		meta = pagination.New(total, opts.Page, opts.Limit)
	}
	return &dto.CoursePage{Data: views, Pagination: meta}, nil
}

// GetByUUID returns the enriched view of a single course.
func (s *CourseService) GetByUUID(ctx context.Context, id string) (*dto.CourseView, error) {
	page, err := s.List(ctx, query.CourseFilter{UUIDs: []string{id}}, query.PageOptions{Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return &page.Data[0], nil
}

// Create registers a new course and returns its enriched view.
func (s *CourseService) Create(ctx context.Context, req dto.CourseRequest) (*dto.CourseView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid course payload")
	}
	if err := s.ensureUniqueName(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	now := s.now()
	course := &models.Course{}
	req.ApplyTo(course)
	course.UUID = uuid.NewString()
	course.CreatedDate = now
	course.UpdatedDate = now

	if err := s.store.Create(ctx, course); err != nil {
		return nil, s.writeError(err, "failed to create course")
	}
	s.logger.Info("course created", zap.String("uuid", course.UUID), zap.String("id", course.ID))
	return s.GetByUUID(ctx, course.UUID)
}

// Update overlays the fields present in patch onto the course identified by
// id. The merged course must pass the same validation as a new one.
func (s *CourseService) Update(ctx context.Context, id string, patch dto.CoursePatchRequest) (*dto.CourseView, error) {
	course, err := s.store.FindByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}

	req := patch.Merge(dto.NewCourseRequest(*course))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid course payload")
	}
	if err := s.ensureUniqueName(ctx, req.Name, id); err != nil {
		return nil, err
	}

	req.ApplyTo(course)
	course.UpdatedDate = s.now()

	if err := s.store.UpdateByUUID(ctx, course); err != nil {
		return nil, s.writeError(err, "failed to update course")
	}
	return s.GetByUUID(ctx, id)
}

func (s *CourseService) ensureUniqueName(ctx context.Context, name, excludeUUID string) error {
	exists, err := s.store.ExistsByName(ctx, strings.TrimSpace(name), excludeUUID)
	if err != nil {
		return appErrors.Internal(err, "failed to check course name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "course with this name already exists")
	}
	return nil
}

func (s *CourseService) writeError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, "course with this name already exists")
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	s.logger.Error(message, zap.Error(err))
	return appErrors.Internal(err, message)
}

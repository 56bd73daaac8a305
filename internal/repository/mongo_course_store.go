package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/educamedic-api/internal/models"
	"github.com/noah-isme/educamedic-api/internal/query"
)

// MongoCourseStore runs course lookups as aggregation pipelines.
type MongoCourseStore struct {
	courses *mongo.Collection
}

// NewMongoCourseStore constructs a MongoCourseStore over db.
func NewMongoCourseStore(db *mongo.Database) *MongoCourseStore {
	return &MongoCourseStore{courses: db.Collection(query.CollectionCourses)}
}

// EnsureIndexes creates the unique name and uuid indexes and the text index
// used by search.
func (s *MongoCourseStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: query.FieldUUID, Value: 1}},
			Options: options.Index().SetName("uuid_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("name_description_text"),
		},
	}
	if _, err := s.courses.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure course indexes: %w", err)
	}
	return nil
}

func (s *MongoCourseStore) Aggregate(ctx context.Context, stages []query.Stage, opts query.PageOptions) ([]models.CourseRecord, error) {
	pipeline, err := coursePipeline(stages, opts)
	if err != nil {
		return nil, err
	}
	cursor, err := s.courses.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate courses: %w", err)
	}
	records := []models.CourseRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return records, nil
}

func (s *MongoCourseStore) Count(ctx context.Context, stages []query.Stage) (int, error) {
	restrictions := make([]query.Stage, 0, len(stages))
	for _, r := range query.Restrictions(stages) {
		restrictions = append(restrictions, r)
	}
	pipeline, err := coursePipeline(restrictions, query.PageOptions{})
	if err != nil {
		return 0, err
	}
	pipeline = append(pipeline, bson.D{{Key: "$count", Value: "count"}})

	cursor, err := s.courses.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	var result []struct {
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("decode course count: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Count, nil
}

func (s *MongoCourseStore) ExistsByName(ctx context.Context, name, excludeUUID string) (bool, error) {
	filter := bson.D{{Key: "name", Value: name}}
	if excludeUUID != "" {
		filter = append(filter, bson.E{Key: query.FieldUUID, Value: bson.D{{Key: "$ne", Value: excludeUUID}}})
	}
	n, err := s.courses.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check course name: %w", err)
	}
	return n > 0, nil
}

func (s *MongoCourseStore) FindByUUID(ctx context.Context, uuid string) (*models.Course, error) {
	var course models.Course
	err := s.courses.FindOne(ctx, bson.D{{Key: query.FieldUUID, Value: uuid}}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

func (s *MongoCourseStore) Create(ctx context.Context, course *models.Course) error {
	doc := *course
	doc.ID = ""
	res, err := s.courses.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create course %q: %w", course.Name, ErrDuplicate)
		}
		return fmt.Errorf("create course: %w", err)
	}
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		course.ID = id.Hex()
	default:
		course.ID = fmt.Sprint(id)
	}
	return nil
}

// UpdateByUUID replaces the stored document. The stored _id and createdDate are kept.
func (s *MongoCourseStore) UpdateByUUID(ctx context.Context, course *models.Course) error {
	existing, err := s.FindByUUID(ctx, course.UUID)
	if err != nil {
		return err
	}

	doc := *course
	doc.ID = ""
	doc.CreatedDate = existing.CreatedDate
	res, err := s.courses.ReplaceOne(ctx, bson.D{{Key: query.FieldUUID, Value: course.UUID}}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("update course %q: %w", course.Name, ErrDuplicate)
		}
		return fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	course.ID = existing.ID
	course.CreatedDate = existing.CreatedDate
	return nil
}

// coursePipeline translates stages into an aggregation pipeline. Consecutive
// restrictions collapse into one $match so that a $text condition stays in
// the first stage. Paging is applied before the first $lookup.
func coursePipeline(stages []query.Stage, opts query.PageOptions) (mongo.Pipeline, error) {
	pipeline := mongo.Pipeline{}
	var pending []bson.D
	paged, enriched := false, false

	flush := func() {
		if len(pending) > 0 {
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: mergeConditions(pending)}})
			pending = nil
		}
	}
	applyPaging := func() {
		if paged || !opts.Paged() {
			return
		}
		paged = true
		pipeline = append(pipeline,
			bson.D{{Key: "$sort", Value: sortDocument(opts.Sort)}},
			bson.D{{Key: "$skip", Value: int64(opts.Skip())}},
			bson.D{{Key: "$limit", Value: int64(opts.Limit)}},
		)
	}

	for _, stage := range stages {
		switch st := stage.(type) {
		case query.Restrict:
			if enriched {
				return nil, fmt.Errorf("pipeline: restriction on %q after enrichment", st.Field)
			}
			cond, err := restrictCondition(st)
			if err != nil {
				return nil, err
			}
			pending = append(pending, cond)
		case query.Enrich:
			flush()
			applyPaging()
			enriched = true
			pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: st.ForeignCollection},
				{Key: "localField", Value: st.Field},
				{Key: "foreignField", Value: st.ForeignKey},
				{Key: "as", Value: st.Field},
			}}})
		default:
			return nil, fmt.Errorf("pipeline: unsupported stage %T", stage)
		}
	}
	flush()
	applyPaging()
	return pipeline, nil
}

func restrictCondition(r query.Restrict) (bson.D, error) {
	switch r.Op {
	case query.OpEq, query.OpContains:
		return bson.D{{Key: r.Field, Value: r.Value}}, nil
	case query.OpIn:
		return bson.D{{Key: r.Field, Value: bson.D{{Key: "$in", Value: r.Value}}}}, nil
	case query.OpText:
		return bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: r.Value}}}}, nil
	}
	return nil, fmt.Errorf("pipeline: unsupported op %q", r.Op)
}

// mergeConditions joins conditions into a single filter document, falling
// back to $and when two conditions share a key.
func mergeConditions(conds []bson.D) bson.D {
	if len(conds) == 1 {
		return conds[0]
	}
	merged := bson.D{}
	seen := map[string]struct{}{}
	for _, cond := range conds {
		for _, e := range cond {
			if _, dup := seen[e.Key]; dup {
				and := make(bson.A, 0, len(conds))
				for _, c := range conds {
					and = append(and, c)
				}
				return bson.D{{Key: "$and", Value: and}}
			}
			seen[e.Key] = struct{}{}
			merged = append(merged, e)
		}
	}
	return merged
}

// sortDocument orders by fields and then by _id so that pages stay stable
// when sort keys tie.
func sortDocument(fields []query.SortField) bson.D {
	doc := make(bson.D, 0, len(fields)+1)
	for _, f := range fields {
		dir := 1
		if f.Descending {
			dir = -1
		}
		doc = append(doc, bson.E{Key: f.Field, Value: dir})
	}
	return append(doc, bson.E{Key: "_id", Value: 1})
}

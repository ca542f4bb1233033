package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

const collectionAttendance = "attendance"

type AttendanceRepository struct {
	col *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection(collectionAttendance)}
}

type mongoAttendance struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Date          time.Time          `bson:"date"`
	BranchID      string             `bson:"branch_id"`
	AttendeeIDs   []string           `bson:"attendee_ids,omitempty"`
	MaleCount     int                `bson:"male_count"`
	FemaleCount   int                `bson:"female_count"`
	ChildrenCount int                `bson:"children_count"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (ma mongoAttendance) toDomain() *domain.Attendance {
	return &domain.Attendance{
		ID:            ma.ID.Hex(),
		Date:          ma.Date,
		BranchID:      ma.BranchID,
		AttendeeIDs:   ma.AttendeeIDs,
		MaleCount:     ma.MaleCount,
		FemaleCount:   ma.FemaleCount,
		ChildrenCount: ma.ChildrenCount,
		CreatedAt:     ma.CreatedAt,
	}
}

func (r *AttendanceRepository) Create(ctx context.Context, a *domain.Attendance) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAttendance{
		Date:          a.Date,
		BranchID:      a.BranchID,
		AttendeeIDs:   a.AttendeeIDs,
		MaleCount:     a.MaleCount,
		FemaleCount:   a.FemaleCount,
		ChildrenCount: a.ChildrenCount,
		CreatedAt:     time.Now().UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *AttendanceRepository) List(ctx context.Context, filter ports.AttendanceFilter) ([]domain.Attendance, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if !filter.DateFrom.IsZero() || !filter.DateTo.IsZero() {
		dateRange := bson.M{}
		if !filter.DateFrom.IsZero() {
			dateRange["$gte"] = filter.DateFrom
		}
		if !filter.DateTo.IsZero() {
			dateRange["$lte"] = filter.DateTo
		}
		query["date"] = dateRange
	}
	if filter.BranchID != "" {
		query["branch_id"] = filter.BranchID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}

	page := filter.Page
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAttendance
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode attendance: %w", err)
	}

	out := make([]domain.Attendance, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, total, nil
}

// EnsureIndexes creates the report query indexes.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "branch_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

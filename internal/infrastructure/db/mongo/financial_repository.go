package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
)

const collectionFinancial = "financial_records"

type FinancialRepository struct {
	col *mongo.Collection
}

func NewFinancialRepository(db *mongo.Database) *FinancialRepository {
	return &FinancialRepository{col: db.Collection(collectionFinancial)}
}

type mongoFinancial struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Date        time.Time          `bson:"date"`
	BranchID    string             `bson:"branch_id"`
	BranchName  string             `bson:"branch_name,omitempty"`
	Amount      float64            `bson:"amount"`
	Type        string             `bson:"type"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mf mongoFinancial) toDomain() *domain.Financial {
	return &domain.Financial{
		ID:          mf.ID.Hex(),
		Date:        mf.Date,
		BranchID:    mf.BranchID,
		BranchName:  mf.BranchName,
		Amount:      mf.Amount,
		Type:        mf.Type,
		Description: mf.Description,
		CreatedAt:   mf.CreatedAt,
	}
}

func (r *FinancialRepository) Create(ctx context.Context, f *domain.Financial) (*domain.Financial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFinancial{
		Date:        f.Date,
		BranchID:    f.BranchID,
		BranchName:  f.BranchName,
		Amount:      f.Amount,
		Type:        f.Type,
		Description: f.Description,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert financial record: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *FinancialRepository) FindByID(ctx context.Context, id string) (*domain.Financial, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFinancialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFinancial
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFinancialNotFound
		}
		return nil, fmt.Errorf("find financial record: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FinancialRepository) Update(ctx context.Context, f *domain.Financial) (*domain.Financial, error) {
	oid, err := primitive.ObjectIDFromHex(f.ID)
	if err != nil {
		return nil, domain.ErrFinancialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"amount":      f.Amount,
		"description": f.Description,
	}}

	var updated mongoFinancial
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFinancialNotFound
		}
		return nil, fmt.Errorf("update financial record: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *FinancialRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFinancialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete financial record: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFinancialNotFound
	}
	return nil
}

func (r *FinancialRepository) List(ctx context.Context, filter ports.FinancialFilter) ([]domain.Financial, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.BranchID != "" {
		query["branch_id"] = filter.BranchID
	}
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

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count financial records: %w", err)
	}

	page := filter.Page
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list financial records: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoFinancial
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode financial records: %w", err)
	}

	out := make([]domain.Financial, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, total, nil
}

// EnsureIndexes creates the report query indexes.
func (r *FinancialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "branch_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

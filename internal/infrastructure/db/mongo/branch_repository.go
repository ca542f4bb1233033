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
)

const collectionBranches = "branches"

// BranchRepository persists branches. The unique index on name backs the
// service-level duplicate check.
type BranchRepository struct {
	col *mongo.Collection
}

func NewBranchRepository(db *mongo.Database) *BranchRepository {
	return &BranchRepository{col: db.Collection(collectionBranches)}
}

type mongoBranch struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Address       string             `bson:"address,omitempty"`
	City          string             `bson:"city,omitempty"`
	State         string             `bson:"state,omitempty"`
	Country       string             `bson:"country,omitempty"`
	LeadPastor    string             `bson:"lead_pastor,omitempty"`
	ContactNumber string             `bson:"contact_number,omitempty"`
	Email         string             `bson:"email,omitempty"`
	CreatedBy     string             `bson:"created_by"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toMongoBranch(b *domain.Branch) mongoBranch {
	return mongoBranch{
		Name:          b.Name,
		Address:       b.Address,
		City:          b.City,
		State:         b.State,
		Country:       b.Country,
		LeadPastor:    b.LeadPastor,
		ContactNumber: b.ContactNumber,
		Email:         b.Email,
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (mb mongoBranch) toDomain() *domain.Branch {
	return &domain.Branch{
		ID:            mb.ID.Hex(),
		Name:          mb.Name,
		Address:       mb.Address,
		City:          mb.City,
		State:         mb.State,
		Country:       mb.Country,
		LeadPastor:    mb.LeadPastor,
		ContactNumber: mb.ContactNumber,
		Email:         mb.Email,
		CreatedBy:     mb.CreatedBy,
		CreatedAt:     mb.CreatedAt,
		UpdatedAt:     mb.UpdatedAt,
	}
}

func (r *BranchRepository) Create(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := toMongoBranch(b)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBranchExists
		}
		return nil, fmt.Errorf("insert branch: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BranchRepository) FindByID(ctx context.Context, id string) (*domain.Branch, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBranchNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBranch
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, fmt.Errorf("find branch: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BranchRepository) FindByName(ctx context.Context, name string) (*domain.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBranch
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, fmt.Errorf("find branch by name: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BranchRepository) Update(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return nil, domain.ErrBranchNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoBranch(b)
	update := bson.M{"$set": bson.M{
		"name":           doc.Name,
		"address":        doc.Address,
		"city":           doc.City,
		"state":          doc.State,
		"country":        doc.Country,
		"lead_pastor":    doc.LeadPastor,
		"contact_number": doc.ContactNumber,
		"email":          doc.Email,
		"updated_at":     time.Now().UTC(),
	}}

	var updated mongoBranch
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBranchNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBranchExists
		}
		return nil, fmt.Errorf("update branch: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *BranchRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBranchNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBranchNotFound
	}
	return nil
}

func (r *BranchRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Branch, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count branches: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list branches: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBranch
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode branches: %w", err)
	}

	out := make([]domain.Branch, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, total, nil
}

// EnsureIndexes creates the unique name index.
func (r *BranchRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

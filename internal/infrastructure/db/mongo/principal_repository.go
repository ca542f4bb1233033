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

const collectionPrincipals = "principals"

// PrincipalRepository persists principals in a single collection; the role
// field discriminates admins from members. The unique index on email is the
// correctness guarantee behind the service-level duplicate check.
type PrincipalRepository struct {
	col *mongo.Collection
}

func NewPrincipalRepository(db *mongo.Database) *PrincipalRepository {
	return &PrincipalRepository{col: db.Collection(collectionPrincipals)}
}

type mongoAddress struct {
	Street  string `bson:"street,omitempty"`
	City    string `bson:"city,omitempty"`
	State   string `bson:"state,omitempty"`
	ZipCode string `bson:"zip_code,omitempty"`
}

type mongoPrincipal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Department   string             `bson:"department,omitempty"`
	PhoneNumber  string             `bson:"phone_number,omitempty"`
	Address      mongoAddress       `bson:"address,omitempty"`
	ChurchBranch string             `bson:"church_branch,omitempty"`
	Country      string             `bson:"country,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toMongoPrincipal(p *domain.Principal) mongoPrincipal {
	return mongoPrincipal{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		Department:   p.Department,
		PhoneNumber:  p.PhoneNumber,
		Address: mongoAddress{
			Street:  p.Address.Street,
			City:    p.Address.City,
			State:   p.Address.State,
			ZipCode: p.Address.ZipCode,
		},
		ChurchBranch: p.ChurchBranch,
		Country:      p.Country,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (mp mongoPrincipal) toDomain() *domain.Principal {
	return &domain.Principal{
		ID:           mp.ID.Hex(),
		Username:     mp.Username,
		Email:        mp.Email,
		PasswordHash: mp.PasswordHash,
		Role:         mp.Role,
		Department:   mp.Department,
		PhoneNumber:  mp.PhoneNumber,
		Address: domain.Address{
			Street:  mp.Address.Street,
			City:    mp.Address.City,
			State:   mp.Address.State,
			ZipCode: mp.Address.ZipCode,
		},
		ChurchBranch: mp.ChurchBranch,
		Country:      mp.Country,
		CreatedAt:    mp.CreatedAt,
		UpdatedAt:    mp.UpdatedAt,
	}
}

func (r *PrincipalRepository) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := toMongoPrincipal(p)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert principal: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PrincipalRepository) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPrincipal
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("find principal by email: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PrincipalRepository) FindByID(ctx context.Context, id string) (*domain.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPrincipal
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PrincipalRepository) Update(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoPrincipal(p)
	doc.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"username":      doc.Username,
		"password_hash": doc.PasswordHash,
		"role":          doc.Role,
		"department":    doc.Department,
		"phone_number":  doc.PhoneNumber,
		"address":       doc.Address,
		"church_branch": doc.ChurchBranch,
		"country":       doc.Country,
		"updated_at":    doc.UpdatedAt,
	}}

	var updated mongoPrincipal
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrincipalNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update principal: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *PrincipalRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPrincipalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete principal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

func (r *PrincipalRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Principal, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count principals: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list principals: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPrincipal
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode principals: %w", err)
	}

	out := make([]domain.Principal, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, total, nil
}

// MissingIDs returns the subset of ids with no backing document, preserving
// input order. Malformed ids count as missing.
func (r *PrincipalRepository) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	found := make(map[string]struct{}, len(oids))
	if len(oids) > 0 {
		cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}},
			options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return nil, fmt.Errorf("check principal ids: %w", err)
		}
		defer cur.Close(ctx)

		var docs []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("decode principal ids: %w", err)
		}
		for _, d := range docs {
			found[d.ID.Hex()] = struct{}{}
		}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// EnsureIndexes creates the unique email index.
func (r *PrincipalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

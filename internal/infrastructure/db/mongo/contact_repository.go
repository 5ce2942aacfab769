package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contactkeep/contacts-api/internal/core/domain"
)

const contactCollection = "contacts"

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(contactCollection)}
}

type mongoContact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	BirthDate time.Time          `bson:"birth_date"`
	Notes     string             `bson:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func contactToDomain(mc mongoContact) *domain.Contact {
	return &domain.Contact{
		ID:        mc.ID.Hex(),
		OwnerID:   mc.OwnerID,
		FirstName: mc.FirstName,
		LastName:  mc.LastName,
		Email:     mc.Email,
		Phone:     mc.Phone,
		BirthDate: mc.BirthDate,
		Notes:     mc.Notes,
		CreatedAt: mc.CreatedAt,
		UpdatedAt: mc.UpdatedAt,
	}
}

// ownedFilter scopes a query to the owning user. Invalid ids are reported as
// not-found rather than as a parse error so the API cannot be probed.
func ownedFilter(ownerID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContactNotFound
	}
	return bson.M{"_id": oid, "owner_id": ownerID}, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoContact{
		OwnerID:   c.OwnerID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		BirthDate: c.BirthDate,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return contactToDomain(doc), nil
}

func (r *ContactRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	var mc mongoContact
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return contactToDomain(mc), nil
}

func (r *ContactRepository) List(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Contact, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, skip, limit)
}

// Search matches query case-insensitively against first name, last name and
// email. The query is quoted so user input cannot inject regex syntax.
func (r *ContactRepository) Search(ctx context.Context, ownerID, query string, skip, limit int) ([]*domain.Contact, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"owner_id": ownerID,
		"$or": bson.A{
			bson.M{"first_name": re},
			bson.M{"last_name": re},
			bson.M{"email": re},
		},
	}
	return r.find(ctx, filter, skip, limit)
}

func (r *ContactRepository) Update(ctx context.Context, ownerID, id string, patch domain.ContactPatch) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.BirthDate != nil {
		set["birth_date"] = *patch.BirthDate
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoContact
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return contactToDomain(mc), nil
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	var mc mongoContact
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return contactToDomain(mc), nil
}

// birthdayWindowFilter builds the $expr predicate matching birth dates whose
// month and day fall inside the [from, to] window, ignoring the year. A window
// inside one month is a single day range; one that crosses a month boundary
// splits into the tail of the first month and the head of the second.
func birthdayWindowFilter(from, to time.Time) bson.M {
	month := bson.M{"$month": "$birth_date"}
	day := bson.M{"$dayOfMonth": "$birth_date"}

	if from.Month() == to.Month() {
		return bson.M{"$and": bson.A{
			bson.M{"$eq": bson.A{month, int(from.Month())}},
			bson.M{"$gte": bson.A{day, from.Day()}},
			bson.M{"$lte": bson.A{day, to.Day()}},
		}}
	}

	return bson.M{"$or": bson.A{
		bson.M{"$and": bson.A{
			bson.M{"$eq": bson.A{month, int(from.Month())}},
			bson.M{"$gte": bson.A{day, from.Day()}},
		}},
		bson.M{"$and": bson.A{
			bson.M{"$eq": bson.A{month, int(to.Month())}},
			bson.M{"$lte": bson.A{day, to.Day()}},
		}},
	}}
}

// BirthdaysBetween matches on the month and day of birth_date, ignoring the
// year, for the [from, to] window.
func (r *ContactRepository) BirthdaysBetween(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Contact, error) {
	filter := bson.M{"owner_id": ownerID, "$expr": birthdayWindowFilter(from, to)}
	return r.find(ctx, filter, 0, 0)
}

func (r *ContactRepository) find(ctx context.Context, filter bson.M, skip, limit int) ([]*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}})
	if skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	contacts := make([]*domain.Contact, 0)
	for cur.Next(ctx) {
		var mc mongoContact
		if err := cur.Decode(&mc); err != nil {
			return nil, err
		}
		contacts = append(contacts, contactToDomain(mc))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

// EnsureIndexes creates the indexes backing owner scoping and search.
func (r *ContactRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "birth_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

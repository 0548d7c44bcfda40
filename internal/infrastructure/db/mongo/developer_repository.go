package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

const developerCollection = "developers"

type MongoDeveloperRepository struct {
	coll *mongo.Collection
}

func NewDeveloperRepository(db *mongo.Database) *MongoDeveloperRepository {
	return &MongoDeveloperRepository{coll: db.Collection(developerCollection)}
}

type mongoDeveloper struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Founder      string             `bson:"founder"`
	Founded      time.Time          `bson:"founded"`
	Headquarters string             `bson:"headquarters"`
	OwnerUserID  string             `bson:"user_id"`
	Photo        []byte             `bson:"photo"`
	Description  string             `bson:"description"`
}

func (md *mongoDeveloper) toDomain() *domain.Developer {
	return &domain.Developer{
		ID:           md.ID.Hex(),
		Name:         md.Name,
		Founder:      md.Founder,
		Founded:      md.Founded,
		Headquarters: md.Headquarters,
		OwnerUserID:  md.OwnerUserID,
		Photo:        domain.Photo(md.Photo),
		Description:  md.Description,
	}
}

func fromDomainDeveloper(dev *domain.Developer) mongoDeveloper {
	return mongoDeveloper{
		Name:         dev.Name,
		Founder:      dev.Founder,
		Founded:      dev.Founded,
		Headquarters: dev.Headquarters,
		OwnerUserID:  dev.OwnerUserID,
		Photo:        dev.Photo,
		Description:  dev.Description,
	}
}

func (r *MongoDeveloperRepository) Create(ctx context.Context, dev *domain.Developer) (*domain.Developer, error) {
	res, err := r.coll.InsertOne(ctx, fromDomainDeveloper(dev))
	if err != nil {
		return nil, fmt.Errorf("insert developer: %w", err)
	}
	created := *dev
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoDeveloperRepository) FindByID(ctx context.Context, id string) (*domain.Developer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDeveloperNotFound
	}

	var md mongoDeveloper
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDeveloperNotFound
		}
		return nil, fmt.Errorf("find developer: %w", err)
	}
	return md.toDomain(), nil
}

func (r *MongoDeveloperRepository) FindAll(ctx context.Context) ([]*domain.Developer, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoDeveloperRepository) FindByOwner(ctx context.Context, userID string) ([]*domain.Developer, error) {
	return r.findMany(ctx, bson.M{"user_id": userID})
}

func (r *MongoDeveloperRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Developer, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}
	defer cur.Close(ctx)

	var devs []*domain.Developer
	for cur.Next(ctx) {
		var md mongoDeveloper
		if err := cur.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode developer: %w", err)
		}
		devs = append(devs, md.toDomain())
	}
	return devs, cur.Err()
}

func (r *MongoDeveloperRepository) Update(ctx context.Context, id string, dev *domain.Developer) (*domain.Developer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDeveloperNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":         dev.Name,
		"founder":      dev.Founder,
		"founded":      dev.Founded,
		"headquarters": dev.Headquarters,
		"user_id":      dev.OwnerUserID,
		"photo":        []byte(dev.Photo),
		"description":  dev.Description,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update developer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrDeveloperNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoDeveloperRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDeveloperNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete developer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDeveloperNotFound
	}
	return nil
}

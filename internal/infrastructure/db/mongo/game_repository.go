package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

const gameCollection = "games"

type MongoGameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *MongoGameRepository {
	return &MongoGameRepository{coll: db.Collection(gameCollection)}
}

type mongoGame struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Title             string             `bson:"title"`
	Genre             string             `bson:"genre"`
	Platform          string             `bson:"platform"`
	ControllerSupport bool               `bson:"controller_support"`
	Language          string             `bson:"language"`
	PlayerType        string             `bson:"player_type"`
	DeveloperID       string             `bson:"developer_id"`
	Photo             []byte             `bson:"photo"`
	Description       string             `bson:"description"`
}

func (mg *mongoGame) toDomain() *domain.Game {
	return &domain.Game{
		ID:                mg.ID.Hex(),
		Title:             mg.Title,
		Genre:             mg.Genre,
		Platform:          mg.Platform,
		ControllerSupport: mg.ControllerSupport,
		Language:          mg.Language,
		PlayerType:        mg.PlayerType,
		DeveloperID:       mg.DeveloperID,
		Photo:             domain.Photo(mg.Photo),
		Description:       mg.Description,
	}
}

func (r *MongoGameRepository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	doc := mongoGame{
		Title:             game.Title,
		Genre:             game.Genre,
		Platform:          game.Platform,
		ControllerSupport: game.ControllerSupport,
		Language:          game.Language,
		PlayerType:        game.PlayerType,
		DeveloperID:       game.DeveloperID,
		Photo:             game.Photo,
		Description:       game.Description,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}
	created := *game
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoGameRepository) FindByID(ctx context.Context, id string) (*domain.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	var mg mongoGame
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *MongoGameRepository) FindAll(ctx context.Context) ([]*domain.Game, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoGameRepository) FindByDeveloper(ctx context.Context, developerID string) ([]*domain.Game, error) {
	return r.findMany(ctx, bson.M{"developer_id": developerID})
}

func (r *MongoGameRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Game, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer cur.Close(ctx)

	var games []*domain.Game
	for cur.Next(ctx) {
		var mg mongoGame
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, mg.toDomain())
	}
	return games, cur.Err()
}

func (r *MongoGameRepository) Update(ctx context.Context, id string, game *domain.Game) (*domain.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":              game.Title,
		"genre":              game.Genre,
		"platform":           game.Platform,
		"controller_support": game.ControllerSupport,
		"language":           game.Language,
		"player_type":        game.PlayerType,
		"developer_id":       game.DeveloperID,
		"photo":              []byte(game.Photo),
		"description":        game.Description,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrGameNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoGameRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGameNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *MongoGameRepository) DeleteByDeveloper(ctx context.Context, developerID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"developer_id": developerID})
	if err != nil {
		return 0, fmt.Errorf("delete games by developer: %w", err)
	}
	return res.DeletedCount, nil
}

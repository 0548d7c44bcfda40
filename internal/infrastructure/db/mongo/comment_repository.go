package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

const commentCollection = "comments"

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentCollection)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	GameID    string             `bson:"game_id"`
	UserID    string             `bson:"user_id"`
	CreatedAt int64              `bson:"created_at"`
}

func (mc *mongoComment) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        mc.ID.Hex(),
		Title:     mc.Title,
		Body:      mc.Body,
		GameID:    mc.GameID,
		UserID:    mc.UserID,
		CreatedAt: unixToTime(mc.CreatedAt),
	}
}

func (r *MongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := mongoComment{
		Title:     comment.Title,
		Body:      comment.Body,
		GameID:    comment.GameID,
		UserID:    comment.UserID,
		CreatedAt: comment.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	created := *comment
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var mc mongoComment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoCommentRepository) FindAll(ctx context.Context) ([]*domain.Comment, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MongoCommentRepository) FindByGame(ctx context.Context, gameID string) ([]*domain.Comment, error) {
	return r.findMany(ctx, bson.M{"game_id": gameID})
}

func (r *MongoCommentRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Comment, error) {
	return r.findMany(ctx, bson.M{"user_id": userID})
}

func (r *MongoCommentRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Comment, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	for cur.Next(ctx) {
		var mc mongoComment
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, mc.toDomain())
	}
	return comments, cur.Err()
}

func (r *MongoCommentRepository) Update(ctx context.Context, id string, comment *domain.Comment) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	update := bson.M{"$set": bson.M{
		"title": comment.Title,
		"body":  comment.Body,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCommentNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *MongoCommentRepository) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"game_id": gameID})
	if err != nil {
		return 0, fmt.Errorf("delete comments by game: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoCommentRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete comments by user: %w", err)
	}
	return res.DeletedCount, nil
}

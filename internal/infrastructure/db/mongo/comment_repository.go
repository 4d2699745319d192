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

	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

const collectionComments = "comments"

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

type commentDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Sound   primitive.ObjectID `bson:"sound"`
	Author  primitive.ObjectID `bson:"author"`
	Comment string             `bson:"comment"`
	Date    time.Time          `bson:"date"`
}

func (d *commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID.Hex(),
		SoundID:   d.Sound.Hex(),
		AuthorID:  d.Author.Hex(),
		Text:      d.Comment,
		CreatedAt: d.Date,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	soundOID, err := primitive.ObjectIDFromHex(c.SoundID)
	if err != nil {
		return nil, domain.ErrSoundNotFound
	}
	authorOID, err := primitive.ObjectIDFromHex(c.AuthorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := commentDoc{
		Sound:   soundOID,
		Author:  authorOID,
		Comment: c.Text,
		Date:    c.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc commentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) List(ctx context.Context, filter ports.ListCommentsFilter) ([]*domain.Comment, error) {
	query := bson.M{}

	if filter.SoundID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.SoundID)
		if err != nil {
			return nil, domain.ErrSoundNotFound
		}
		query["sound"] = oid
	}
	if filter.AuthorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.AuthorID)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		query["author"] = oid
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, doc.toDomain())
	}
	return comments, cur.Err()
}

func (r *CommentRepository) UpdateText(ctx context.Context, id, text string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"comment": text}})
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteBySound(ctx context.Context, soundID string) error {
	oid, err := primitive.ObjectIDFromHex(soundID)
	if err != nil {
		return domain.ErrSoundNotFound
	}
	return r.deleteMany(ctx, bson.M{"sound": oid})
}

func (r *CommentRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	return r.deleteMany(ctx, bson.M{"author": oid})
}

func (r *CommentRepository) DeleteBySounds(ctx context.Context, soundIDs []string) error {
	oids := make([]primitive.ObjectID, 0, len(soundIDs))
	for _, id := range soundIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return domain.ErrSoundNotFound
		}
		oids = append(oids, oid)
	}
	return r.deleteMany(ctx, bson.M{"sound": bson.M{"$in": oids}})
}

func (r *CommentRepository) deleteMany(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}

func (r *CommentRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sound", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

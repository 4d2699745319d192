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

const collectionSounds = "sounds"

type SoundRepository struct {
	col *mongo.Collection
}

func NewSoundRepository(db *mongo.Database) *SoundRepository {
	return &SoundRepository{col: db.Collection(collectionSounds)}
}

type soundDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	User        primitive.ObjectID   `bson:"user"`
	Location    domain.GeoPoint      `bson:"location"`
	Category    primitive.ObjectID   `bson:"category,omitempty"`
	Sound       primitive.Binary     `bson:"sound"`
	ContentType string               `bson:"content_type,omitempty"`
	Comments    []primitive.ObjectID `bson:"comments"`
	Date        time.Time            `bson:"date"`
}

func (d *soundDoc) toDomain() *domain.Sound {
	commentIDs := make([]string, 0, len(d.Comments))
	for _, oid := range d.Comments {
		commentIDs = append(commentIDs, oid.Hex())
	}

	s := &domain.Sound{
		ID:          d.ID.Hex(),
		OwnerID:     d.User.Hex(),
		Location:    d.Location,
		Audio:       d.Sound.Data,
		ContentType: d.ContentType,
		CommentIDs:  commentIDs,
		CreatedAt:   d.Date,
	}
	if !d.Category.IsZero() {
		s.CategoryID = d.Category.Hex()
	}
	return s
}

func (r *SoundRepository) Create(ctx context.Context, s *domain.Sound) (*domain.Sound, error) {
	userOID, err := primitive.ObjectIDFromHex(s.OwnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	catOID, err := primitive.ObjectIDFromHex(s.CategoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := soundDoc{
		User:        userOID,
		Location:    s.Location,
		Category:    catOID,
		Sound:       primitive.Binary{Data: s.Audio},
		ContentType: s.ContentType,
		Comments:    []primitive.ObjectID{},
		Date:        s.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert sound: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CommentIDs = []string{}
	return &created, nil
}

func (r *SoundRepository) FindByID(ctx context.Context, id string) (*domain.Sound, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSoundNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc soundDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSoundNotFound
		}
		return nil, fmt.Errorf("find sound: %w", err)
	}
	return doc.toDomain(), nil
}

// List executes a validated filter. All constraints are ANDed; results come
// back newest first.
func (r *SoundRepository) List(ctx context.Context, filter ports.ListSoundsFilter) ([]*domain.Sound, error) {
	query := bson.M{}

	if filter.Near != nil {
		query["location"] = bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{filter.Near.Lng, filter.Near.Lat},
				},
				"$maxDistance": filter.Near.RadiusMeters,
			},
		}
	}
	if filter.OwnerID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.OwnerID)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		query["user"] = oid
	}
	if filter.CategoryID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.CategoryID)
		if err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		query["category"] = oid
	}
	if !filter.Since.IsZero() {
		query["date"] = bson.M{"$gte": filter.Since}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit)).
		SetProjection(bson.M{"sound": 0}) // audio bytes stay out of list queries

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list sounds: %w", err)
	}
	defer cur.Close(ctx)

	var sounds []*domain.Sound
	for cur.Next(ctx) {
		var doc soundDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode sound: %w", err)
		}
		sounds = append(sounds, doc.toDomain())
	}
	return sounds, cur.Err()
}

func (r *SoundRepository) UpdateCategory(ctx context.Context, id, categoryID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSoundNotFound
	}
	catOID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return domain.ErrCategoryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"category": catOID}})
	if err != nil {
		return fmt.Errorf("update sound category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSoundNotFound
	}
	return nil
}

func (r *SoundRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSoundNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete sound: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSoundNotFound
	}
	return nil
}

func (r *SoundRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user": oid}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list sound ids: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode sound id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

func (r *SoundRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.DeleteMany(ctx, bson.M{"user": oid})
	if err != nil {
		return fmt.Errorf("delete sounds by owner: %w", err)
	}
	return nil
}

func (r *SoundRepository) PushCommentID(ctx context.Context, soundID, commentID string) error {
	return r.updateCommentList(ctx, soundID, commentID, "$push")
}

func (r *SoundRepository) PullCommentID(ctx context.Context, soundID, commentID string) error {
	return r.updateCommentList(ctx, soundID, commentID, "$pull")
}

func (r *SoundRepository) updateCommentList(ctx context.Context, soundID, commentID, op string) error {
	oid, err := primitive.ObjectIDFromHex(soundID)
	if err != nil {
		return domain.ErrSoundNotFound
	}
	commentOID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateByID(ctx, oid, bson.M{op: bson.M{"comments": commentOID}})
	if err != nil {
		return fmt.Errorf("update sound comments: %w", err)
	}
	return nil
}

func (r *SoundRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/urlmin/minify-system/internal/core/domain"
)

const collectionLinks = "url_stats"

// LinkRepository persists short-link records. All counter updates go through
// server-side $inc so concurrent writers never lose increments.
type LinkRepository struct {
	col *mongo.Collection
}

func NewLinkRepository(db *mongo.Database) *LinkRepository {
	return &LinkRepository{col: db.Collection(collectionLinks)}
}

// Upsert performs the minify write for (url, userID) as one atomic
// FindOneAndUpdate: $inc bumps minify_count on an existing record, and
// $setOnInsert installs candidateMinified with redirect_count=0 on first
// creation. Returns the post-update record. Two racing first-minifies hit
// the unique (url, user_id) index; the loser's retry lands on the $inc
// branch, so exactly one minified URL ever exists per pair.
func (r *LinkRepository) Upsert(ctx context.Context, url, userID, candidateMinified string) (*domain.UrlStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"url": url, "user_id": userID}
	update := bson.M{
		"$inc":         bson.M{"minify_count": 1},
		"$setOnInsert": bson.M{"minified_url": candidateMinified, "redirect_count": 0},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var rec domain.UrlStats
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
	if err == nil {
		return &rec, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("upsert link: %w", err)
	}

	// Lost the creation race; the record now exists, retry as plain update.
	opts.SetUpsert(false)
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec); err != nil {
		return nil, fmt.Errorf("upsert link retry: %w", err)
	}
	return &rec, nil
}

// IncrementRedirects atomically bumps redirect_count for the exact minified
// URL.
func (r *LinkRepository) IncrementRedirects(ctx context.Context, minifiedURL string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"minified_url": minifiedURL},
		bson.M{"$inc": bson.M{"redirect_count": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment redirects: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

// Find retrieves one record by natural key.
func (r *LinkRepository) Find(ctx context.Context, url, userID string) (*domain.UrlStats, error) {
	return r.findOne(ctx, bson.M{"url": url, "user_id": userID})
}

// FindByMinified retrieves one record by its exact minified URL.
func (r *LinkRepository) FindByMinified(ctx context.Context, minifiedURL string) (*domain.UrlStats, error) {
	return r.findOne(ctx, bson.M{"minified_url": minifiedURL})
}

func (r *LinkRepository) findOne(ctx context.Context, filter bson.M) (*domain.UrlStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.UrlStats
	if err := r.col.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link: %w", err)
	}
	return &rec, nil
}

// FindByUser retrieves every record owned by userID.
func (r *LinkRepository) FindByUser(ctx context.Context, userID string) ([]domain.UrlStats, error) {
	return r.findMany(ctx, bson.M{"user_id": userID})
}

// FindAll retrieves every record.
func (r *LinkRepository) FindAll(ctx context.Context) ([]domain.UrlStats, error) {
	return r.findMany(ctx, bson.M{})
}

// SearchByURLPattern retrieves records whose canonical URL matches the
// pattern, case-insensitive.
func (r *LinkRepository) SearchByURLPattern(ctx context.Context, pattern string) ([]domain.UrlStats, error) {
	filter := bson.M{}
	if pattern != "" {
		filter["url"] = bson.M{"$regex": pattern, "$options": "i"}
	}
	return r.findMany(ctx, filter)
}

func (r *LinkRepository) findMany(ctx context.Context, filter bson.M) ([]domain.UrlStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find links: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []domain.UrlStats
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("find links: %w", err)
	}
	return recs, nil
}

// Delete removes one record by natural key.
func (r *LinkRepository) Delete(ctx context.Context, url, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"url": url, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

// EnsureIndexes creates the natural-key and minified-URL unique constraints.
func (r *LinkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "url", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "minified_url", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

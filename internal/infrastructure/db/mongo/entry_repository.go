package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devsquad/devlog-api/internal/core/domain"
	"github.com/devsquad/devlog-api/internal/core/ports"
)

const entriesCollection = "entries"

type EntryRepository struct {
	coll *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{coll: db.Collection(entriesCollection)}
}

type mongoEntry struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           primitive.ObjectID `bson:"user_id"`
	WorkDone         string             `bson:"work_done"`
	Blockers         string             `bson:"blockers"`
	Learnings        string             `bson:"learnings"`
	GithubCommitLink string             `bson:"github_commit_link,omitempty"`
	Date             time.Time          `bson:"date"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
	// Author is populated by the $lookup stage on reads.
	Author []mongoAuthor `bson:"author,omitempty"`
}

type mongoAuthor struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

func (m *mongoEntry) toDomain() *domain.Entry {
	e := &domain.Entry{
		ID:               m.ID.Hex(),
		UserID:           m.UserID.Hex(),
		WorkDone:         m.WorkDone,
		Blockers:         m.Blockers,
		Learnings:        m.Learnings,
		GithubCommitLink: m.GithubCommitLink,
		Date:             m.Date,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if len(m.Author) > 0 {
		e.AuthorName = m.Author[0].Name
	}
	return e
}

// lookupAuthor joins the owning user's display name onto entry reads.
var lookupAuthor = bson.D{{Key: "$lookup", Value: bson.M{
	"from":         usersCollection,
	"localField":   "user_id",
	"foreignField": "_id",
	"as":           "author",
	"pipeline": []bson.M{
		{"$project": bson.M{"name": 1}},
	},
}}}

// Create inserts the entry, then reads it back through the author lookup so
// the returned view carries the owner's display name.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	ownerID, err := primitive.ObjectIDFromHex(entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q", entry.UserID)
	}

	insertCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEntry{
		UserID:           ownerID,
		WorkDone:         entry.WorkDone,
		Blockers:         entry.Blockers,
		Learnings:        entry.Learnings,
		GithubCommitLink: entry.GithubCommitLink,
		Date:             entry.Date,
		CreatedAt:        entry.CreatedAt,
		UpdatedAt:        entry.UpdatedAt,
	}

	res, err := r.coll.InsertOne(insertCtx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return r.FindByID(ctx, res.InsertedID.(primitive.ObjectID).Hex())
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
		lookupAuthor,
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find entry: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("find entry: %w", err)
		}
		return nil, domain.ErrEntryNotFound
	}

	var me mongoEntry
	if err := cursor.Decode(&me); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return me.toDomain(), nil
}

// List returns every entry newest date first. The _id tie-break keeps the
// sequence stable for equal dates (ObjectIDs rise with insertion order).
func (r *EntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}}},
		lookupAuthor,
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*domain.Entry
	for cursor.Next(ctx) {
		var me mongoEntry
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, me.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Update applies a partial patch; only present fields overwrite. The owner
// reference is never part of the $set document.
func (r *EntryRepository) Update(ctx context.Context, id string, patch ports.UpdateEntryInput) (*domain.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.WorkDone != nil {
		set["work_done"] = *patch.WorkDone
	}
	if patch.Blockers != nil {
		set["blockers"] = *patch.Blockers
	}
	if patch.Learnings != nil {
		set["learnings"] = *patch.Learnings
	}
	if patch.GithubCommitLink != nil {
		set["github_commit_link"] = *patch.GithubCommitLink
	}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(updateCtx, oid, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEntryNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": oid})
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

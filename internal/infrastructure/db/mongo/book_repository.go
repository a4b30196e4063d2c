package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

const booksCollection = "books"

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(booksCollection)}
}

type mongoBook struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	Category      string             `bson:"category"`
	Price         float64            `bson:"price"`
	Rating        float64            `bson:"rating"`
	PublishedDate time.Time          `bson:"publishedDate"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (b mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:            b.ID.Hex(),
		Title:         b.Title,
		Author:        b.Author,
		Category:      b.Category,
		Price:         b.Price,
		Rating:        b.Rating,
		PublishedDate: b.PublishedDate.UTC(),
		CreatedAt:     b.CreatedAt.UTC(),
	}
}

// Create inserts a new book document with a fresh ObjectID.
func (r *BookRepository) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBook{
		ID:            primitive.NewObjectID(),
		Title:         b.Title,
		Author:        b.Author,
		Category:      b.Category,
		Price:         b.Price,
		Rating:        b.Rating,
		PublishedDate: b.PublishedDate.Truncate(time.Millisecond),
		CreatedAt:     b.CreatedAt.Truncate(time.Millisecond),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoBook
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns a page of books matching filter and the total match count.
func (r *BookRepository) List(ctx context.Context, filter ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildListFilter(filter)

	cur, err := r.col.Find(ctx, query, buildFindOptions(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBook
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode books: %w", err)
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	books := make([]*domain.Book, len(docs))
	for i, d := range docs {
		books[i] = d.toDomain()
	}
	return books, total, nil
}

// Replace sets every writable field in a single find-and-modify, so a
// missing ID results in no write at all.
func (r *BookRepository) Replace(ctx context.Context, id string, b *domain.Book) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":         b.Title,
		"author":        b.Author,
		"category":      b.Category,
		"price":         b.Price,
		"rating":        b.Rating,
		"publishedDate": b.PublishedDate.Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoBook
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list filters and default sort.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "rating", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildListFilter ANDs together every non-empty constraint.
func buildListFilter(f ports.ListBooksFilter) bson.M {
	query := bson.M{}
	if f.Author != "" {
		query["author"] = f.Author
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.MinRating != nil {
		query["rating"] = bson.M{"$gte": *f.MinRating}
	}
	if f.Title != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}
	}
	return query
}

func buildFindOptions(f ports.ListBooksFilter) *options.FindOptions {
	field, dir := f.Sort.Field, 1
	if f.Sort.Desc {
		dir = -1
	}
	if field == "" {
		field, dir = "createdAt", -1
	}
	sort := bson.D{{Key: field, Value: dir}}
	if field != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: dir})
	}

	return options.Find().
		SetSort(sort).
		SetSkip(f.Skip).
		SetLimit(f.Limit)
}

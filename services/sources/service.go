// Package sources holds the fixed allow-list of scrapable sources. The
// registry is seeded from a constant table and never accepts
// user-supplied URLs.
package sources

import (
	"context"
	"database/sql"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/timezone"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/services/sources/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/sources")

const (
	TypeApi  = "api"
	TypeHtml = "html"
)

type Source struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	BaseUrl string `json:"base_url"`
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
}

var defaultSources = []Source{
	{Key: "posts", Label: "Posts", Type: TypeApi, BaseUrl: "https://jsonplaceholder.typicode.com", Path: "/posts"},
	{Key: "users", Label: "Users", Type: TypeApi, BaseUrl: "https://reqres.in", Path: "/api/users"},
	{Key: "bitcoin", Label: "Bitcoin", Type: TypeApi, BaseUrl: "https://api.coindesk.com", Path: "/v1/bpi/currentprice.json"},
	{Key: "quotes", Label: "Quotes", Type: TypeHtml, BaseUrl: "https://quotes.toscrape.com", Path: "/"},
	{Key: "books", Label: "Books", Type: TypeHtml, BaseUrl: "https://books.toscrape.com", Path: "/"},
}

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

// Seed upserts the predefined sources. Safe to run on every startup:
// existing rows keep their enabled flag and creation time.
func (s Service) Seed(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Seed")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	now := timezone.Now().Unix()
	for _, src := range defaultSources {
		err := txqry.UpsertSource(ctx, db.UpsertSourceParams{
			Key:       src.Key,
			Label:     src.Label,
			Type:      src.Type,
			BaseUrl:   src.BaseUrl,
			Path:      src.Path,
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return tx.Commit()
}

func (s Service) List(ctx context.Context) ([]Source, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	rows, err := s.qry.ListSources(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := make([]Source, len(rows))
	for i, r := range rows {
		out[i] = Source{
			Key:     r.Key,
			Label:   r.Label,
			Type:    r.Type,
			BaseUrl: r.BaseUrl,
			Path:    r.Path,
			Enabled: r.Enabled,
		}
	}
	return out, nil
}

func (s Service) SetEnabled(ctx context.Context, key string, enabled bool) error {
	ctx, span := tracer.Start(ctx, "SetEnabled")
	defer span.End()
	span.SetAttributes(attribute.String("key", key), attribute.Bool("enabled", enabled))

	if _, err := s.qry.GetSource(ctx, key); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	err := s.qry.SetSourceEnabled(ctx, db.SetSourceEnabledParams{
		Enabled:   enabled,
		UpdatedAt: timezone.Now().Unix(),
		Key:       key,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

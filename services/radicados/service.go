// Package radicados runs batches of claim-status lookups against the
// insurer portal, caching recent results so repeated batches don't
// hammer the portal.
package radicados

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/scrapers/bolivar"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/timezone"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/radicados")

const (
	cacheTtl     = time.Minute * 5
	cacheCleanup = time.Minute * 10
)

// BatchRequest is one batch of lookups under a single portal session.
// Server-auth mode never carries credential material in the request;
// the service uses the credentials it was configured with.
type BatchRequest struct {
	CookieHeader  string
	UseServerAuth bool
	Radicados     []string
}

type Service struct {
	cache *cache.Cache
	// login material for server-auth batches, sourced from process
	// configuration at startup
	creds bolivar.Credentials
	// swapped out by tests to point sessions at a fake portal
	newClient func(bolivar.ClientOptions) (*bolivar.Client, error)
}

func NewService(creds bolivar.Credentials) Service {
	return Service{
		cache:     cache.New(cacheTtl, cacheCleanup),
		creds:     creds,
		newClient: bolivar.NewClient,
	}
}

// authFingerprint scopes cache entries to the session identity, so one
// caller's results are never served to a caller with different
// credentials. The raw cookie never becomes a cache key.
func authFingerprint(cookieHeader string, creds bolivar.Credentials) string {
	h := sha256.New()
	if cookieHeader != "" {
		h.Write([]byte("cookie\x00"))
		h.Write([]byte(cookieHeader))
	} else {
		h.Write([]byte("server\x00"))
		h.Write([]byte(creds.UserId))
		h.Write([]byte{0})
		h.Write([]byte(creds.Poliza))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// QueryBatch resolves every radicado in the request, serving from the
// result cache where possible. The portal session is created lazily so
// a fully cached batch makes no network requests at all. Configuration
// and authentication errors abort the batch; anything else only fails
// the individual radicado.
func (s Service) QueryBatch(ctx context.Context, req BatchRequest) (bolivar.BatchResult, error) {
	ctx, span := tracer.Start(ctx, "QueryBatch")
	defer span.End()

	fetchedAt := timezone.Now()
	ids := bolivar.NormalizeRadicados(req.Radicados)
	span.SetAttributes(attribute.Int("radicados", len(ids)))
	if len(ids) == 0 {
		return bolivar.BatchResult{}, fmt.Errorf(
			"%w: no radicados supplied", bolivar.ErrConfiguration,
		)
	}

	fingerprint := authFingerprint(req.CookieHeader, s.creds)

	var client *bolivar.Client
	results := make([]bolivar.Result, 0, len(ids))
	for _, id := range ids {
		key := fingerprint + "|" + id
		if cached, ok := s.cache.Get(key); ok {
			results = append(results, cached.(bolivar.Result))
			continue
		}

		if client == nil {
			var err error
			client, err = s.newClient(bolivar.ClientOptions{
				CookieHeader:  req.CookieHeader,
				UseServerAuth: req.UseServerAuth,
				Credentials:   s.creds,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return bolivar.BatchResult{}, err
			}
		}

		res, err := client.QueryRadicado(ctx, id)
		if err != nil {
			if errors.Is(err, bolivar.ErrConfiguration) || errors.Is(err, bolivar.ErrAuthentication) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return bolivar.BatchResult{}, err
			}

			slog.WarnContext(ctx, "radicado query failed", "radicado", id, "err", err)
			results = append(results, bolivar.Result{
				Radicado:          id,
				OK:                false,
				EstadoNormalizado: bolivar.StatusNotFound,
				ConsultedAt:       timezone.Now(),
				Error:             err.Error(),
			})
			continue
		}

		s.cache.Set(key, res, cache.DefaultExpiration)
		results = append(results, res)
	}

	if req.CookieHeader != "" && allNotFound(results) {
		slog.WarnContext(ctx, "every radicado came back not found, the pasted session cookie may be stale")
	}

	return bolivar.BatchResult{
		FetchedAt: fetchedAt,
		Count:     len(results),
		Results:   results,
	}, nil
}

func allNotFound(results []bolivar.Result) bool {
	for _, res := range results {
		if res.EstadoNormalizado != bolivar.StatusNotFound {
			return false
		}
	}
	return len(results) > 0
}

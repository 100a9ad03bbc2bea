package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/forma-studio/forma/internal/app/system/status"
	"github.com/forma-studio/forma/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Mode reports how a published page was produced.
type Mode string

const (
	ModeFull        Mode = "full"
	ModeReduced     Mode = "reduced"
	ModePlaceholder Mode = "placeholder"
)

// retryDelay is the fixed pause between attempts. Variable for tests.
var retryDelay = 250 * time.Millisecond

// placeholderProjects is served when the database cannot answer at all,
// so the public site never renders an empty portfolio.
var placeholderProjects = []models.Project{
	{
		Title:    "Selected Works",
		Slug:     "selected-works",
		Category: "portfolio",
		Gallery:  []string{},
		Status:   status.Published,
	},
}

// PublishedPage returns one page of published projects for the public
// site, featured first then by sort order. A timeout is retried twice
// with a fixed delay; if the full query still cannot complete, a
// reduced query (projected fields, capped page) is attempted; as a last
// resort static placeholder data is returned with a nil error.
func (s *Store) PublishedPage(ctx context.Context, skip, limit int64, logger *zap.Logger) ([]models.Project, int64, Mode, error) {
	filter := bson.M{"status": status.Published}
	opts := options.Find().
		SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "sort_order", Value: 1}, {Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, 0, ModeFull, ctx.Err()
			}
		}
		items, err := s.Find(ctx, filter, opts)
		if err == nil {
			total, cerr := s.Count(ctx, filter)
			if cerr != nil {
				total = int64(len(items))
			}
			return items, total, ModeFull, nil
		}
		if !isTimeout(err) {
			return nil, 0, ModeFull, err
		}
		lastErr = err
		logger.Warn("published projects query timed out", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	// Reduced scope: only the fields the listing page needs, small page.
	reducedLimit := limit
	if reducedLimit > 12 {
		reducedLimit = 12
	}
	reduced := options.Find().
		SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "sort_order", Value: 1}}).
		SetLimit(reducedLimit).
		SetProjection(bson.M{"title": 1, "slug": 1, "cover_image": 1, "category": 1, "featured": 1, "status": 1})
	if items, err := s.Find(ctx, filter, reduced); err == nil {
		logger.Warn("serving reduced published projects page", zap.Int("count", len(items)))
		for i := range items {
			if items[i].Gallery == nil {
				items[i].Gallery = []string{}
			}
		}
		return items, int64(len(items)), ModeReduced, nil
	}

	logger.Error("serving placeholder projects", zap.Error(lastErr))
	out := make([]models.Project, len(placeholderProjects))
	copy(out, placeholderProjects)
	return out, int64(len(out)), ModePlaceholder, nil
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err)
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/catalog"
	"github.com/course-compass/course-compass-api/internal/dto"
	"github.com/course-compass/course-compass-api/internal/models"
)

type courseSearcher interface {
	Search(ctx context.Context, query catalog.SearchQuery) ([]models.Course, error)
	FindByIdentifier(ctx context.Context, identifier string) (*models.Course, error)
}

// SearchService fronts the upstream semantic search. Upstream failures never
// surface to the user as errors; a search that cannot be answered returns an
// empty result list.
type SearchService struct {
	client  courseSearcher
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewSearchService constructs a search service.
func NewSearchService(client courseSearcher, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{client: client, cache: cache, metrics: metrics, logger: logger}
}

// Search runs a free-text course search with optional department filters.
func (s *SearchService) Search(ctx context.Context, text string, departments []string, limit int) dto.SearchCoursesResponse {
	text = strings.TrimSpace(text)
	response := dto.SearchCoursesResponse{Query: text, Results: []models.Course{}}
	if text == "" {
		return response
	}

	key := searchCacheKey(text, departments, limit)
	if s.cache != nil {
		var cached []models.Course
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			response.Results = cached
			response.Count = len(cached)
			return response
		}
	}

	start := time.Now()
	results, err := s.client.Search(ctx, catalog.SearchQuery{Text: text, Departments: departments, Limit: limit})
	if s.metrics != nil {
		s.metrics.ObserveUpstreamSearch(time.Since(start), err)
	}
	if err != nil {
		s.logger.Warn("upstream search failed, returning empty results",
			zap.String("query", text),
			zap.Error(err))
		return response
	}
	if results == nil {
		results = []models.Course{}
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, results, 0)
	}

	response.Results = results
	response.Count = len(results)
	return response
}

// FindCourse resolves one course by identifier or course code. A nil course
// with nil error means the upstream knows no such course.
func (s *SearchService) FindCourse(ctx context.Context, identifier string) (*models.Course, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, nil
	}

	key := "course:" + identifier
	if s.cache != nil {
		var cached models.Course
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	start := time.Now()
	course, err := s.client.FindByIdentifier(ctx, identifier)
	if s.metrics != nil {
		s.metrics.ObserveUpstreamSearch(time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}
	if course != nil && s.cache != nil {
		_ = s.cache.Set(ctx, key, course, 0)
	}
	return course, nil
}

func searchCacheKey(text string, departments []string, limit int) string {
	h := sha256.New()
	h.Write([]byte(text))
	for _, dept := range departments {
		h.Write([]byte{0})
		h.Write([]byte(dept))
	}
	h.Write([]byte{0})
	h.Write(binary.AppendVarint(nil, int64(limit)))
	return "search:" + hex.EncodeToString(h.Sum(nil)[:16])
}

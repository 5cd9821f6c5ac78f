package wellness

import (
	"context"
	"fmt"
	"strings"

	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
)

const defaultReadTime = 5

type ArticleServiceImpl struct {
	articleRepo wellness.ArticleRepository
}

func NewArticleService(articleRepo wellness.ArticleRepository) wellness.ArticleService {
	return &ArticleServiceImpl{articleRepo: articleRepo}
}

// List implements wellness.ArticleService.
func (s *ArticleServiceImpl) List(ctx context.Context, filter wellness.ArticleFilter) (wellness.ArticleListResponse, error) {
	filter.Pagination = filter.Pagination.Normalize()
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}
	filter.Search = strings.TrimSpace(filter.Search)

	articles, total, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		return wellness.ArticleListResponse{}, fmt.Errorf("failed to list articles: %w", err)
	}

	items := make([]wellness.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, wellness.ToArticleResponse(a))
	}

	return wellness.ArticleListResponse{
		Articles:    items,
		Total:       total,
		CurrentPage: filter.Page,
		TotalPages:  filter.TotalPages(total),
	}, nil
}

// Get implements wellness.ArticleService. Every read counts as a view.
func (s *ArticleServiceImpl) Get(ctx context.Context, id string) (wellness.ArticleResponse, error) {
	a, err := s.articleRepo.IncrementViews(ctx, id)
	if err != nil {
		return wellness.ArticleResponse{}, err
	}
	return wellness.ToArticleResponse(a), nil
}

// Create implements wellness.ArticleService.
func (s *ArticleServiceImpl) Create(ctx context.Context, authorID string, req wellness.CreateArticleRequest) (wellness.ArticleResponse, error) {
	if err := req.Validate(); err != nil {
		return wellness.ArticleResponse{}, err
	}

	readTime := defaultReadTime
	if req.ReadTime != nil {
		readTime = *req.ReadTime
	}

	created, err := s.articleRepo.Create(ctx, wellness.Article{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Category:    wellness.ArticleCategory(req.Category),
		Tags:        []string(req.Tags),
		ImageURL:    req.ImageURL,
		AuthorID:    authorID,
		ReadTime:    readTime,
		IsPublished: true,
	})
	if err != nil {
		return wellness.ArticleResponse{}, fmt.Errorf("failed to create article: %w", err)
	}
	return wellness.ToArticleResponse(created), nil
}

// Update implements wellness.ArticleService.
func (s *ArticleServiceImpl) Update(ctx context.Context, id string, req wellness.UpdateArticleRequest) (wellness.ArticleResponse, error) {
	if err := req.Validate(); err != nil {
		return wellness.ArticleResponse{}, err
	}

	existing, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return wellness.ArticleResponse{}, err
	}

	req.Apply(&existing)

	updated, err := s.articleRepo.Update(ctx, existing)
	if err != nil {
		return wellness.ArticleResponse{}, err
	}
	return wellness.ToArticleResponse(updated), nil
}

// Delete implements wellness.ArticleService.
func (s *ArticleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.articleRepo.Delete(ctx, id)
}

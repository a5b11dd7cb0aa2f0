package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrArticleValidation = errors.New("article validation failed")
)

type ArticleService struct {
	articles ports.ArticleStore
}

func NewArticleService(store ports.ArticleStore) *ArticleService {
	return &ArticleService{articles: store}
}

func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	return s.articles.List(ctx)
}

func (s *ArticleService) GetBySlugOrID(ctx context.Context, key string) (*domain.Article, error) {
	article, err := s.articles.FindBySlugOrID(ctx, key)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, article domain.Article) (*domain.Article, error) {
	if article.Title.IsEmpty() {
		return nil, fmt.Errorf("%w: title is required", ErrArticleValidation)
	}
	return s.articles.Create(ctx, article)
}

func (s *ArticleService) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	article, err := s.articles.Update(ctx, id, patch)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrArticleNotFound
	}
	return nil
}

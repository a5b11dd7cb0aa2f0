package ports

import (
	"context"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

type ArticleStore interface {
	List(ctx context.Context) ([]domain.Article, error)
	FindBySlugOrID(ctx context.Context, key string) (*domain.Article, error)
	Create(ctx context.Context, article domain.Article) (*domain.Article, error)
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, id string) (bool, error)
}

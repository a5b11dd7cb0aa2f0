package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

// ArticleStore keeps region articles in a JSON file next to the listing
// store, with the same availability rules: missing or corrupt files read
// as empty and writes go through temp-file + rename.
type ArticleStore struct {
	path string

	mu  sync.Mutex
	now func() time.Time
}

func NewArticleStore(path string) *ArticleStore {
	return &ArticleStore{
		path: path,
		now:  time.Now,
	}
}

func (s *ArticleStore) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *ArticleStore) List(_ context.Context) ([]domain.Article, error) {
	return s.read()
}

func (s *ArticleStore) FindBySlugOrID(_ context.Context, key string) (*domain.Article, error) {
	items, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Slug == key || items[i].ID == key {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (s *ArticleStore) Create(_ context.Context, article domain.Article) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	article.ID = fmt.Sprintf("article-%d-%s", now.UnixMilli(), randomToken())
	article.Slug = ensureUniqueArticleSlug(Slugify(article.Title.Resolve(domain.LocaleEN, "")), article.ID, items)
	article.CreatedAt = now
	article.UpdatedAt = now

	items = append([]domain.Article{article}, items...)
	if err := s.write(items); err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) Update(_ context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	article := items[idx]
	if patch.Apply(&article) {
		article.Slug = ensureUniqueArticleSlug(Slugify(article.Title.Resolve(domain.LocaleEN, "")), article.ID, items)
	}
	article.UpdatedAt = s.now().UTC()

	items[idx] = article
	if err := s.write(items); err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return false, err
	}

	next := items[:0:0]
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if len(next) == len(items) {
		return false, nil
	}
	if err := s.write(next); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ArticleStore) read() ([]domain.Article, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Article{}, nil
		}
		return nil, fmt.Errorf("read article store: %w", err)
	}

	var items []domain.Article
	if err := json.Unmarshal(raw, &items); err != nil {
		return []domain.Article{}, nil
	}
	if items == nil {
		items = []domain.Article{}
	}
	return items, nil
}

func (s *ArticleStore) write(items []domain.Article) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode article store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".articles-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func ensureUniqueArticleSlug(slug, selfID string, items []domain.Article) string {
	taken := func(candidate string) bool {
		for _, item := range items {
			if item.Slug == candidate && item.ID != selfID {
				return true
			}
		}
		return false
	}
	for taken(slug) {
		slug = slug + "-" + randomToken()
	}
	return slug
}

var _ ports.ArticleStore = (*ArticleStore)(nil)

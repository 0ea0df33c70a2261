package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/abnormalforhad/Spicy-website/internal/cache"
	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

const (
	keyAll      = "all"
	keyFeatured = "featured"
)

type Service struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede on the listing keys
}

func NewService(repo repository.ProductRepository, cache cache.ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.listCached(ctx, keyAll, s.repo.ListProducts)
}

func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.listCached(ctx, keyFeatured, s.repo.ListFeatured)
}

func (s *Service) listCached(ctx context.Context, key string, load func(context.Context) ([]domain.Product, error)) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		products, err := s.cache.Get(ctx, key)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		products, errLoad := load(ctx)
		if errLoad != nil {
			return nil, errLoad
		}

		// set cache
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, key, products); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		log.Printf("repo create product error: %v", err)
		return err
	}

	s.invalidateListings()
	return nil
}

// Seed inserts the sample catalog once. It reports how many products exist
// afterwards and is a no-op when the catalog is already populated.
func (s *Service) Seed(ctx context.Context) (int64, error) {
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return count, nil
	}

	products := SampleProducts()
	if err := s.repo.InsertProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}

	s.invalidateListings()
	return int64(len(products)), nil
}

func (s *Service) invalidateListings() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, keyAll, keyFeatured); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

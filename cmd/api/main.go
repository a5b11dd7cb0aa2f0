package main

import (
	"log"

	"github.com/njprem/Italian_Properties_BackEnd/internal/config"
	"github.com/njprem/Italian_Properties_BackEnd/internal/media"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/localstore"
	miniorepo "github.com/njprem/Italian_Properties_BackEnd/internal/repository/minio"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/postgres"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/sanity"
	"github.com/njprem/Italian_Properties_BackEnd/internal/service"
	transport "github.com/njprem/Italian_Properties_BackEnd/internal/transport/http"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer db.Close()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect to object storage: %v", err)
	}
	storage := miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL)

	remote := sanity.NewClient(sanity.Config{
		ProjectID:  cfg.Catalog.SanityProjectID,
		Dataset:    cfg.Catalog.SanityDataset,
		APIVersion: cfg.Catalog.SanityAPIVersion,
		Token:      cfg.Catalog.SanityToken,
		UseCDN:     cfg.Catalog.SanityUseCDN,
		Timeout:    cfg.Catalog.RemoteTimeout,
	})
	localListings := localstore.NewListingStore(cfg.Catalog.LocalStorePath)
	localArticles := localstore.NewArticleStore(cfg.Catalog.ArticleStorePath)

	favoriteRepo := postgres.NewFavoriteRepo(db)
	savedSearchRepo := postgres.NewSavedSearchRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(jwtManager, cfg.GoogleAudience)

	catalogService := service.NewCatalogService(remote, localListings)
	favoriteService := service.NewFavoriteService(favoriteRepo, catalogService)
	savedSearchService := service.NewSavedSearchService(savedSearchRepo)
	articleService := service.NewArticleService(localArticles)
	translationService := service.NewTranslationService(service.TranslationConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	})

	processor := media.NewFFMPEGProcessor(cfg.FFMPEGPath, media.DefaultMaxDimension)
	imageService := service.NewImageService(storage, processor, cfg.MinIOBucketListing, cfg.ListingImageMax)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterListings(e, authService, catalogService, favoriteService, imageService)
	transport.RegisterFavorites(e, authService, favoriteService)
	transport.RegisterSavedSearches(e, authService, savedSearchService)
	transport.RegisterTranslate(e, authService, translationService)
	transport.RegisterArticles(e, authService, articleService)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

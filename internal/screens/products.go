package screens

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/internal/model"
	"github.com/suteetoe/stockmobile/pkg/apiclient"
	"github.com/suteetoe/stockmobile/pkg/logger"
)

// ProductsState is what the list screen displays
type ProductsState struct {
	Products []model.Product
	Error    string
}

// PickedImage is an image chosen by the user for a new product
type PickedImage struct {
	// Source is the picker path or URI; its last segment becomes the filename
	Source  string
	Content []byte
}

// Card is a rendered product with its image resolved to a data URI
type Card struct {
	Product  model.Product
	ImageURI string
	ImageErr error
}

// ProductsScreen lists, searches, creates and deletes products.
// Loads are sequenced so a slow earlier response never replaces a newer one.
type ProductsScreen struct {
	catalog ProductCatalog
	images  ImageService
	logger  *zap.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
	state   ProductsState
}

func NewProductsScreen(catalog ProductCatalog, images ImageService, log *zap.Logger) *ProductsScreen {
	return &ProductsScreen{catalog: catalog, images: images, logger: logger.OrNop(log)}
}

// State returns the currently displayed state
func (s *ProductsScreen) State() ProductsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Refresh reloads every product
func (s *ProductsScreen) Refresh(ctx context.Context) ProductsState {
	return s.load(ctx, func() ([]model.Product, error) {
		return s.catalog.ListProducts(ctx)
	}, "Failed to load products.")
}

// Search filters by product name. An empty query sends no filter.
func (s *ProductsScreen) Search(ctx context.Context, query string) ProductsState {
	return s.load(ctx, func() ([]model.Product, error) {
		return s.catalog.SearchProducts(ctx, apiclient.SearchFilter{Name: query})
	}, "Failed to search products.")
}

func (s *ProductsScreen) load(ctx context.Context, fetch func() ([]model.Product, error), failure string) ProductsState {
	log := logger.FromContext(ctx, s.logger)

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	products, err := fetch()

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		log.Debug("Discarding stale product load", zap.Uint64("seq", seq), zap.Uint64("applied", s.applied))
		return s.state
	}
	s.applied = seq

	if err != nil {
		log.Error("Product load failed", zap.Error(err))
		s.state = ProductsState{Error: failure}
		return s.state
	}

	s.state = ProductsState{Products: products}
	return s.state
}

// Delete removes a product and reloads the list on success
func (s *ProductsScreen) Delete(ctx context.Context, id int64) Outcome {
	log := logger.FromContext(ctx, s.logger)

	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		log.Error("Delete failed", zap.Int64("product_id", id), zap.Error(err))
		return Outcome{}.withAlert("Error", "Failed to delete product.")
	}

	s.Refresh(ctx)
	return Outcome{}.withAlert("Success", "Product deleted.")
}

// Create uploads the picked image, if any, then saves the product with the
// returned path. A failed upload is reported and the product is saved
// with whatever path the draft already carried.
func (s *ProductsScreen) Create(ctx context.Context, draft model.Product, picked *PickedImage) Outcome {
	log := logger.FromContext(ctx, s.logger)

	if err := draft.Validate(); err != nil {
		return Outcome{}.withAlert("Error", err.Error())
	}

	var out Outcome
	imagePath := draft.ImagePath

	if picked != nil {
		path, err := s.images.UploadImage(ctx, apiclient.NewImageUpload(picked.Source, picked.Content))
		if err != nil {
			log.Error("Image upload failed", zap.String("source", picked.Source), zap.Error(err))
			out = out.withAlert("Error", "Could not upload the image.")
		} else {
			imagePath = path
		}
	}

	if _, err := s.catalog.CreateProduct(ctx, draft.WithoutID().WithImagePath(imagePath)); err != nil {
		log.Error("Create failed", zap.String("name", draft.Name), zap.Error(err))
		return out.withAlert("Error", "Failed to create product.")
	}

	s.Refresh(ctx)
	return out.withAlert("Success", "Product created.")
}

// Cards resolves the image of every displayed product. Products without an
// image path get no fetch.
func (s *ProductsScreen) Cards(ctx context.Context) []Card {
	log := logger.FromContext(ctx, s.logger)

	products := s.State().Products
	cards := make([]Card, 0, len(products))

	for _, p := range products {
		card := Card{Product: p}
		if p.ImagePath != "" {
			card.ImageURI, card.ImageErr = s.images.FetchImage(ctx, p.ImagePath)
			if card.ImageErr != nil {
				log.Warn("Image load failed", zap.String("path", p.ImagePath), zap.Error(card.ImageErr))
			}
		}
		cards = append(cards, card)
	}
	return cards
}

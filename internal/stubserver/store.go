package stubserver

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/suteetoe/stockmobile/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyExist = errors.New("already exists")
)

type user struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash []byte
}

type image struct {
	ContentType string
	Data        []byte
}

// Store keeps users, products and images in memory
type Store struct {
	mu         sync.RWMutex
	users      map[string]user
	products   map[int64]model.ProductDTO
	images     map[string]image
	userSeq    uint
	productSeq int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]user),
		products: make(map[int64]model.ProductDTO),
		images:   make(map[string]image),
	}
}

func (s *Store) createUser(name, email string, hash []byte) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.users[key]; ok {
		return user{}, ErrAlreadyExist
	}

	s.userSeq++
	u := user{ID: s.userSeq, Name: name, Email: email, PasswordHash: hash}
	s.users[key] = u
	return u, nil
}

func (s *Store) findUser(email string) (user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return user{}, ErrNotFound
	}
	return u, nil
}

// SaveProduct assigns the next id and stores the product
func (s *Store) SaveProduct(p model.ProductDTO) model.ProductDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.productSeq++
	id := s.productSeq
	p.ID = &id
	s.products[id] = p
	return p
}

// ListProducts returns every product ordered by id
func (s *Store) ListProducts() []model.ProductDTO {
	return s.filter(func(model.ProductDTO) bool { return true })
}

// FindProducts matches by name substring or exact category, case-insensitively.
// With no filters every product matches.
func (s *Store) FindProducts(name, category string) []model.ProductDTO {
	if name == "" && category == "" {
		return s.ListProducts()
	}

	name = strings.ToLower(name)
	return s.filter(func(p model.ProductDTO) bool {
		if name != "" && strings.Contains(strings.ToLower(p.Nome), name) {
			return true
		}
		return category != "" && strings.EqualFold(p.Categoria, category)
	})
}

func (s *Store) filter(keep func(model.ProductDTO) bool) []model.ProductDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ProductDTO, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out
}

func (s *Store) FindProduct(id int64) (model.ProductDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return model.ProductDTO{}, ErrNotFound
	}
	return p, nil
}

// UpdateProduct replaces the stored record, keeping its id
func (s *Store) UpdateProduct(id int64, p model.ProductDTO) (model.ProductDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return model.ProductDTO{}, ErrNotFound
	}
	p.ID = &id
	s.products[id] = p
	return p, nil
}

func (s *Store) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// PutImage stores image bytes under name
func (s *Store) PutImage(name, contentType string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = image{ContentType: contentType, Data: append([]byte(nil), data...)}
}

func (s *Store) GetImage(name string) (string, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[name]
	if !ok {
		return "", nil, ErrNotFound
	}
	return img.ContentType, img.Data, nil
}

package rules

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
)

type storedProduct struct {
	product catalog.Product
	rules   catalog.Rules
}

// InMemoryRepository implements Repository using in-memory storage. It backs
// the offline quote command and tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]storedProduct
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]storedProduct),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// GetProduct retrieves a product by ID
func (r *InMemoryRepository) GetProduct(_ context.Context, input GetProductInput) (*GetProductOutput, error) {
	if input.ProductID == "" {
		return nil, errors.InvalidArgument(errProductIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.store[input.ProductID]
	if !exists {
		return nil, errors.NotFoundf("product %s not found", input.ProductID)
	}

	product := stored.product
	return &GetProductOutput{Product: &product}, nil
}

// GetRules retrieves the rules of a product
func (r *InMemoryRepository) GetRules(_ context.Context, input GetRulesInput) (*GetRulesOutput, error) {
	if input.ProductID == "" {
		return nil, errors.InvalidArgument(errProductIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.store[input.ProductID]
	if !exists {
		return nil, errors.NotFoundf("rules for product %s not found", input.ProductID)
	}

	rules := stored.rules
	return &GetRulesOutput{Rules: &rules}, nil
}

// Put stores a product and its rules
func (r *InMemoryRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Product.ID] = storedProduct{
		product: *input.Product,
		rules:   *input.Rules,
	}

	return &PutOutput{Product: input.Product}, nil
}

// Delete removes a product
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ProductID == "" {
		return nil, errors.InvalidArgument(errProductIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ProductID]; !exists {
		return nil, errors.NotFoundf("product %s not found", input.ProductID)
	}
	delete(r.store, input.ProductID)

	return &DeleteOutput{}, nil
}

// ListProducts returns every product ordered by ID
func (r *InMemoryRepository) ListProducts(_ context.Context, _ ListProductsInput) (*ListProductsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*catalog.Product, 0, len(r.store))
	for _, stored := range r.store {
		product := stored.product
		products = append(products, &product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return &ListProductsOutput{Products: products}, nil
}

// Package rules provides storage for products and their customization rules
package rules

//go:generate mockgen -destination=mock/mock_repository.go -package=rulesmock github.com/KirkDiggler/configurator-api/internal/repositories/rules Repository

import (
	"context"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Repository defines the interface for product and rule persistence
type Repository interface {
	// GetProduct retrieves a product's metadata
	// Returns errors.InvalidArgument for an empty product ID
	// Returns errors.NotFound if the product does not exist
	// Returns errors.Unavailable when the store cannot be reached
	GetProduct(ctx context.Context, input GetProductInput) (*GetProductOutput, error)

	// GetRules retrieves the containers, sizes and groups of a product
	// Returns errors.InvalidArgument for an empty product ID
	// Returns errors.NotFound if no rules are stored for the product
	// Returns errors.Unavailable when the store cannot be reached
	GetRules(ctx context.Context, input GetRulesInput) (*GetRulesOutput, error)

	// Put stores a product together with its rules, replacing both
	// Returns errors.InvalidArgument when the product or rules are inconsistent
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes a product and its rules
	// Returns errors.NotFound if the product does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListProducts returns every stored product ordered by ID
	ListProducts(ctx context.Context, input ListProductsInput) (*ListProductsOutput, error)
}

// GetProductInput defines the input for getting a product
type GetProductInput struct {
	ProductID string
}

// GetProductOutput defines the output for getting a product
type GetProductOutput struct {
	Product *catalog.Product
}

// GetRulesInput defines the input for getting a product's rules
type GetRulesInput struct {
	ProductID string
}

// GetRulesOutput defines the output for getting a product's rules
type GetRulesOutput struct {
	Rules *catalog.Rules
}

// PutInput defines the input for storing a product
type PutInput struct {
	Product *catalog.Product
	Rules   *catalog.Rules
}

// PutOutput defines the output for storing a product
type PutOutput struct {
	Product *catalog.Product
}

// DeleteInput defines the input for deleting a product
type DeleteInput struct {
	ProductID string
}

// DeleteOutput defines the output for deleting a product
type DeleteOutput struct{}

// ListProductsInput defines the input for listing products
type ListProductsInput struct{}

// ListProductsOutput defines the output for listing products
type ListProductsOutput struct {
	Products []*catalog.Product
}

package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/repositories/rules"
	"github.com/KirkDiggler/configurator-api/internal/testutils"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := rules.NewInMemory()

	_, err := repo.GetRules(ctx, rules.GetRulesInput{ProductID: testutils.ProductJuice})
	assert.True(t, errors.IsNotFound(err))

	_, err = repo.Put(ctx, rules.PutInput{Product: testutils.JuiceProduct(), Rules: testutils.JuiceRules()})
	require.NoError(t, err)
	_, err = repo.Put(ctx, rules.PutInput{Product: testutils.SundaeProduct(), Rules: testutils.SundaeRules()})
	require.NoError(t, err)

	out, err := repo.GetRules(ctx, rules.GetRulesInput{ProductID: testutils.ProductJuice})
	require.NoError(t, err)
	assert.Equal(t, "ice", out.Rules.Groups[0].GroupID)

	list, err := repo.ListProducts(ctx, rules.ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	assert.Equal(t, testutils.ProductJuice, list.Products[0].ID)
	assert.Equal(t, testutils.ProductSundae, list.Products[1].ID)

	_, err = repo.Delete(ctx, rules.DeleteInput{ProductID: testutils.ProductJuice})
	require.NoError(t, err)
	_, err = repo.GetProduct(ctx, rules.GetProductInput{ProductID: testutils.ProductJuice})
	assert.True(t, errors.IsNotFound(err))
}

//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/producthub/producthub/internal/model"
	"github.com/producthub/producthub/internal/testutil"
)

// ============================================================================
// Product Repository Integration Tests
// ============================================================================

func TestIntegrationProductRepository_CreateProduct(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := createOwner(ctx, t, repo, "create-owner")

	product := testutil.NewTestProduct(t, owner.ID, testutil.UniqueName("widget"))
	desc := "A fine widget"
	product.Description = &desc

	if err := repo.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if product.ID == 0 {
		t.Error("ID should be assigned by the database")
	}

	retrieved, err := repo.GetProductByIDForOwner(ctx, product.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetProductByIDForOwner failed: %v", err)
	}
	if retrieved.Name != product.Name {
		t.Errorf("Name mismatch: got %q, want %q", retrieved.Name, product.Name)
	}
	if retrieved.Description == nil || *retrieved.Description != desc {
		t.Errorf("Description mismatch: got %v, want %q", retrieved.Description, desc)
	}
	if retrieved.Price == nil || *retrieved.Price != 9.99 {
		t.Errorf("Price mismatch: got %v, want 9.99", retrieved.Price)
	}
}

func TestIntegrationProductRepository_ListProductsByOwner_NewestFirst(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := createOwner(ctx, t, repo, "list-owner")

	names := []string{"first", "second", "third"}
	for _, name := range names {
		p := testutil.NewTestProduct(t, owner.ID, name)
		if err := repo.CreateProduct(ctx, p); err != nil {
			t.Fatalf("CreateProduct(%s) failed: %v", name, err)
		}
	}

	products, err := repo.ListProductsByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListProductsByOwner failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("Expected 3 products, got %d", len(products))
	}

	// Newest first; inserts within the same timestamp fall back to id order
	if products[0].Name != "third" || products[2].Name != "first" {
		t.Errorf("Wrong order: got [%s, %s, %s]",
			products[0].Name, products[1].Name, products[2].Name)
	}
}

func TestIntegrationProductRepository_ListProductsByOwner_Empty(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := createOwner(ctx, t, repo, "empty-owner")

	products, err := repo.ListProductsByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListProductsByOwner failed: %v", err)
	}
	if products == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(products) != 0 {
		t.Errorf("Expected 0 products, got %d", len(products))
	}
}

func TestIntegrationProductRepository_OwnershipIsolation(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	alice := createOwner(ctx, t, repo, "alice")
	bob := createOwner(ctx, t, repo, "bob")

	product := testutil.NewTestProduct(t, alice.ID, testutil.UniqueName("secret"))
	if err := repo.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	// Bob's list never contains Alice's product
	bobProducts, err := repo.ListProductsByOwner(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListProductsByOwner failed: %v", err)
	}
	if len(bobProducts) != 0 {
		t.Errorf("Expected Bob to see 0 products, got %d", len(bobProducts))
	}

	// Lookup scoped to Bob reports not found, same as a missing id
	_, err = repo.GetProductByIDForOwner(ctx, product.ID, bob.ID)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound for other owner, got: %v", err)
	}

	// The owner still sees it
	if _, err := repo.GetProductByIDForOwner(ctx, product.ID, alice.ID); err != nil {
		t.Errorf("Owner lookup failed: %v", err)
	}
}

func TestIntegrationProductRepository_GetProduct_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	owner := createOwner(ctx, t, repo, "missing-owner")

	_, err := repo.GetProductByIDForOwner(ctx, 999999, owner.ID)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func createOwner(ctx context.Context, t *testing.T, repo *Repository, prefix string) *model.User {
	t.Helper()
	user := testutil.NewTestUser(t, testutil.UniqueEmail(prefix))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return user
}

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/internal/logger"
	"bakeshop/internal/validation"
)

type fakeStore struct {
	docs map[string][]map[string]interface{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string][]map[string]interface{}{}}
}

func (f *fakeStore) Insert(ctx context.Context, collection, id string, doc interface{}) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	body := map[string]interface{}{}
	if err := json.Unmarshal(encoded, &body); err != nil {
		return err
	}
	body["_id"] = id
	f.docs[collection] = append(f.docs[collection], body)
	return nil
}

func (f *fakeStore) Find(ctx context.Context, collection string, filter map[string]interface{}, exclude ...string) ([]json.RawMessage, error) {
	out := []json.RawMessage{}
	for _, body := range f.docs[collection] {
		matched := true
		for k, want := range filter {
			if !reflect.DeepEqual(body[k], want) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		copied := map[string]interface{}{}
		for k, v := range body {
			copied[k] = v
		}
		for _, field := range exclude {
			delete(copied, field)
		}
		encoded, err := json.Marshal(copied)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}
	return out, nil
}

func (f *fakeStore) FindByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	for _, body := range f.docs[collection] {
		if body["_id"] == id {
			return json.Marshal(body)
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeStore) DeleteOne(ctx context.Context, collection, id string) error {
	kept := f.docs[collection][:0]
	for _, body := range f.docs[collection] {
		if body["_id"] != id {
			kept = append(kept, body)
		}
	}
	f.docs[collection] = kept
	return nil
}

func (f *fakeStore) UpdateOne(ctx context.Context, collection string, filter, set map[string]interface{}, upsertID string) error {
	for _, body := range f.docs[collection] {
		matched := true
		for k, want := range filter {
			if !reflect.DeepEqual(body[k], want) {
				matched = false
				break
			}
		}
		if matched {
			for k, v := range set {
				body[k] = v
			}
			return nil
		}
	}
	if upsertID == "" {
		return nil
	}
	doc := map[string]interface{}{}
	for k, v := range filter {
		doc[k] = v
	}
	for k, v := range set {
		doc[k] = v
	}
	return f.Insert(ctx, collection, upsertID, doc)
}

type fakeBlobs struct {
	existsErr  error
	deleteErr  error
	presignErr error
	deleted    []string
}

func (f *fakeBlobs) Exists(ctx context.Context, key string) error { return f.existsErr }

func (f *fakeBlobs) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobs) PresignGet(ctx context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://cdn.example.com/" + key, nil
}

type fakeIDs struct{ n int }

func (f *fakeIDs) Next() string {
	f.n++
	return fmt.Sprintf("DOC%07d", f.n)
}

func newTestService(store *fakeStore, blobs *fakeBlobs) *Service {
	return NewService(store, blobs, &fakeIDs{}, logger.New("test"))
}

func TestAddMenuItem(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeBlobs{})

	listing, err := svc.AddMenuItem(context.Background(), validation.Document{
		"category": "Cupcakes",
		"itemName": "Vanilla Cupcake",
		"price":    "3.50",
		"itemDesc": "Classic vanilla with buttercream",
	})
	require.NoError(t, err)
	require.Len(t, listing, 1)

	body := store.docs[MenuCollection][0]
	assert.Equal(t, "Cupcakes", body["category"])
	assert.Equal(t, "3.50", body["price"])
}

func TestAddMenuItem_Invalid(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeBlobs{})

	_, err := svc.AddMenuItem(context.Background(), validation.Document{
		"category": "Pastries",
		"itemName": "Vanilla Cupcake",
		"price":    "cheap",
		"itemDesc": "Classic vanilla with buttercream",
	})

	var invalid *ValidationFailure
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Errors, 2)
	assert.Equal(t, "Invalid Category", invalid.Errors[0].Message)
	assert.Equal(t, "Price must only contain numbers", invalid.Errors[1].Message)
}

func TestPublicMenu_PresignsImages(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Insert(context.Background(), MenuCollection, "a", map[string]interface{}{
		"itemName": "Vanilla Cupcake", "imageKey": "menu/123.png",
	}))
	require.NoError(t, store.Insert(context.Background(), MenuCollection, "b", map[string]interface{}{
		"itemName": "Lemon Jar",
	}))
	svc := newTestService(store, &fakeBlobs{})

	items, err := svc.PublicMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://cdn.example.com/menu/123.png", items[0]["url"])
	assert.NotContains(t, items[1], "url")
}

func TestPublicMenu_PresignFailure(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Insert(context.Background(), MenuCollection, "a", map[string]interface{}{
		"itemName": "Vanilla Cupcake", "imageKey": "menu/123.png",
	}))
	svc := newTestService(store, &fakeBlobs{presignErr: errors.New("denied")})

	_, err := svc.PublicMenu(context.Background())

	var blob *BlobFailure
	require.ErrorAs(t, err, &blob)
	assert.Equal(t, "There was an error fetching the menu images", blob.Msg)
}

func TestDeleteMenuItem_CascadesToImage(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Insert(context.Background(), MenuCollection, "a", map[string]interface{}{
		"itemName": "Vanilla Cupcake", "imageKey": "menu/123.png",
	}))
	blobs := &fakeBlobs{}
	svc := newTestService(store, blobs)

	listing, err := svc.DeleteMenuItem(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, listing)
	assert.Equal(t, []string{"menu/123.png"}, blobs.deleted)
}

func TestDeleteMenuItem_MissingObjectAbortsDelete(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Insert(context.Background(), MenuCollection, "a", map[string]interface{}{
		"itemName": "Vanilla Cupcake", "imageKey": "menu/123.png",
	}))
	svc := newTestService(store, &fakeBlobs{existsErr: errors.New("no such key")})

	_, err := svc.DeleteMenuItem(context.Background(), "a")

	var blob *BlobFailure
	require.ErrorAs(t, err, &blob)
	assert.Equal(t, "File not found", blob.Msg)
	assert.Len(t, store.docs[MenuCollection], 1, "document must survive a failed cascade")
}

func TestDeleteMenuItem_WithoutImage(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Insert(context.Background(), MenuCollection, "a", map[string]interface{}{
		"itemName": "Lemon Jar",
	}))
	blobs := &fakeBlobs{}
	svc := newTestService(store, blobs)

	listing, err := svc.DeleteMenuItem(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, listing)
	assert.Empty(t, blobs.deleted)
}

func TestRecipeByName(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Insert(context.Background(), RecipesCollection, "a", map[string]interface{}{
		"recipeName": "Banana Bread", "imageKey": "recipes/42.jpg",
	}))
	svc := newTestService(store, &fakeBlobs{})

	recipes, err := svc.RecipeByName(context.Background(), "Banana Bread")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "https://cdn.example.com/recipes/42.jpg", recipes[0]["url"])

	_, err = svc.RecipeByName(context.Background(), "No Such Recipe")
	assert.Error(t, err)
}

func TestAddContactItem_ReturnsSubmission(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeBlobs{})

	// an unrelated earlier submission must not appear in the response
	require.NoError(t, store.Insert(context.Background(), ContactCollection, "x", map[string]interface{}{
		"name": "Someone Else",
	}))

	listing, err := svc.AddContactItem(context.Background(), validation.Document{
		"contactTime": "Jan 2, 2024 10:00",
		"name":        "Jane Smith",
		"email":       "jane@example.com",
		"subject":     "Wedding cake",
		"message":     "Do you make three tier wedding cakes",
	})
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Contains(t, string(listing[0]), "Jane Smith")
}

func TestUpdateSettings_UpsertThenMerge(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeBlobs{})

	listing, err := svc.UpdateDeliveryAmount(context.Background(), validation.Document{"amount": "5"})
	require.NoError(t, err)
	require.Len(t, listing, 1)
	require.Len(t, store.docs[SettingsCollection], 1)
	assert.Equal(t, SettingDeliveryAmount, store.docs[SettingsCollection][0]["name"])
	assert.Equal(t, "5", store.docs[SettingsCollection][0]["amount"])

	// second write updates in place instead of creating a sibling
	_, err = svc.UpdateDeliveryAmount(context.Background(), validation.Document{"amount": "7"})
	require.NoError(t, err)
	require.Len(t, store.docs[SettingsCollection], 1)
	assert.Equal(t, "7", store.docs[SettingsCollection][0]["amount"])
}

func TestUpdateMenuPageToggle_RejectsNonBoolean(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeBlobs{})

	_, err := svc.UpdateMenuPageToggle(context.Background(), validation.Document{"toggle": "maybe"})

	var invalid *ValidationFailure
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Menu Page Visibility Toggle contains an invalid input", invalid.Errors[0].Message)
}

func TestOtherSettings_ListsKnownNamesOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeBlobs{})

	_, err := svc.UpdateDeliveryAmount(context.Background(), validation.Document{"amount": "5"})
	require.NoError(t, err)
	_, err = svc.UpdateAbout(context.Background(), validation.Document{"about": "A family run bakery in Queens"})
	require.NoError(t, err)

	listing, err := svc.OtherSettings(context.Background())
	require.NoError(t, err)
	require.Len(t, listing, 1, "about lives behind its own route")
	assert.Contains(t, string(listing[0]), SettingDeliveryAmount)
}

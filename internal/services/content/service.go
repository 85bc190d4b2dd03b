package content

import (
	"context"
	"encoding/json"
	"errors"

	"bakeshop/internal/logger"
	"bakeshop/internal/validation"
)

// Collections managed by the content service.
const (
	MenuCollection     = "menu"
	RecipesCollection  = "recipes"
	FAQCollection      = "faq"
	ContactCollection  = "contact"
	SettingsCollection = "otherSettings"
)

// Site setting document names within the settings collection.
const (
	SettingAbout           = "about"
	SettingMenuPageToggle  = "MenuPageToggle"
	SettingDeliveryAmount  = "DeliveryAmount"
	SettingOrderMin        = "OrderMin"
	SettingFreeDeliveryMin = "FreeDeliveryMin"
	SettingDeliveryDate    = "DeliveryDate"
	SettingBlockedDates    = "BlockedDates"
)

var errRecipeNotFound = errors.New("recipe not found")

// DocumentStore is the slice of the document store the content service uses.
type DocumentStore interface {
	Insert(ctx context.Context, collection, id string, doc interface{}) error
	Find(ctx context.Context, collection string, filter map[string]interface{}, exclude ...string) ([]json.RawMessage, error)
	FindByID(ctx context.Context, collection, id string) (json.RawMessage, error)
	DeleteOne(ctx context.Context, collection, id string) error
	UpdateOne(ctx context.Context, collection string, filter, set map[string]interface{}, upsertID string) error
}

// BlobStore covers the image operations content documents depend on.
type BlobStore interface {
	Exists(ctx context.Context, key string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

type IDGenerator interface {
	Next() string
}

// Service manages the bakery's editorial content: menu items, recipes,
// FAQ entries, contact submissions and site settings.
type Service struct {
	store  DocumentStore
	blobs  BlobStore
	ids    IDGenerator
	logger *logger.Logger
}

func NewService(store DocumentStore, blobs BlobStore, ids IDGenerator, log *logger.Logger) *Service {
	return &Service{store: store, blobs: blobs, ids: ids, logger: log}
}

// MenuItems lists the menu collection as stored, for the admin surface.
func (s *Service) MenuItems(ctx context.Context) ([]json.RawMessage, error) {
	return s.store.Find(ctx, MenuCollection, nil)
}

// PublicMenu lists the menu with a presigned image URL attached to every
// item that carries an image.
func (s *Service) PublicMenu(ctx context.Context) ([]map[string]interface{}, error) {
	docs, err := s.store.Find(ctx, MenuCollection, nil)
	if err != nil {
		return nil, err
	}
	return s.withImageURLs(ctx, docs, "There was an error fetching the menu images")
}

func (s *Service) AddMenuItem(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := menuItemRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	item := map[string]interface{}{
		"category": validation.Lookup(doc, "category").Text(),
		"itemName": validation.Lookup(doc, "itemName").Text(),
		"itemDesc": validation.Lookup(doc, "itemDesc").Text(),
		"price":    validation.Lookup(doc, "price").Text(),
	}
	if err := s.store.Insert(ctx, MenuCollection, s.ids.Next(), item); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, MenuCollection, nil)
}

// DeleteMenuItem removes a menu item, deleting its S3 image first when one
// is attached.
func (s *Service) DeleteMenuItem(ctx context.Context, id string) ([]json.RawMessage, error) {
	return s.deleteCascade(ctx, MenuCollection, id)
}

func (s *Service) FAQItems(ctx context.Context) ([]json.RawMessage, error) {
	return s.store.Find(ctx, FAQCollection, nil)
}

func (s *Service) AddFAQItem(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := faqItemRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	item := map[string]interface{}{
		"category": validation.Lookup(doc, "category").Text(),
		"question": validation.Lookup(doc, "question").Text(),
		"answer":   validation.Lookup(doc, "answer").Text(),
	}
	if err := s.store.Insert(ctx, FAQCollection, s.ids.Next(), item); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, FAQCollection, nil)
}

func (s *Service) DeleteFAQItem(ctx context.Context, id string) ([]json.RawMessage, error) {
	if err := s.store.DeleteOne(ctx, FAQCollection, id); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, FAQCollection, nil)
}

func (s *Service) Recipes(ctx context.Context) ([]json.RawMessage, error) {
	return s.store.Find(ctx, RecipesCollection, nil)
}

func (s *Service) PublicRecipes(ctx context.Context) ([]map[string]interface{}, error) {
	docs, err := s.store.Find(ctx, RecipesCollection, nil)
	if err != nil {
		return nil, err
	}
	return s.withImageURLs(ctx, docs, "There was an error fetching the recipe images")
}

// RecipeByName fetches the recipes stored under a storefront recipe name,
// presigning the image of the first match.
func (s *Service) RecipeByName(ctx context.Context, name string) ([]map[string]interface{}, error) {
	docs, err := s.store.Find(ctx, RecipesCollection, map[string]interface{}{"recipeName": name})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errRecipeNotFound
	}
	return s.withImageURLs(ctx, docs, "There was an error fetching the image")
}

func (s *Service) AddRecipe(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := recipeRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	item := map[string]interface{}{
		"recipeName":  validation.Lookup(doc, "recipeName").Text(),
		"estTime":     validation.Lookup(doc, "estTime").Text(),
		"servings":    validation.Lookup(doc, "servings").Text(),
		"description": validation.Lookup(doc, "description").Text(),
		"ingredients": validation.Lookup(doc, "ingredients").Text(),
		"directions":  validation.Lookup(doc, "directions").Text(),
		"bonusTips":   validation.Lookup(doc, "bonusTips").Text(),
	}
	if err := s.store.Insert(ctx, RecipesCollection, s.ids.Next(), item); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, RecipesCollection, nil)
}

func (s *Service) DeleteRecipe(ctx context.Context, id string) ([]json.RawMessage, error) {
	return s.deleteCascade(ctx, RecipesCollection, id)
}

func (s *Service) ContactItems(ctx context.Context) ([]json.RawMessage, error) {
	return s.store.Find(ctx, ContactCollection, nil)
}

// AddContactItem stores a contact submission and returns it as re-read from
// the store.
func (s *Service) AddContactItem(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := contactRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	item := map[string]interface{}{
		"contactTime": validation.Lookup(doc, "contactTime").Text(),
		"name":        validation.Lookup(doc, "name").Text(),
		"email":       validation.Lookup(doc, "email").Text(),
		"subject":     validation.Lookup(doc, "subject").Text(),
		"message":     validation.Lookup(doc, "message").Text(),
	}
	if err := s.store.Insert(ctx, ContactCollection, s.ids.Next(), item); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, ContactCollection, item)
}

func (s *Service) DeleteContactItem(ctx context.Context, id string) ([]json.RawMessage, error) {
	if err := s.store.DeleteOne(ctx, ContactCollection, id); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, ContactCollection, nil)
}

func (s *Service) About(ctx context.Context) ([]json.RawMessage, error) {
	return s.store.Find(ctx, SettingsCollection, map[string]interface{}{"name": SettingAbout})
}

func (s *Service) UpdateAbout(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := aboutRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return s.updateSetting(ctx, SettingAbout, map[string]interface{}{
		"about": validation.Lookup(doc, "about").Text(),
	})
}

// OtherSettings lists the storefront-facing settings documents.
func (s *Service) OtherSettings(ctx context.Context) ([]json.RawMessage, error) {
	names := []string{
		SettingMenuPageToggle, SettingDeliveryAmount, SettingOrderMin,
		SettingFreeDeliveryMin, SettingDeliveryDate, SettingBlockedDates,
	}
	out := []json.RawMessage{}
	for _, name := range names {
		docs, err := s.store.Find(ctx, SettingsCollection, map[string]interface{}{"name": name})
		if err != nil {
			return nil, err
		}
		out = append(out, docs...)
	}
	return out, nil
}

func (s *Service) UpdateMenuPageToggle(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := menuToggleRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return s.updateSetting(ctx, SettingMenuPageToggle, map[string]interface{}{
		"toggle": validation.Lookup(doc, "toggle").Raw,
	})
}

func (s *Service) UpdateDeliveryAmount(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := deliveryAmountRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return s.updateSetting(ctx, SettingDeliveryAmount, map[string]interface{}{
		"amount": validation.Lookup(doc, "amount").Raw,
	})
}

func (s *Service) UpdateOrderMin(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := orderMinRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return s.updateSetting(ctx, SettingOrderMin, map[string]interface{}{
		"minimum": validation.Lookup(doc, "minimum").Raw,
	})
}

func (s *Service) UpdateFreeDeliveryMin(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := freeDeliveryMinRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return s.updateSetting(ctx, SettingFreeDeliveryMin, map[string]interface{}{
		"minimum": validation.Lookup(doc, "minimum").Raw,
	})
}

func (s *Service) UpdateDeliveryDate(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := deliveryDateRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return s.updateSetting(ctx, SettingDeliveryDate, map[string]interface{}{
		"date": validation.Lookup(doc, "date").Text(),
	})
}

func (s *Service) UpdateBlockedDates(ctx context.Context, doc validation.Document) ([]json.RawMessage, error) {
	if errs := blockedDatesRules.Validate(doc); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return s.updateSetting(ctx, SettingBlockedDates, map[string]interface{}{
		"dates": validation.Lookup(doc, "dates").Raw,
	})
}

// updateSetting merges set into the named settings document, creating it on
// first write, then re-reads it.
func (s *Service) updateSetting(ctx context.Context, name string, set map[string]interface{}) ([]json.RawMessage, error) {
	filter := map[string]interface{}{"name": name}
	if err := s.store.UpdateOne(ctx, SettingsCollection, filter, set, s.ids.Next()); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, SettingsCollection, filter)
}

// deleteCascade removes a document after deleting its S3 image when it has
// one. A missing or undeletable object aborts before the document is
// touched.
func (s *Service) deleteCascade(ctx context.Context, collection, id string) ([]json.RawMessage, error) {
	raw, err := s.store.FindByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	item := map[string]interface{}{}
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	if key, ok := item["imageKey"].(string); ok && key != "" {
		if err := s.blobs.Exists(ctx, key); err != nil {
			return nil, &BlobFailure{Msg: "File not found"}
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			return nil, &BlobFailure{Msg: "There was an issue deleting the file"}
		}
	}
	if err := s.store.DeleteOne(ctx, collection, id); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, collection, nil)
}

func (s *Service) withImageURLs(ctx context.Context, docs []json.RawMessage, failMsg string) ([]map[string]interface{}, error) {
	items := make([]map[string]interface{}, 0, len(docs))
	for _, raw := range docs {
		item := map[string]interface{}{}
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		if key, ok := item["imageKey"].(string); ok && key != "" {
			url, err := s.blobs.PresignGet(ctx, key)
			if err != nil {
				return nil, &BlobFailure{Msg: failMsg}
			}
			item["url"] = url
		}
		items = append(items, item)
	}
	return items, nil
}

package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bakeshop/internal/logger"
	"bakeshop/internal/validation"
	"bakeshop/internal/web"
)

// Handler handles the content HTTP routes.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new content handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// GetMenuItems handles GET /api/manage/getMenuItem.
func (h *Handler) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "menu_listing_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.MenuItems(ctx)
	})
}

// GetPublicMenu handles GET /api/menu/getMenuItem.
func (h *Handler) GetPublicMenu(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "menu_listing_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.PublicMenu(ctx)
	})
}

// AddMenuItem handles POST /api/manage/addMenuItem.
func (h *Handler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "menu_item_add_failed", h.service.AddMenuItem)
}

// DeleteMenuItem handles DELETE /api/manage/delMenuItem/{id}.
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "menu_item_delete_failed", h.service.DeleteMenuItem)
}

// GetFAQ handles GET /api/faq/getFAQ.
func (h *Handler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "faq_listing_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.FAQItems(ctx)
	})
}

// AddFAQItem handles POST /api/manage/addFAQItem.
func (h *Handler) AddFAQItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "faq_item_add_failed", h.service.AddFAQItem)
}

// DeleteFAQItem handles DELETE /api/manage/delFAQItem/{id}.
func (h *Handler) DeleteFAQItem(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "faq_item_delete_failed", h.service.DeleteFAQItem)
}

// GetRecipes handles GET /api/manage/getRecipes.
func (h *Handler) GetRecipes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "recipe_listing_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.Recipes(ctx)
	})
}

// GetPublicRecipes handles GET /api/recipes/getRecipes.
func (h *Handler) GetPublicRecipes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "recipe_listing_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.PublicRecipes(ctx)
	})
}

// GetRecipeByName handles GET /api/recipes/{recipeName}.
func (h *Handler) GetRecipeByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("recipeName")
	h.list(w, r, "recipe_fetch_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.RecipeByName(ctx, name)
	})
}

// AddRecipe handles POST /api/manage/addRecipe.
func (h *Handler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "recipe_add_failed", h.service.AddRecipe)
}

// DeleteRecipe handles DELETE /api/manage/delRecipe/{id}.
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "recipe_delete_failed", h.service.DeleteRecipe)
}

// GetContact handles GET /api/manage/getContact.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "contact_listing_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.ContactItems(ctx)
	})
}

// AddContactItem handles POST /api/contact/addContactItem.
func (h *Handler) AddContactItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "contact_add_failed", h.service.AddContactItem)
}

// DeleteContactItem handles DELETE /api/manage/delContact/{id}.
func (h *Handler) DeleteContactItem(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "contact_delete_failed", h.service.DeleteContactItem)
}

// GetAbout handles GET /api/about/getAbout.
func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "about_fetch_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.About(ctx)
	})
}

// UpdateAbout handles PUT /api/manage/updateAbout.
func (h *Handler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "about_update_failed", h.service.UpdateAbout)
}

// GetOtherSettings handles GET /api/home/getOtherSettings.
func (h *Handler) GetOtherSettings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "settings_fetch_failed", func(ctx context.Context) (interface{}, error) {
		return h.service.OtherSettings(ctx)
	})
}

// UpdateMenuPageToggle handles PUT /api/manage/updateMenuPageToggle.
func (h *Handler) UpdateMenuPageToggle(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "settings_update_failed", h.service.UpdateMenuPageToggle)
}

// UpdateDeliveryAmount handles PUT /api/manage/updateDeliveryAmount.
func (h *Handler) UpdateDeliveryAmount(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "settings_update_failed", h.service.UpdateDeliveryAmount)
}

// UpdateOrderMin handles PUT /api/manage/updateOrderMin.
func (h *Handler) UpdateOrderMin(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "settings_update_failed", h.service.UpdateOrderMin)
}

// UpdateFreeDeliveryMin handles PUT /api/manage/updateFreeDeliveryMin.
func (h *Handler) UpdateFreeDeliveryMin(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "settings_update_failed", h.service.UpdateFreeDeliveryMin)
}

// UpdateDeliveryDate handles PUT /api/manage/updateDeliveryDate.
func (h *Handler) UpdateDeliveryDate(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "settings_update_failed", h.service.UpdateDeliveryDate)
}

// UpdateBlockedDates handles PUT /api/manage/updateBlockedDates.
func (h *Handler) UpdateBlockedDates(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "settings_update_failed", h.service.UpdateBlockedDates)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context) (interface{}, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := fn(ctx)
	if err != nil {
		h.respondError(w, action, err)
		return
	}
	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context, doc validation.Document) ([]json.RawMessage, error)) {
	doc := validation.Document{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.logger.Error(action, "Failed to parse request body", "", err, nil)
		web.BadRequest(w, "Invalid JSON format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := fn(ctx, doc)
	if err != nil {
		h.respondError(w, action, err)
		return
	}
	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context, id string) ([]json.RawMessage, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	listing, err := fn(ctx, r.PathValue("id"))
	if err != nil {
		h.respondError(w, action, err)
		return
	}
	web.JSON(w, http.StatusOK, listing)
}

// respondError maps the content error taxonomy onto responses: 422 for
// field errors, image problems with their own message, generic 500
// otherwise.
func (h *Handler) respondError(w http.ResponseWriter, action string, err error) {
	var invalid *ValidationFailure
	var blob *BlobFailure
	switch {
	case errors.As(err, &invalid):
		web.FieldErrors(w, invalid.Errors)
	case errors.As(err, &blob):
		web.ErrorMessage(w, http.StatusInternalServerError, blob.Msg)
	default:
		h.logger.Error(action, "Content operation failed", "", err, nil)
		web.StoreError(w)
	}
}

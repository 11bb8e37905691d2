package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"culvana/internal/models"
	"culvana/internal/repositories"
)

// MenuItemInput carries the caller-supplied fields for a new menu entry.
type MenuItemInput struct {
	ItemName  string
	Category  string
	Size      string
	MenuPrice float64
	Method    string
}

// MenuView is the projection of one menu entry returned by menu reads.
type MenuView struct {
	RecipeName      string              `json:"Recipe Name"`
	Yields          *string             `json:"Yields"`
	Servings        float64             `json:"Servings"`
	ItemsPerServing float64             `json:"items_per_serving"`
	Ingredients     []models.Ingredient `json:"Ingredients"`
	TotalCost       float64             `json:"total_cost"`
}

// IngredientInventoryInfo is the inventory metadata attached to a recipe
// ingredient when a matching inventory item exists.
type IngredientInventoryInfo struct {
	UnitOfMeasure string  `json:"Inventory Unit of Measure"`
	CostOfUnit    float64 `json:"Cost of a Unit"`
	Category      string  `json:"Category"`
	BatchNumber   int     `json:"batchNumber"`
}

// EnrichedIngredient is a recipe ingredient plus its inventory enrichment.
// InventoryInfo is null when no inventory item matches the name.
type EnrichedIngredient struct {
	models.Ingredient
	InventoryInfo *IngredientInventoryInfo `json:"inventory_info"`
}

// RecipeView is the projection of one recipe returned by recipe reads.
type RecipeView struct {
	RecipeName      string               `json:"Recipe Name"`
	Yields          *string              `json:"Yields"`
	Servings        float64              `json:"Servings"`
	ItemsPerServing float64              `json:"items_per_serving"`
	Ingredients     []EnrichedIngredient `json:"Ingredients"`
}

// MenuService applies read-modify-write mutations to the per-user menu
// document and serves the menu and recipe reads. Recipe reads consult the
// inventory document to enrich ingredients.
type MenuService struct {
	menus     repositories.MenuRepository
	recipes   repositories.RecipeRepository
	inventory repositories.InventoryRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(menus repositories.MenuRepository, recipes repositories.RecipeRepository, inventory repositories.InventoryRepository) *MenuService {
	return &MenuService{
		menus:     menus,
		recipes:   recipes,
		inventory: inventory,
	}
}

// AddMenuItem appends a menu entry to the user's menu document. The
// document's recipe_count only ever grows; the new entry's sequence number
// and id are derived from it.
func (s *MenuService) AddMenuItem(email string, input MenuItemInput) (*models.Recipe, error) {
	doc, err := s.menus.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			doc = models.NewMenuDocument(email)
		} else {
			return nil, fmt.Errorf("failed to load menu for %s: %w", email, err)
		}
	}

	count := doc.RecipeCount + 1
	now := time.Now().UTC().Format(time.RFC3339)

	recipe := models.Recipe{
		ID:             models.RecipeID(email, count),
		SequenceNumber: count,
		Name:           input.ItemName,
		CreatedAt:      now,
		Data: models.RecipeData{
			RecipeName:      input.ItemName,
			Servings:        0,
			ItemsPerServing: 1,
			Ingredients:     []models.Ingredient{},
			Type:            "Menu",
			SizeName:        input.Size,
			Category:        input.Category,
			MenuPrice:       input.MenuPrice,
			Method:          input.Method,
		},
	}

	key := models.RecipeKey(email)
	if doc.Recipes == nil {
		doc.Recipes = map[string][]models.Recipe{}
	}
	doc.Recipes[key] = append(doc.Recipes[key], recipe)
	doc.RecipeCount = count
	doc.LastUpdated = now

	if err := s.menus.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save menu for %s: %w", email, err)
	}
	return &recipe, nil
}

// GetMenus returns the formatted menu entries for a user. A user with no
// menu document gets an empty list.
func (s *MenuService) GetMenus(email string) ([]MenuView, error) {
	doc, err := s.menus.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []MenuView{}, nil
		}
		return nil, fmt.Errorf("failed to load menu for %s: %w", email, err)
	}

	menus := []MenuView{}
	for _, recipe := range doc.Recipes[models.RecipeKey(email)] {
		data := recipe.Data
		ingredients := data.Ingredients
		if ingredients == nil {
			ingredients = []models.Ingredient{}
		}
		menus = append(menus, MenuView{
			RecipeName:      data.RecipeName,
			Yields:          data.TotalYield,
			Servings:        data.Servings,
			ItemsPerServing: data.ItemsPerServing,
			Ingredients:     ingredients,
			TotalCost:       data.TotalCost,
		})
	}
	return menus, nil
}

// GetRecipes returns the formatted recipes for a user, each ingredient
// enriched with matching inventory metadata. A missing recipe or inventory
// document never fails the read.
func (s *MenuService) GetRecipes(email string) ([]RecipeView, error) {
	doc, err := s.recipes.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []RecipeView{}, nil
		}
		return nil, fmt.Errorf("failed to load recipes for %s: %w", email, err)
	}

	var inventoryItems []models.InventoryItem
	if inv, err := s.inventory.Get(email); err == nil {
		inventoryItems = inv.Items
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to load inventory for %s: %w", email, err)
	}

	recipes := []RecipeView{}
	for _, recipe := range doc.Recipes[models.RecipeKey(email)] {
		data := recipe.Data
		enriched := make([]EnrichedIngredient, 0, len(data.Ingredients))
		for _, ing := range data.Ingredients {
			enriched = append(enriched, EnrichedIngredient{
				Ingredient:    ing,
				InventoryInfo: lookupInventoryInfo(inventoryItems, ing.Name),
			})
		}
		recipes = append(recipes, RecipeView{
			RecipeName:      data.RecipeName,
			Yields:          data.TotalYield,
			Servings:        data.Servings,
			ItemsPerServing: data.ItemsPerServing,
			Ingredients:     enriched,
		})
	}
	return recipes, nil
}

// lookupInventoryInfo finds the first inventory item whose name matches the
// ingredient name, ignoring case. No match yields nil.
func lookupInventoryInfo(items []models.InventoryItem, name string) *IngredientInventoryInfo {
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return &IngredientInventoryInfo{
				UnitOfMeasure: item.UnitOfMeasure,
				CostOfUnit:    item.CostOfUnit,
				Category:      item.Category,
				BatchNumber:   item.BatchNumber,
			}
		}
	}
	return nil
}

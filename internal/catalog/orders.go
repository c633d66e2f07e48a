package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"homechefs/backend/internal/config"
	"homechefs/backend/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// allowed order status transitions
var orderTransitions = map[string][]string{
	config.OrderStatusPending:  {config.OrderStatusAccepted, config.OrderStatusDeclined},
	config.OrderStatusAccepted: {config.OrderStatusCompleted},
}

// PlaceOrder records a visitor's order for a catalog recipe. The chef is
// resolved from the recipe row.
func (s *Service) PlaceOrder(recipeID, visitorID int64, visitorName string, quantity int, note string) (*models.Order, error) {
	var recipe models.CatalogRecipe
	err := s.DB.First(&recipe, recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	order := models.Order{
		RecipeID:    recipe.ID,
		RecipeTitle: recipe.Title,
		VisitorID:   visitorID,
		VisitorName: visitorName,
		ChefID:      recipe.ChefID,
		Quantity:    quantity,
		Note:        note,
		Status:      config.OrderStatusPending,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// OrdersForChef lists orders addressed to a chef, newest first.
func (s *Service) OrdersForChef(chefID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("chef_id = ?", chefID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order along pending -> accepted|declined ->
// completed. Only the chef the order is addressed to may change it.
func (s *Service) UpdateOrderStatus(orderID uint, chefID int64, status string) (*models.Order, error) {
	var order models.Order
	err := s.DB.Where("id = ? AND chef_id = ?", orderID, chefID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, status) {
		return nil, fmt.Errorf("cannot move order from %q to %q", order.Status, status)
	}

	order.Status = status
	if err := s.DB.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Package handler exposes the HTTP API over Gin. Handlers stay thin:
// they translate requests into directory/catalog calls and map domain
// errors onto status codes.
package handler

import (
	"github.com/gin-gonic/gin"

	"homechefs/backend/internal/catalog"
	"homechefs/backend/internal/chathub"
	"homechefs/backend/internal/userdir"
)

// Handler bundles the services the routes need.
type Handler struct {
	Dir     *userdir.Directory
	Catalog *catalog.Service
	Hub     *chathub.Hub
	// Bridge fans deliveries out through Redis when running more than
	// one instance. Nil means local-only delivery.
	Bridge *chathub.PubSubBridge

	JWTSecret []byte
}

func NewHandler(dir *userdir.Directory, cat *catalog.Service, hub *chathub.Hub, secret []byte) *Handler {
	return &Handler{Dir: dir, Catalog: cat, Hub: hub, JWTSecret: secret}
}

// Routes registers the API surface on the engine.
func (h *Handler) Routes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	auth := api.Group("", h.AuthRequired())
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)

	auth.GET("/conversations", h.ListConversations)
	auth.POST("/conversations", h.StartConversation)
	auth.POST("/conversations/:id/read", h.MarkConversationRead)
	auth.POST("/messages", h.SendMessage)
	auth.GET("/users/search", h.SearchUsers)

	api.GET("/recipes", h.ListRecipes)
	api.GET("/recipes/:id", h.GetRecipe)
	api.GET("/chefs", h.ListChefs)
	api.GET("/chefs/:id", h.GetChef)
	auth.POST("/recipes/:id/like", h.LikeRecipe)
	auth.POST("/recipes/:id/save", h.SaveRecipe)
	auth.DELETE("/recipes/:id/save", h.UnsaveRecipe)
	auth.POST("/chef/recipes", h.PublishRecipe)

	auth.POST("/orders", h.PlaceOrder)
	auth.GET("/chef/orders", h.ChefOrders)
	auth.POST("/orders/:id/status", h.UpdateOrderStatus)

	admin := auth.Group("/admin", h.RequireRole("admin"))
	admin.GET("/pending", h.PendingChefs)
	admin.POST("/chefs/:id/approve", h.ApproveChef)
	admin.POST("/chefs/:id/reject", h.RejectChef)

	r.GET("/ws", h.ServeWebSocket)
}

// deliver pushes a stored message to live connections, through Redis
// when a bridge is configured.
func (h *Handler) deliver(d chathub.Delivery) {
	if h.Bridge != nil {
		if err := h.Bridge.Publish(d); err == nil {
			return
		}
	}
	if h.Hub != nil {
		h.Hub.Deliver(d)
	}
}

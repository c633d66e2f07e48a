package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	"homechefs/backend/internal/config"
	"homechefs/backend/internal/models"
	"homechefs/backend/internal/userdir"
)

// userView is the sanitized user shape returned by the API. The
// password hash never leaves the directory.
type userView struct {
	ID               int64                `json:"id"`
	Email            string               `json:"email"`
	Name             string               `json:"name"`
	Role             models.Role          `json:"role"`
	Nationality      string               `json:"nationality,omitempty"`
	Bio              string               `json:"bio,omitempty"`
	ProfilePhoto     string               `json:"profilePhoto,omitempty"`
	Status           models.ChefStatus    `json:"status,omitempty"`
	IsChefRegistered bool                 `json:"isChefRegistered"`
	Recipes          []models.Recipe      `json:"recipes"`
	SavedRecipes     []models.SavedRecipe `json:"savedRecipes"`
	CreatedAt        time.Time            `json:"createdAt"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.DisplayName(),
		Role:             u.Role,
		Nationality:      u.Nationality,
		Bio:              u.Bio,
		ProfilePhoto:     u.ProfilePhoto,
		Status:           u.Status,
		IsChefRegistered: u.IsChefRegistered,
		Recipes:          u.Recipes,
		SavedRecipes:     u.SavedRecipes,
		CreatedAt:        u.CreatedAt,
	}
}

// generateJWT issues a token carrying the user id and role.
func (h *Handler) generateJWT(userID int64, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(config.TokenTTL).Unix(),
		"iss":     config.TokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// validateJWT checks the token and returns the embedded user id and role.
func (h *Handler) validateJWT(tokenString string) (int64, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("missing user_id claim")
	}
	role, _ := claims["role"].(string)
	return int64(id), models.Role(role), nil
}

type registerRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	FullName     string `json:"fullName" binding:"required"`
	Role         string `json:"role"`
	Nationality  string `json:"nationality"`
	Bio          string `json:"bio"`
	ProfilePhoto string `json:"profilePhoto"`
}

// Register creates an account and returns it together with a token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Password) < config.MinPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is too short"})
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleVisitor
	}
	if role != models.RoleVisitor && role != models.RoleChef {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	user, err := h.Dir.Register(userdir.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Role:         role,
		Nationality:  req.Nationality,
		Bio:          req.Bio,
		ProfilePhoto: req.ProfilePhoto,
	})
	if errors.Is(err, userdir.ErrDuplicateEmail) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	token, err := h.generateJWT(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": viewOf(user), "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Login authenticates the email/password/role triple. An unregistered
// chef gets a redirect hint to the Become a Home Chef form.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Dir.Authenticate(req.Email, req.Password, models.Role(req.Role))
	if errors.Is(err, userdir.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if errors.Is(err, userdir.ErrChefNotRegistered) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":    "Chef must register first via Become a Home Chef form",
			"redirect": "/become-chef",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := h.generateJWT(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": viewOf(user), "token": token})
}

// Logout clears the current-session record. Safe to call repeatedly.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Dir.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the current-session projection.
func (h *Handler) Me(c *gin.Context) {
	session, err := h.Dir.CurrentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session"})
		return
	}
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// AuthRequired validates the bearer token and stores the caller's
// identity on the context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		userID, role, err := h.validateJWT(authHeader[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set("userID", userID)
		c.Set("role", string(role))
		c.Next()
	}
}

// RequireRole gates a route group to one role.
func (h *Handler) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("userID")
}

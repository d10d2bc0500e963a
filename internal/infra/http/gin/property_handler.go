package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"findmeroom/internal/app/dto"
	"findmeroom/internal/app/properties"
	"findmeroom/internal/domain/listings"
)

// PropertyHTTP exposes listing endpoints.
type PropertyHTTP interface {
	Search(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Mine(c *gin.Context)
	UploadPhoto(c *gin.Context)
}

// PropertyHandler bridges HTTP with the properties service.
type PropertyHandler struct {
	Properties *properties.Service
	Logger     *slog.Logger
}

// Search lists available properties matching the query filters.
func (h PropertyHandler) Search(c *gin.Context) {
	params := listings.SearchParams{
		City:         strings.TrimSpace(c.Query("city")),
		PropertyType: listings.PropertyType(strings.TrimSpace(c.Query("property_type"))),
		Skip:         parseNonNegativeInt(c.Query("skip"), 0),
		Limit:        parseNonNegativeInt(c.Query("limit"), 20),
	}
	if raw := c.Query("min_rent"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.MinRent = &v
		}
	}
	if raw := c.Query("max_rent"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.MaxRent = &v
		}
	}

	results, err := h.Properties.Search(c.Request.Context(), params)
	if err != nil {
		h.respondPropertyError(c, err, "search properties")
		return
	}
	c.JSON(http.StatusOK, toPropertyList(results))
}

// Get returns one property by id.
func (h PropertyHandler) Get(c *gin.Context) {
	property, err := h.Properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondPropertyError(c, err, "get property", "property_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, toProperty(*property))
}

// Create stores a new listing owned by the current user.
func (h PropertyHandler) Create(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req dto.PropertyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	property, err := h.Properties.Create(c.Request.Context(), p.ID, properties.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Rent:         req.Rent,
		Deposit:      req.Deposit,
		Location:     req.Location,
		City:         req.City,
		Images:       req.Images,
		Amenities:    req.Amenities,
	})
	if err != nil {
		h.respondPropertyError(c, err, "create property", "user_id", p.ID)
		return
	}
	c.JSON(http.StatusCreated, toProperty(*property))
}

// Update applies partial changes to an owned listing.
func (h PropertyHandler) Update(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req dto.PropertyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	property, err := h.Properties.Update(c.Request.Context(), p.ID, c.Param("id"), properties.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Rent:         req.Rent,
		Deposit:      req.Deposit,
		Location:     req.Location,
		City:         req.City,
		Images:       req.Images,
		Amenities:    req.Amenities,
		Available:    req.Available,
	})
	if err != nil {
		h.respondPropertyError(c, err, "update property", "user_id", p.ID, "property_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, toProperty(*property))
}

// Delete removes an owned listing.
func (h PropertyHandler) Delete(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	if err := h.Properties.Delete(c.Request.Context(), p.ID, c.Param("id")); err != nil {
		h.respondPropertyError(c, err, "delete property", "user_id", p.ID, "property_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}

// Mine lists all properties owned by the current user.
func (h PropertyHandler) Mine(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	results, err := h.Properties.Mine(c.Request.Context(), p.ID)
	if err != nil {
		h.respondPropertyError(c, err, "list own properties", "user_id", p.ID)
		return
	}
	c.JSON(http.StatusOK, toPropertyList(results))
}

// UploadPhoto attaches an uploaded photo to an owned listing.
func (h PropertyHandler) UploadPhoto(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read photo"})
		return
	}
	defer src.Close()

	property, err := h.Properties.AttachPhoto(
		c.Request.Context(), p.ID, c.Param("id"),
		file.Filename, file.Header.Get("Content-Type"), src,
	)
	if err != nil {
		h.respondPropertyError(c, err, "upload photo", "user_id", p.ID, "property_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, toProperty(*property))
}

func (h PropertyHandler) respondPropertyError(c *gin.Context, err error, action string, attrs ...any) {
	switch {
	case errors.Is(err, listings.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	case errors.Is(err, listings.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this property"})
	case errors.Is(err, listings.ErrTitleRequired),
		errors.Is(err, listings.ErrInvalidType),
		errors.Is(err, listings.ErrInvalidRent),
		errors.Is(err, listings.ErrInvalidDeposit),
		errors.Is(err, listings.ErrLocationRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("property call failed", append([]any{"action", action, "error", err}, attrs...)...)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listings unavailable"})
	}
}

func toProperty(p listings.Property) dto.Property {
	return dto.Property{
		ID:           p.ID,
		UserID:       p.OwnerID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: string(p.PropertyType),
		Rent:         p.Rent,
		Deposit:      p.Deposit,
		Location:     p.Location,
		City:         p.City,
		Images:       append([]string(nil), p.Images...),
		Amenities:    append([]string(nil), p.Amenities...),
		Available:    p.Available,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPropertyList(props []listings.Property) []dto.Property {
	out := make([]dto.Property, 0, len(props))
	for _, p := range props {
		out = append(out, toProperty(p))
	}
	return out
}

func parseNonNegativeInt(raw string, def int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return def
	}
	return value
}

var _ PropertyHTTP = (*PropertyHandler)(nil)

package handlers

import (
	"FamCare/models"
	"FamCare/services"

	"github.com/gin-gonic/gin"
)

type FamilyHandler struct {
	service *services.FamilyService
}

func NewFamilyHandler(service *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{service: service}
}

func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	var family models.Family
	if err := c.ShouldBindJSON(&family); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	// Non-admins may only create a family they will head.
	if actorRole != models.RoleAdmin {
		family.HeadID = actorID
	}

	if err := h.service.Create(c.Request.Context(), &family); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, family)
}

func (h *FamilyHandler) GetFamilyByID(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "family_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid family ID"})
		return
	}

	family, err := h.service.GetByID(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if family == nil {
		c.JSON(404, gin.H{"error": "Family not found"})
		return
	}
	c.JSON(200, gin.H{
		"family":       family,
		"member_count": family.MemberCount(),
	})
}

// GetMyFamily returns the family headed by the authenticated user.
func (h *FamilyHandler) GetMyFamily(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	family, err := h.service.GetByHead(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if family == nil {
		c.JSON(404, gin.H{"error": "Family not found"})
		return
	}
	c.JSON(200, family)
}

func (h *FamilyHandler) GetAllFamilies(c *gin.Context) {
	families, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, families)
}

func (h *FamilyHandler) UpdateFamily(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "family_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid family ID"})
		return
	}

	var family models.Family
	if err := c.ShouldBindJSON(&family); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	family.ID = id

	if err := h.service.Update(c.Request.Context(), &family, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, family)
}

func (h *FamilyHandler) DeleteFamily(c *gin.Context) {
	_, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "family_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid family ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Family deleted"})
}

package handlers

import (
	"FamCare/models"
	"FamCare/services"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	service *services.MemberService
}

func NewMemberHandler(service *services.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	familyID, err := parseUintParam(c, "family_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid family ID"})
		return
	}

	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	member.FamilyID = familyID

	if err := h.service.Create(c.Request.Context(), &member, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, member)
}

func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "member_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid member ID"})
		return
	}

	member, err := h.service.GetByID(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if member == nil {
		c.JSON(404, gin.H{"error": "Member not found"})
		return
	}
	c.JSON(200, member)
}

func (h *MemberHandler) GetFamilyMembers(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	familyID, err := parseUintParam(c, "family_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid family ID"})
		return
	}

	members, err := h.service.GetByFamily(c.Request.Context(), familyID, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, members)
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "member_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid member ID"})
		return
	}

	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	member.ID = id

	if err := h.service.Update(c.Request.Context(), &member, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, member)
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "member_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid member ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Member deleted"})
}

package handlers

import (
	"net/http"

	"coursehub/internal/application/usecase"
	"coursehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentHandler struct {
	enrollment *usecase.EnrollmentUseCase
}

func NewEnrollmentHandler(enrollment *usecase.EnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{enrollment: enrollment}
}

// POST /api/v1/user/courses
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		CourseID string `json:"courseId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course ID required"})
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	if err := h.enrollment.Enroll(c, userID, courseID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/user/courses
func (h *EnrollmentHandler) ListMy(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	courses, err := h.enrollment.ListEnrolled(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// POST /api/v1/payment/checkout
func (h *EnrollmentHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		CourseID   string `json:"courseId" binding:"required"`
		CardNumber string `json:"cardNumber" binding:"required"`
		Expiry     string `json:"expiry" binding:"required"`
		CVV        string `json:"cvv" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	err = h.enrollment.Checkout(c, userID, courseID, usecase.CardDetails{
		Number: req.CardNumber,
		Expiry: req.Expiry,
		CVV:    req.CVV,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

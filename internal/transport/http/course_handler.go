package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"coursehub/internal/application/usecase"
	"coursehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	catalog *usecase.CatalogUseCase
}

func NewCourseHandler(catalog *usecase.CatalogUseCase) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.catalog.ListCourses(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// GET /api/v1/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	var viewer *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		viewer = &id
	}

	course, isEnrolled, err := h.catalog.GetCourse(c, courseID, viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"course":     course,
		"isEnrolled": isEnrolled,
	})
}

// POST /api/v1/courses
//
// Multipart request: fields title, description, duration, price, categoryId;
// file "image"; ordered topic arrays "topic_title" and "topic_video",
// index-aligned. Entries missing either half are skipped by the flow.
func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	in := usecase.CreateCourseInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    c.PostForm("duration"),
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		in.Price = price
	}

	// An absent or malformed category id stays uuid.Nil and fails the
	// existence check before anything is uploaded.
	if raw := c.PostForm("categoryId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			in.CategoryID = id
		}
	}

	if fhs := form.File["image"]; len(fhs) > 0 {
		payload, err := readPayload(fhs[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read cover image"})
			return
		}
		in.Image = payload
	}

	titles := form.Value["topic_title"]
	videos := form.File["topic_video"]
	n := len(titles)
	if len(videos) > n {
		n = len(videos)
	}
	for i := 0; i < n; i++ {
		var t usecase.TopicInput
		if i < len(titles) {
			t.Title = titles[i]
		}
		if i < len(videos) {
			payload, err := readPayload(videos[i])
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read topic video"})
				return
			}
			t.Video = payload
		}
		in.Topics = append(in.Topics, t)
	}

	courseID, err := h.catalog.CreateCourse(c, userID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Course created successfully",
		"courseId": courseID,
	})
}

// GET /api/v1/courses/:id/topics/:topicId/playback
func (h *CourseHandler) Playback(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}
	topicID, err := uuid.Parse(c.Param("topicId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic ID"})
		return
	}

	url, expiresAt, err := h.catalog.Playback(c, userID, courseID, topicID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"expiresAt": expiresAt,
	})
}

func readPayload(fh *multipart.FileHeader) (*usecase.FilePayload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &usecase.FilePayload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

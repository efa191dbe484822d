package handlers

import (
	"errors"
	"net/http"

	"lostlink/internal/auth"
	"lostlink/internal/errs"
	"lostlink/internal/models"
	"lostlink/internal/store"
	"lostlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	store store.Store
}

func NewAuthHandler(s store.Store) *AuthHandler {
	return &AuthHandler{store: s}
}

type registerRequest struct {
	StudentName string `json:"studentname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	req.StudentName = cleanText(req.StudentName)
	if req.StudentName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
		return
	}

	if _, err := h.store.UserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
		return
	} else if !errors.Is(err, errs.ErrNotFound) {
		fail(c, err, "")
		return
	}

	// Login resolves accounts by student name, so it must be unique too.
	if _, err := h.store.UserByStudentName(c.Request.Context(), req.StudentName); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Student name already taken"})
		return
	} else if !errors.Is(err, errs.ErrNotFound) {
		fail(c, err, "")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		fail(c, err, "")
		return
	}

	user := models.User{
		StudentName:        req.StudentName,
		Email:              req.Email,
		Password:           hash,
		VerificationStatus: models.VerificationPending,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Account already registered"})
			return
		}
		fail(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	StudentName string `json:"studentname"`
	Password    string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.UserByStudentName(c.Request.Context(), req.StudentName)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Wrong credentials"})
		return
	}

	token, err := auth.IssueToken(user)
	if err != nil {
		fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

package auth

import (
	"cafewifi/model"
	"cafewifi/repository"
	"cafewifi/utils"
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
	"strings"
)

const invalidCredentials = "Invalid email or password, please try again."

// Handler serves signup, login and logout.
type Handler struct {
	Users repository.UserRepositoryI
}

func NewHandler(users repository.UserRepositoryI) *Handler {
	return &Handler{Users: users}
}

func (h *Handler) ShowSignup(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "signup.html", gin.H{"title": "Sign up"})
}

func (h *Handler) Signup(c *gin.Context) {
	type Request struct {
		Name     string `form:"name" binding:"required,max=100"`
		Email    string `form:"email" binding:"required,email,max=100"`
		Password string `form:"password" binding:"required,max=72"`
	}

	var req Request
	err := c.ShouldBind(&req)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err != nil || req.Name == "" {
		utils.AddFlash(c, "warning", "Please enter your name, a valid email and a password.")
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	if _, err := h.Users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		utils.AddFlash(c, "warning", "That email already exist, please Login.")
		c.Redirect(http.StatusFound, "/login")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Failed to look up user %q: %v", req.Email, err)
		utils.RenderError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		utils.RenderError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			utils.AddFlash(c, "warning", "That email already exist, please Login.")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		log.Printf("Failed to create user %q: %v", req.Email, err)
		utils.RenderError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}
	log.Printf("Registered user %d (%s)", user.ID, user.Role)

	if err := utils.Login(c, user); err != nil {
		log.Printf("Failed to start session for user %d: %v", user.ID, err)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	utils.AddFlash(c, "success", "Welcome "+user.Name+", your account has been created.")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (h *Handler) Login(c *gin.Context) {
	type Request struct {
		Email    string `form:"email" binding:"required"`
		Password string `form:"password" binding:"required"`
	}

	var req Request
	err := c.ShouldBind(&req)
	req.Email = strings.TrimSpace(req.Email)
	if err != nil || req.Email == "" {
		utils.AddFlash(c, "warning", "Email and password are required.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Failed to look up user: %v", err)
		utils.RenderError(c, http.StatusInternalServerError, "Login failed")
		return
	}
	// Unknown email and wrong password look the same to the caller.
	if user == nil || !CheckPassword(user.Password, req.Password) {
		utils.AddFlash(c, "warning", invalidCredentials)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := utils.Login(c, user); err != nil {
		log.Printf("Failed to start session for user %d: %v", user.ID, err)
		utils.RenderError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	utils.AddFlash(c, "success", "Welcome "+user.Name+", you are now logged in.")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	user := utils.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	utils.AddFlash(c, "success", "Goodbye "+user.Name+", you are now logged out.")
	utils.Logout(c)
	c.Redirect(http.StatusFound, "/")
}

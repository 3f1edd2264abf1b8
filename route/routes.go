package route

import (
	"cafewifi/auth"
	"cafewifi/config"
	"cafewifi/controller"
	"cafewifi/repository"
	"cafewifi/utils"
	"cafewifi/web"
	"fmt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"log"
	"net/http"
	"time"
)

// NewRouter wires repositories, sessions, templates and routes.
func NewRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	router := gin.Default()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	if len(cfg.Server.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
		log.Println("CORS configured")
	}

	users := repository.NewUserRepository(db)
	cafes := repository.NewCafeRepository(db)
	sessions := utils.NewSessions(cfg.Auth.SecretKey, cfg.Auth.SessionTTL, cfg.Auth.CookieSecure, users)
	router.Use(sessions.Middleware())

	router.StaticFS("/static", web.Static())

	CafeRoutes(router, controller.NewCafeController(cafes), auth.NewHandler(users))
	router.NoRoute(func(c *gin.Context) {
		utils.RenderError(c, http.StatusNotFound, "Page not found")
	})

	return router, nil
}

func CafeRoutes(router *gin.Engine, cafes *controller.CafeController, accounts *auth.Handler) {
	router.GET("/", cafes.Home)
	router.GET("/api-info", cafes.APIInfo)

	// JSON API
	router.GET("/random", cafes.GetRandom)
	router.GET("/all", cafes.GetAll)
	router.GET("/search_loc", cafes.SearchByLocation)
	router.GET("/search_name", cafes.SearchByName)
	router.GET("/export", cafes.ExportCafes)

	guestGroup := router.Group("/")
	guestGroup.Use(utils.RequireGuest())
	{
		guestGroup.GET("/signup", accounts.ShowSignup)
		guestGroup.POST("/signup", accounts.Signup)
		guestGroup.GET("/login", accounts.ShowLogin)
		guestGroup.POST("/login", accounts.Login)
	}
	router.GET("/logout", accounts.Logout)

	userGroup := router.Group("/")
	userGroup.Use(utils.RequireLogin())
	{
		userGroup.GET("/add-cafe", cafes.ShowAddCafe)
		userGroup.POST("/add-cafe", cafes.AddCafe)
		userGroup.POST("/add", cafes.AddCafe)
		userGroup.GET("/edit-cafe/:id", cafes.ShowEditCafe)
		userGroup.POST("/edit-cafe/:id", cafes.UpdateCafe)
	}

	adminGroup := router.Group("/")
	adminGroup.Use(utils.RequireAdmin())
	{
		adminGroup.POST("/report-closed/:id", cafes.DeleteCafe)
		adminGroup.DELETE("/report-closed/:id", cafes.DeleteCafe)
		adminGroup.POST("/import", cafes.ImportCafes)
	}
}

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/middleware"
	"github.com/huangang/scenicadmin/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices, uploadCfg *config.UploadConfig) {
	// Middleware
	r.Use(logger.RequestID(), logger.GinLogger(uploadCfg.StaticURL, "/health"), logger.GinRecovery())

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// Uploaded logos and editor files
	r.Static(uploadCfg.StaticURL, uploadCfg.StaticDir)

	admin := r.Group("/admin", svc.sessions.Middleware())
	{
		// Public
		admin.GET("/login/", svc.authHandler.LoginPage)
		admin.POST("/login/", svc.loginLimiter.Middleware(), svc.authHandler.Login)
		admin.OPTIONS("/ckupload/", middleware.EditorCORS())

		protected := admin.Group("", middleware.SessionGuard("/admin/login/"))
		{
			protected.GET("/", svc.authHandler.Index)
			protected.GET("/logout/", svc.authHandler.Logout)
			protected.GET("/pwd/", svc.authHandler.PasswordPage)
			protected.POST("/pwd/", svc.authHandler.ChangePassword)

			// Members
			protected.GET("/user/list/", svc.memberHandler.ListUsers)
			protected.GET("/user/view/:id/", svc.memberHandler.ViewUser)
			protected.GET("/user/del/:id/", svc.memberHandler.DeleteUser)
			protected.GET("/suggestion/list/", svc.memberHandler.ListSuggestions)
			protected.GET("/suggestion/del/:id/", svc.memberHandler.DeleteSuggestion)

			// Areas
			protected.GET("/area/add/", svc.areaHandler.AddPage)
			protected.POST("/area/add/", svc.areaHandler.Add)
			protected.GET("/area/edit/:id/", svc.areaHandler.EditPage)
			protected.POST("/area/edit/:id/", svc.areaHandler.Edit)
			protected.GET("/area/list/", svc.areaHandler.List)
			protected.GET("/area/del/:id/", svc.areaHandler.Delete)

			// Scenic spots
			protected.GET("/scenic/add/", svc.scenicHandler.AddPage)
			protected.POST("/scenic/add/", svc.scenicHandler.Add)
			protected.GET("/scenic/edit/:id/", svc.scenicHandler.EditPage)
			protected.POST("/scenic/edit/:id/", svc.scenicHandler.Edit)
			protected.GET("/scenic/list/", svc.scenicHandler.List)
			protected.GET("/scenic/del/:id/", svc.scenicHandler.Delete)

			// Travel notes
			protected.GET("/travels/add/", svc.travelsHandler.AddPage)
			protected.POST("/travels/add/", svc.travelsHandler.Add)
			protected.GET("/travels/edit/:id/", svc.travelsHandler.EditPage)
			protected.POST("/travels/edit/:id/", svc.travelsHandler.Edit)
			protected.GET("/travels/list/", svc.travelsHandler.List)
			protected.GET("/travels/del/:id/", svc.travelsHandler.Delete)

			// Logs
			protected.GET("/oplog/list/", svc.systemLogHandler.OperationLogs)
			protected.GET("/adminloginlog/list/", svc.systemLogHandler.AdminLoginLogs)
			protected.GET("/userloginlog/list/", svc.systemLogHandler.UserLoginLogs)

			// Rich-text editor uploads
			protected.POST("/ckupload/", middleware.EditorCORS(), svc.uploadHandler.EditorUpload)
		}
	}
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	mentorHandler    *MentorHandler
	pipelineHandler  *PipelineHandler
	courseHandler    *CourseHandler
	chatHandler      *ChatHandler
	dashboardHandler *DashboardHandler
	settingsHandler  *SettingsHandler
	exportHandler    *ExportHandler
	authMiddleware   *AuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.GetAuthService(), logger),
		studentHandler:   NewStudentHandler(serviceManager.GetStudentService(), logger),
		mentorHandler:    NewMentorHandler(serviceManager.GetMentorService(), logger),
		pipelineHandler:  NewPipelineHandler(serviceManager.GetPipelineService(), logger),
		courseHandler:    NewCourseHandler(serviceManager.GetCourseService(), logger),
		chatHandler:      NewChatHandler(serviceManager.GetChatService(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.GetDashboardService(), logger),
		settingsHandler:  NewSettingsHandler(serviceManager.GetSettingsService(), logger),
		exportHandler:    NewExportHandler(serviceManager.GetExportService(), logger),
		authMiddleware:   NewAuthMiddleware(serviceManager.GetAuthService()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public routes: signing in and out, and the placement registration
	// form. Logout stays public so it never fails on an expired token.
	v1.POST("/auth/login", hm.authHandler.Login)
	v1.POST("/auth/logout", hm.authHandler.Logout)
	v1.POST("/register", hm.pipelineHandler.Register)

	// Everything else requires a verified token. The role is re-resolved
	// on every request; per-group role checks follow.
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.Authenticate())
	{
		auth := authed.Group("/auth")
		{
			auth.GET("/session", hm.authHandler.Session)
			auth.POST("/authorize", hm.authHandler.Authorize)
		}

		// Shared catalog views - any signed-in role.
		authed.GET("/courses", hm.courseHandler.ListCourses)

		// Admin console.
		admin := authed.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/dashboard", hm.dashboardHandler.GetOverview)

			students := admin.Group("/students")
			{
				students.POST("", hm.studentHandler.CreateStudent)
				students.GET("", hm.studentHandler.ListStudents)
				students.GET("/export", hm.exportHandler.ExportStudents)
				students.GET("/:uid", hm.studentHandler.GetStudent)
				students.PUT("/:uid", hm.studentHandler.UpdateStudent)
				students.DELETE("/:uid", hm.studentHandler.DeleteStudent)
			}

			mentors := admin.Group("/mentors")
			{
				mentors.POST("", hm.mentorHandler.CreateMentor)
				mentors.GET("", hm.mentorHandler.ListMentors)
				mentors.GET("/:uid", hm.mentorHandler.GetMentor)
				mentors.PUT("/:uid", hm.mentorHandler.UpdateMentor)
				mentors.DELETE("/:uid", hm.mentorHandler.DeleteMentor)
			}

			pipeline := admin.Group("/job-seekers")
			{
				pipeline.GET("", hm.pipelineHandler.ListJobSeekers)
				pipeline.GET("/export", hm.exportHandler.ExportJobSeekers)
				pipeline.GET("/:uid", hm.pipelineHandler.GetJobSeeker)
				pipeline.PUT("/:uid", hm.pipelineHandler.UpdateJobSeeker)
				pipeline.DELETE("/:uid", hm.pipelineHandler.DeleteJobSeeker)
				pipeline.POST("/:uid/advance", hm.pipelineHandler.AdvanceStage)
				pipeline.PUT("/:uid/stage", hm.pipelineHandler.SetStage)
				pipeline.PUT("/:uid/fees", hm.pipelineHandler.UpdateFees)
			}

			courses := admin.Group("/courses")
			{
				courses.POST("", hm.courseHandler.CreateCourse)
				courses.POST("/import-defaults", hm.courseHandler.ImportDefaults)
				courses.GET("/:id", hm.courseHandler.GetCourse)
				courses.PUT("/:id", hm.courseHandler.UpdateCourse)
				courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("/profile", hm.settingsHandler.GetProfile)
				settings.PUT("/profile", hm.settingsHandler.UpdateProfile)
				settings.GET("/admins", hm.settingsHandler.ListAdmins)
				settings.POST("/admins", hm.settingsHandler.CreateAdmin)
				settings.DELETE("/admins/:uid", hm.settingsHandler.RemoveAdmin)
				settings.GET("/directory", hm.settingsHandler.SearchDirectory)
			}
		}

		// Student area.
		student := authed.Group("/student")
		student.Use(hm.authMiddleware.RequireRole(models.RoleStudent))
		{
			student.GET("/me", hm.studentHandler.GetOwnProfile)
			student.GET("/mentors", hm.mentorHandler.ListMentors)
		}

		// Job seeker area.
		jobSeeker := authed.Group("/job-seeker")
		jobSeeker.Use(hm.authMiddleware.RequireRole(models.RoleJobSeeker))
		{
			jobSeeker.GET("/me", hm.pipelineHandler.GetOwnProfile)
			jobSeeker.PUT("/me", hm.pipelineHandler.UpdateOwnProfile)
		}

		// Mentor area.
		mentor := authed.Group("/mentor")
		mentor.Use(hm.authMiddleware.RequireRole(models.RoleMentor))
		{
			mentor.GET("/me", hm.mentorHandler.GetOwnProfile)
		}

		// Messaging - students and mentors only.
		chats := authed.Group("/chats")
		chats.Use(hm.authMiddleware.RequireRole(models.RoleStudent, models.RoleMentor))
		{
			chats.POST("", hm.chatHandler.OpenChat)
			chats.GET("", hm.chatHandler.ListChats)
			chats.GET("/unread-count", hm.chatHandler.UnreadCount)
			chats.GET("/:id/messages", hm.chatHandler.GetMessages)
			chats.POST("/messages", hm.chatHandler.SendMessage)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "placement-service",
		})
	})
}

package routes

import (
	"ceplatform/backend/config"
	"ceplatform/backend/controllers"
	"ceplatform/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Learner routes
	coursesController := controllers.NewCoursesController(db, cfg)
	progressController := controllers.NewProgressController(db, cfg)
	banksController := controllers.NewBanksController(db, cfg)
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	app.Get("/api/courses", authMiddleware, coursesController.ListCatalog)
	app.Get("/api/courses/:id", authMiddleware, coursesController.GetCatalogCourse)
	app.Get("/api/enrollments", authMiddleware, progressController.MyEnrollments)
	app.Get("/api/banks/:id/attempt", authMiddleware, banksController.ServeAttempt)
	app.Post("/api/events", authMiddleware, analyticsController.RecordEvent)

	// Admin: courses, units, lessons
	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Get("/", coursesController.ListCourses)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Get("/:id", coursesController.GetCourse)
	adminCourses.Patch("/:id", coursesController.UpdateCourse)
	adminCourses.Delete("/:id", coursesController.DeleteCourse)
	adminCourses.Get("/:id/units", coursesController.ListUnits)
	adminCourses.Post("/:id/units", coursesController.CreateUnit)
	adminCourses.Get("/:id/banks", banksController.ListBanks)
	adminCourses.Post("/:id/banks", banksController.CreateBank)

	adminUnits := app.Group("/api/admin/units", authMiddleware, adminMiddleware)
	adminUnits.Patch("/:id", coursesController.UpdateUnit)
	adminUnits.Delete("/:id", coursesController.DeleteUnit)
	adminUnits.Get("/:id/lessons", coursesController.ListLessons)
	adminUnits.Post("/:id/lessons", coursesController.CreateLesson)

	adminLessons := app.Group("/api/admin/lessons", authMiddleware, adminMiddleware)
	adminLessons.Patch("/:id", coursesController.UpdateLesson)
	adminLessons.Delete("/:id", coursesController.DeleteLesson)

	// Admin: media library
	mediaController := controllers.NewMediaController(db, cfg)
	adminMedia := app.Group("/api/admin/media", authMiddleware, adminMiddleware)
	adminMedia.Get("/", mediaController.ListAssets)
	adminMedia.Post("/", mediaController.CreateAsset)

	// Admin: question banks
	adminBanks := app.Group("/api/admin/banks", authMiddleware, adminMiddleware)
	adminBanks.Patch("/:id", banksController.UpdateBank)
	adminBanks.Delete("/:id", banksController.DeleteBank)
	adminBanks.Get("/:id/questions", banksController.ListQuestions)
	adminBanks.Post("/:id/questions", banksController.CreateQuestion)

	adminQuestions := app.Group("/api/admin/questions", authMiddleware, adminMiddleware)
	adminQuestions.Patch("/:id", banksController.UpdateQuestion)
	adminQuestions.Delete("/:id", banksController.DeleteQuestion)

	// Admin: site pages
	pagesController := controllers.NewPagesController(db, cfg)
	adminPages := app.Group("/api/admin/site-pages", authMiddleware, adminMiddleware)
	adminPages.Get("/", pagesController.ListPages)
	adminPages.Post("/", pagesController.CreatePage)
	adminPages.Get("/:id", pagesController.GetPage)
	adminPages.Patch("/:id", pagesController.UpdatePage)
	adminPages.Delete("/:id", pagesController.DeletePage)
	adminPages.Get("/:id/sections", pagesController.ListSections)
	adminPages.Post("/:id/sections", pagesController.CreateSection)
	adminPages.Post("/:id/sections/reorder", pagesController.ReorderSections)

	adminSections := app.Group("/api/admin/sections", authMiddleware, adminMiddleware)
	adminSections.Patch("/:id", pagesController.UpdateSection)
	adminSections.Delete("/:id", pagesController.DeleteSection)
	adminSections.Get("/:id/blocks", pagesController.ListBlocks)
	adminSections.Post("/:id/blocks", pagesController.CreateBlock)
	adminSections.Post("/:id/blocks/reorder", pagesController.ReorderBlocks)

	adminBlocks := app.Group("/api/admin/blocks", authMiddleware, adminMiddleware)
	adminBlocks.Patch("/:id", pagesController.UpdateBlock)
	adminBlocks.Delete("/:id", pagesController.DeleteBlock)

	// Admin: enrollments and progress overrides
	adminEnrollments := app.Group("/api/admin/enrollments", authMiddleware, adminMiddleware)
	adminEnrollments.Get("/", progressController.ListEnrollments)
	adminEnrollments.Post("/", progressController.CreateEnrollment)
	adminEnrollments.Get("/:id/progress", progressController.GetEnrollmentProgress)
	adminEnrollments.Post("/:id/units/:unitId/complete", progressController.CompleteUnit)

	app.Patch("/api/admin/unit-progress/:id", authMiddleware, adminMiddleware, progressController.UpdateUnitProgress)
	app.Patch("/api/admin/lesson-progress/:id", authMiddleware, adminMiddleware, progressController.UpdateLessonProgress)
	app.Post("/api/admin/lesson-progress", authMiddleware, adminMiddleware, progressController.CreateLessonProgress)

	// Admin: finance ledger
	financeController := controllers.NewFinanceController(db, cfg)
	app.Get("/api/admin/purchases", authMiddleware, adminMiddleware, financeController.ListPurchases)
	app.Post("/api/admin/purchases", authMiddleware, adminMiddleware, financeController.CreatePurchase)
	app.Get("/api/admin/refunds", authMiddleware, adminMiddleware, financeController.ListRefunds)
	app.Post("/api/admin/refunds", authMiddleware, adminMiddleware, financeController.CreateRefund)
	app.Get("/api/admin/credits", authMiddleware, adminMiddleware, financeController.ListCredits)
	app.Post("/api/admin/credits", authMiddleware, adminMiddleware, financeController.CreateCredit)
	app.Get("/api/admin/users/:id/financial", authMiddleware, adminMiddleware, financeController.GetUserFinancialSummary)

	// Admin: analytics
	app.Get("/api/admin/analytics/summary", authMiddleware, adminMiddleware, analyticsController.GetSummary)

	// Admin: settings, email templates, roles
	settingsController := controllers.NewSettingsController(db, cfg)
	app.Get("/api/admin/settings", authMiddleware, adminMiddleware, settingsController.ListSettings)
	app.Post("/api/admin/settings", authMiddleware, adminMiddleware, settingsController.UpsertSetting)

	adminTemplates := app.Group("/api/admin/email-templates", authMiddleware, adminMiddleware)
	adminTemplates.Get("/", settingsController.ListEmailTemplates)
	adminTemplates.Post("/", settingsController.CreateEmailTemplate)
	adminTemplates.Patch("/:id", settingsController.UpdateEmailTemplate)
	adminTemplates.Delete("/:id", settingsController.DeleteEmailTemplate)

	adminRoles := app.Group("/api/admin/roles", authMiddleware, adminMiddleware)
	adminRoles.Get("/", settingsController.ListRoles)
	adminRoles.Post("/", settingsController.CreateRole)
	adminRoles.Patch("/:id", settingsController.UpdateRole)
	adminRoles.Delete("/:id", settingsController.DeleteRole)

	// Export pipeline
	exportController := controllers.NewExportController(db, cfg)
	exportGroup := app.Group("/api/export/course/:id", authMiddleware, adminMiddleware)
	exportGroup.Get("/exam-forms", exportController.ListExamForms)
	exportGroup.Get("/content.docx", exportController.ExportContent)
	exportGroup.Get("/answer-key.docx", exportController.ExportAnswerKey)
	exportGroup.Get("/final-exam-a.docx", exportController.ExportFinalExamA)
	exportGroup.Get("/final-exam-b.docx", exportController.ExportFinalExamB)
}

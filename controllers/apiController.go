package controllers

import (
	"FamCare/handlers"
	"FamCare/middlewares"
	"FamCare/models"

	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes registers the domain routes. Everything under /api requires a
// valid token; role guards narrow individual groups further.
func SetupAPIRoutes(router *gin.Engine, familyHandler *handlers.FamilyHandler, memberHandler *handlers.MemberHandler, doctorHandler *handlers.DoctorHandler, appointmentHandler *handlers.AppointmentHandler, recordHandler *handlers.RecordHandler, messageHandler *handlers.MessageHandler, paymentHandler *handlers.PaymentHandler, notificationHandler *handlers.NotificationHandler) {
	api := router.Group("/api")
	api.Use(middlewares.TokenAuthMiddleware())

	// Provider callbacks carry no user token; keep them outside /api.
	router.POST("/payments/callback", paymentHandler.ProviderCallback)

	api.POST("/families", familyHandler.CreateFamily)
	api.GET("/families/:family_id", familyHandler.GetFamilyByID)
	api.GET("/families/me", familyHandler.GetMyFamily)
	api.PUT("/families/:family_id", familyHandler.UpdateFamily)
	api.DELETE("/families/:family_id", familyHandler.DeleteFamily)
	api.GET("/families", middlewares.RoleAuthMiddleware(models.RoleAdmin), familyHandler.GetAllFamilies)

	api.POST("/families/:family_id/members", memberHandler.CreateMember)
	api.GET("/families/:family_id/members", memberHandler.GetFamilyMembers)
	api.GET("/members/:member_id", memberHandler.GetMemberByID)
	api.PUT("/members/:member_id", memberHandler.UpdateMember)
	api.DELETE("/members/:member_id", memberHandler.DeleteMember)

	api.GET("/doctors", doctorHandler.ListDoctors)
	api.POST("/doctor-requests", middlewares.RoleAuthMiddleware(models.RoleDoctor), doctorHandler.CreateRequest)
	api.PUT("/doctor-requests/:request_id/respond", doctorHandler.RespondToRequest)
	api.GET("/families/:family_id/doctor-requests", doctorHandler.GetFamilyRequests)
	api.GET("/doctor-requests/me", middlewares.RoleAuthMiddleware(models.RoleDoctor), doctorHandler.GetMyRequests)
	api.GET("/families/:family_id/doctor-assignments", doctorHandler.GetFamilyAssignments)
	api.GET("/doctor-assignments/me", middlewares.RoleAuthMiddleware(models.RoleDoctor), doctorHandler.GetMyAssignments)
	api.PUT("/doctor-assignments/:assignment_id/deactivate", doctorHandler.DeactivateAssignment)

	api.POST("/appointments", appointmentHandler.CreateAppointment)
	api.GET("/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
	api.GET("/families/:family_id/appointments", appointmentHandler.GetFamilyAppointments)
	api.GET("/members/:member_id/appointments", appointmentHandler.GetMemberAppointments)
	api.GET("/doctors/:doctor_id/appointments", appointmentHandler.GetDoctorAppointments)
	api.PUT("/appointments/:appointment_id", appointmentHandler.UpdateAppointment)
	api.PUT("/appointments/:appointment_id/status", appointmentHandler.UpdateAppointmentStatus)
	api.PUT("/appointments/:appointment_id/doctor-notes", middlewares.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.UpdateDoctorNotes)
	api.DELETE("/appointments/:appointment_id", appointmentHandler.DeleteAppointment)

	api.POST("/medical-records", recordHandler.CreateRecord)
	api.GET("/medical-records/:record_id", recordHandler.GetRecordByID)
	api.GET("/members/:member_id/medical-records", recordHandler.GetMemberRecords)
	api.PUT("/medical-records/:record_id", recordHandler.UpdateRecord)
	api.DELETE("/medical-records/:record_id", recordHandler.DeleteRecord)

	api.POST("/conversations", messageHandler.StartConversation)
	api.GET("/conversations", messageHandler.GetConversations)
	api.POST("/conversations/:conversation_id/messages", messageHandler.SendMessage)
	api.GET("/conversations/:conversation_id/messages", messageHandler.GetMessages)
	api.GET("/conversations/:conversation_id/messages/search", messageHandler.SearchMessages)

	api.POST("/payments", paymentHandler.CreatePayment)
	api.GET("/payments/me", paymentHandler.GetMyPayments)
	api.GET("/payments/:payment_id", paymentHandler.GetPaymentByID)
	api.GET("/payments", middlewares.RoleAuthMiddleware(models.RoleAdmin), paymentHandler.ListPayments)
	api.PUT("/payments/:payment_id/status", middlewares.RoleAuthMiddleware(models.RoleAdmin), paymentHandler.UpdatePaymentStatus)
	api.DELETE("/payments/:payment_id", middlewares.RoleAuthMiddleware(models.RoleAdmin), paymentHandler.DeletePayment)

	api.GET("/notifications", notificationHandler.GetNotifications)
	api.PUT("/notifications/:notification_id/read", notificationHandler.MarkRead)
	api.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
}

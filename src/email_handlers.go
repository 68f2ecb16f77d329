package main

import (
	"log"
	"net/http"
	"os"

	"rephotos/src/common"
	"rephotos/src/db"
	"rephotos/src/lib"
	"rephotos/src/models"
	"rephotos/src/types"

	"github.com/gin-gonic/gin"
)

func emailHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/email/send", func(ctx *gin.Context) {
			var body types.SendEmailRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
				return
			}
			var err error
			if lib.GmailConfigured() {
				err = lib.GmailSendMessage(ctx.Request.Context(), body.To, body.Subject, body.Html)
			} else {
				err = lib.SendMail(&lib.SendMailInput{
					From:    os.Getenv("GMAIL_USERNAME"),
					To:      body.To,
					Subject: body.Subject,
					Body:    body.Html,
					Html:    true,
				})
			}
			if err != nil {
				log.Printf("Error sending email: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
				return
			}
			// The delivery flag is best-effort; a failed update never fails
			// the send.
			if body.BookingID != "" {
				db := db.GetDb()
				err := db.
					Model(&models.Booking{}).
					Where(&models.Booking{ID: body.BookingID}).
					Update("delivery_email_sent", true).
					Error
				if err != nil {
					log.Printf("Error updating booking: %s\n", err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		GET("/email/compose/:id", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			booking, err := bookingStore.Get(ctx.Request.Context(), id)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			subject, emailBody := common.ComposeMediaReadyEmail(booking)
			ctx.JSON(http.StatusOK, gin.H{
				"to":      booking.AgentEmail,
				"subject": subject,
				"body":    emailBody,
			})
		})
	return g
}

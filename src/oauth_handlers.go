package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"rephotos/src/lib"
	"rephotos/src/models"
	"rephotos/src/types"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

// oauthHandlers are mounted outside the auth middleware. Google redirects
// here after consent, so there is no bearer token on the request.
func oauthHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/oauth/google/callback", func(ctx *gin.Context) {
			code := ctx.Query("code")
			if code == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
				return
			}
			conf := lib.GoogleOAuthConfig()
			token, err := conf.Exchange(ctx.Request.Context(), code, oauth2.AccessTypeOffline)
			if err != nil {
				log.Printf("Error exchanging authorization code: %s\n", err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "token exchange failed"})
				return
			}
			successURL := os.Getenv("OAUTH_SUCCESS_URL")
			if successURL == "" {
				ctx.JSON(http.StatusOK, gin.H{
					"has_tokens":  token.AccessToken != "",
					"has_refresh": token.RefreshToken != "",
				})
				return
			}
			ctx.Redirect(http.StatusFound, fmt.Sprintf(
				"%s?has_tokens=%t&has_refresh=%t",
				successURL,
				token.AccessToken != "",
				token.RefreshToken != "",
			))
		})
	return g
}

func dropboxHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/dropbox/refresh-token", func(ctx *gin.Context) {
			if err := lib.RefreshDropboxToken(ctx.Request.Context()); err != nil {
				log.Printf("Error refreshing Dropbox token: %s\n", err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "token refresh failed"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		POST("/dropbox/create-folders", func(ctx *gin.Context) {
			var body types.CreateFoldersRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
				return
			}
			links, err := lib.CreateProjectFolders(ctx.Request.Context(), body.PropertyAddress.Street, body.AgentName)
			if err != nil {
				log.Printf("Error creating project folders: %s\n", err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			booking, err := bookingStore.Get(ctx.Request.Context(), body.BookingID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			booking.RawPhotosLink = links.RawPhotosLink
			booking.FinalEditsLink = links.FinalEditsLink
			if _, err := bookingStore.Upsert(ctx.Request.Context(), []models.Booking{booking}); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"raw_photos_link":  links.RawPhotosLink,
				"final_edits_link": links.FinalEditsLink,
			})
		})
	return g
}

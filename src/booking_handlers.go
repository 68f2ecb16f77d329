package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"rephotos/src/common"
	"rephotos/src/models"
	"rephotos/src/types"
	"rephotos/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			bookings, err := bookingStore.Select(ctx.Request.Context())
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/poll", func(ctx *gin.Context) {
			data, lastUpdated, newCount := synchronizer.Snapshot()
			ctx.JSON(http.StatusOK, gin.H{
				"data":         data,
				"count":        len(data),
				"last_updated": lastUpdated,
				"new_count":    newCount,
			})
		}).
		POST("/bookings/refresh", func(ctx *gin.Context) {
			data, err := synchronizer.Refresh(ctx.Request.Context())
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			synchronizer.AckNewBookings()
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		POST("/bookings/resume", func(ctx *gin.Context) {
			// The dashboard calls this when its tab becomes visible again
			// after being backgrounded.
			synchronizer.Resume(ctx.Request.Context())
			data, lastUpdated, newCount := synchronizer.Snapshot()
			ctx.JSON(http.StatusOK, gin.H{
				"data":         data,
				"count":        len(data),
				"last_updated": lastUpdated,
				"new_count":    newCount,
			})
		}).
		GET("/bookings/schedule", func(ctx *gin.Context) {
			var query struct {
				Date string `form:"date" binding:"required,shootdate"`
			}
			if err := ctx.BindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings, err := bookingStore.Select(ctx.Request.Context())
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			scheduled := make([]models.Booking, 0)
			for _, b := range bookings {
				if strings.HasPrefix(b.PreferredDate, query.Date) {
					scheduled = append(scheduled, b)
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": scheduled, "count": len(scheduled)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			booking, err := bookingStore.Get(ctx.Request.Context(), id)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":      booking,
				"maps_link": utils.GoogleMapsLink(booking.Address),
			})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var booking models.Booking
			if err := ctx.ShouldBindJSON(&booking); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if booking.ID == "" {
				booking.ID = uuid.NewString()
			}
			booking.TotalAmount = common.AggregateTotal(booking.Services)
			rows, err := bookingStore.Upsert(ctx.Request.Context(), []models.Booking{booking})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": rows[0]})
		}).
		POST("/bookings/update", func(ctx *gin.Context) {
			var updates []models.Booking
			if err := ctx.ShouldBindJSON(&updates); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be an array of updates"})
				return
			}
			for _, update := range updates {
				if update.ID == "" {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Each update must include an id"})
					return
				}
			}
			rows, err := bookingStore.Upsert(ctx.Request.Context(), updates)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if len(rows) == 0 {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "No data returned from update"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rows})
		}).
		POST("/bookings/status", func(ctx *gin.Context) {
			var patches []types.StatusPatchRequestBody
			if err := ctx.ShouldBindJSON(&patches); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings, err := bookingStore.Select(ctx.Request.Context())
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			editor := common.NewAggregateEditor(bookingStore, bookings)
			for _, patch := range patches {
				if patch.Status != "" {
					if err := editor.SetStatusField(patch.ID, common.FieldStatus, patch.Status); err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
				}
				if patch.PaymentStatus != "" {
					if err := editor.SetStatusField(patch.ID, common.FieldPaymentStatus, patch.PaymentStatus); err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
				}
				if patch.EditingStatus != "" {
					if err := editor.SetStatusField(patch.ID, common.FieldEditingStatus, patch.EditingStatus); err != nil {
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
				}
			}
			rows, err := editor.SaveAll(ctx.Request.Context())
			if err != nil {
				status := http.StatusBadRequest
				var verr *common.ValidationError
				if !errors.As(err, &verr) {
					status = http.StatusUnprocessableEntity
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rows, "count": len(rows)})
		}).
		POST("/bookings/:id/save", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			var draft models.Booking
			if err := ctx.ShouldBindJSON(&draft); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			persisted, err := bookingStore.Get(ctx.Request.Context(), id)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			session := common.NewEditSession(bookingStore, persisted)
			session.ReplaceDraft(draft)
			saved, err := session.Save(ctx.Request.Context())
			if err != nil {
				var ferr *common.FormatError
				if errors.As(err, &ferr) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": saved})
		}).
		POST("/bookings/quote", func(ctx *gin.Context) {
			var body types.QuoteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			services := make(models.ServiceList, 0, len(body.Services))
			for _, s := range body.Services {
				price := s.Price
				if catalogPrice, ok := common.CatalogPrice(body.PropertySize, s.Name); ok && price == 0 {
					price = catalogPrice
				}
				services = append(services, models.SelectedService{Name: s.Name, Price: price, Count: s.Count})
			}
			total := common.AggregateTotal(services)
			tier := common.DiscountFor(total)
			ctx.JSON(http.StatusOK, gin.H{
				"total":            total,
				"discount":         tier,
				"discounted_total": common.ApplyDiscount(total),
			})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			id := ctx.Params.ByName("id")
			if err := bookingStore.Delete(ctx.Request.Context(), id); err != nil {
				log.Print(err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		GET("/catalog/:size", func(ctx *gin.Context) {
			size := ctx.Params.ByName("size")
			entries := common.ResolveCatalog(size)
			ctx.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
		}).
		GET("/options", func(ctx *gin.Context) {
			// Dropdown option sets for the booking forms.
			ctx.JSON(http.StatusOK, gin.H{
				"property_sizes":    common.PropertySizeOptions,
				"property_statuses": types.OccupancyStatusOptions,
				"statuses": []types.BookingStatus{
					types.BOOKING_PENDING,
					types.BOOKING_EDITING,
					types.BOOKING_DELIVERED,
					types.BOOKING_COMPLETED,
					types.BOOKING_CANCELLED,
				},
				"payment_statuses": []types.PaymentStatus{
					types.PAYMENT_NOT_PAID,
					types.PAYMENT_PAID,
					types.PAYMENT_REFUNDED,
				},
				"editing_statuses": []types.EditingStatus{
					types.EDITING_UNASSIGNED,
					types.EDITING_IN_EDITING,
					types.EDITING_WITH_EDITOR,
					types.EDITING_DONE,
				},
			})
		})
	return g
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
	"github.com/BruksfildServices01/appointment-booking/internal/middleware"
	"github.com/BruksfildServices01/appointment-booking/internal/models"
	"github.com/BruksfildServices01/appointment-booking/internal/storage"
)

// bindJSON answers 400 invalid_request when the body does not bind.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(err)
		httperr.Respond(c, httperr.ErrValidation("invalid_request"))
		return false
	}
	return true
}

func mustUser(c *gin.Context) middleware.User {
	u, _ := middleware.CurrentUser(c)
	return u
}

// ownedBusiness loads the caller's business from the store rather than the
// token, so owners keep working with a token issued before creation.
func ownedBusiness(c *gin.Context, db *gorm.DB) (*models.Business, bool) {
	var b models.Business
	err := db.WithContext(c.Request.Context()).
		Where("owner_id = ?", mustUser(c).ID).
		First(&b).Error
	if err != nil {
		respondLookup(c, err, "business_not_found")
		return nil, false
	}
	return &b, true
}

// respondLookup maps a failed First() onto not found or upstream.
func respondLookup(c *gin.Context, err error, code string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrNotFound(code))
		return
	}
	httperr.Respond(c, httperr.Upstream("lookup", err))
}

func respondStore(c *gin.Context, op string, err error) {
	httperr.Respond(c, httperr.Upstream(op, err))
}

// uploadImage reads the "image" form file and stores it under folder.
func uploadImage(c *gin.Context, images *storage.Images, folder string) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_image"))
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_image"))
		return "", false
	}
	defer f.Close()

	url, err := images.Upload(c.Request.Context(), folder, f)
	if err != nil {
		httperr.Respond(c, err)
		return "", false
	}
	return url, true
}

func writeAudit(
	d *audit.Dispatcher,
	c *gin.Context,
	businessID string,
	action string,
	entity string,
	entityID string,
	meta any,
) {
	d.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     mustUser(c).ID,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Metadata:   meta,
	})
}

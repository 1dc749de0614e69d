package controller

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/files/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
	"virtualab_backend/internals/helpers/storage"
)

type FileController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
	Storage  storage.Storage
}

func NewFileController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger, st storage.Storage) *FileController {
	return &FileController{DB: db, Validate: v, Audit: audit, Storage: st}
}

// Upload accepts one multipart file under the "file" field plus
// optional resource_type, title, and version form values.
func (ctrl *FileController) Upload(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	ok, err := helperAuth.HasPermission(ctrl.DB.WithContext(c.Context()), userID, constants.ResFile, constants.ActCreate)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return helper.Error(c, http.StatusForbidden, "missing permission file:create")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "missing file field")
	}
	if err := storage.ValidateUpload(fh); err != nil {
		return helper.Error(c, http.StatusBadRequest, err.Error())
	}

	src, err := fh.Open()
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to read upload")
	}
	defer src.Close()

	resourceType := c.FormValue("resource_type", "general")
	name := storage.GenerateUniqueFilename(resourceType, fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	url, err := ctrl.Storage.Save(c.Context(), name, contentType, src)
	if err != nil {
		log.Printf("[ERROR] upload save failed: %v", err)
		return helper.Error(c, http.StatusInternalServerError, "failed to store file")
	}

	row := model.UploadedFileModel{
		FileOwnerID:      userID,
		FileTitle:        c.FormValue("title", fh.Filename),
		FileOriginalName: fh.Filename,
		FileURL:          url,
		FileContentType:  contentType,
		FileSizeBytes:    fh.Size,
		FileResourceType: resourceType,
		FileVersion:      c.FormValue("version", "1"),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to record file")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResFile, row.FileID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{
			"name": row.FileOriginalName,
			"size": row.FileSizeBytes,
			"kind": constants.DetectFileKindFromExt(row.FileOriginalName),
		}})

	return helper.SuccessWithCode(c, http.StatusCreated, "file uploaded", row)
}

func (ctrl *FileController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	p := helper.ParsePage(c, "created_at", "desc", helper.DefaultOpts)

	base := ctrl.DB.WithContext(c.Context()).Model(&model.UploadedFileModel{})
	if !helperAuth.IsAdminTier(c) {
		base = base.Where("file_owner_id = ?", userID)
	}
	if rt := c.Query("resource_type"); rt != "" {
		base = base.Where("file_resource_type = ?", rt)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count files")
	}

	var rows []model.UploadedFileModel
	if err := base.Order("created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list files")
	}

	return helper.Success(c, "files", fiber.Map{
		"items": rows,
		"meta":  helper.BuildPageMeta(total, p),
	})
}

func (ctrl *FileController) Delete(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid file id")
	}

	var row model.UploadedFileModel
	if err := ctrl.DB.WithContext(c.Context()).First(&row, "file_id = ?", fileID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "file not found")
	}
	if row.FileOwnerID != userID && !helperAuth.IsAdminTier(c) {
		return helper.Error(c, http.StatusForbidden, "only the owner or an admin may delete")
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Delete(&model.UploadedFileModel{}, "file_id = ?", fileID).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to delete file")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResFile, fileID.String(),
		auditDTO.DataChangePayload{Operation: "delete", Changed: nil})

	return helper.Success(c, "file deleted", nil)
}

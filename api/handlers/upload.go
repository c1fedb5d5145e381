package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/reuniteapp/reunite-api/config"
)

const maxUploadSize = 10 << 20 // 10 MB

// Upload exported for testing purposes
type Upload struct {
	Cloudinary *cloudinary.Cloudinary
}

// UploadImageHandler stores a report photo and returns its hosted URL
func (u Upload) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	if u.Cloudinary == nil {
		config.ErrorStatus("image uploads are not configured", http.StatusServiceUnavailable, w, errors.New("no cloudinary credentials"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		config.ErrorStatus("failed to parse upload", http.StatusBadRequest, w, err)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		config.ErrorStatus("image file is required", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	resp, err := u.Cloudinary.Upload.Upload(r.Context(), file, uploader.UploadParams{Folder: "reports"})
	if err != nil {
		config.ErrorStatus("failed to upload image", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"url": resp.SecureURL,
	})
}

package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/nfnt/resize"
)

// stepImageHeight is the display height of step photos in the editor.
const stepImageHeight = 500

// FetchStepImage proxies a step photo: it fetches the image named by the
// "url" query parameter, scales it to the editor's display height keeping
// aspect ratio, and returns it re-encoded.
func FetchStepImage(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		respondError(w, http.StatusBadRequest, "Missing 'url' query parameter")
		return
	}

	resp, err := http.Get(imageURL)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to fetch image")
		return
	}
	defer resp.Body.Close()

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Failed to decode image")
		return
	}

	bounds := img.Bounds()
	aspect := float64(bounds.Dx()) / float64(bounds.Dy())
	width := uint(float64(stepImageHeight) * aspect)
	scaled := resize.Resize(width, stepImageHeight, img, resize.Lanczos3)

	w.Header().Set("Content-Type", "image/"+format)
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		err = jpeg.Encode(w, scaled, nil)
	case "png":
		err = png.Encode(w, scaled)
	default:
		respondError(w, http.StatusUnsupportedMediaType, "Unsupported image format")
		return
	}
	if err != nil {
		http.Error(w, "Failed to encode image", http.StatusInternalServerError)
	}
}

package handlers

import (
	"mime"
	"net/http"
)

// IsForm reports whether r carries an urlencoded or multipart form body.
func IsForm(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

package utils

import "github.com/google/uuid"

// thumbnailSuffix marks the JPEG thumbnail stored next to an uploaded image.
const thumbnailSuffix = "_thumb.jpg"

// ImageFileNames returns fresh stored names for an upload with extension ext
// and for its thumbnail. Both share one UUIDv7, so files of the same upload
// sort next to each other and in upload order.
func ImageFileNames(ext string) (image, thumbnail string) {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	base := id.String()
	return base + ext, base + thumbnailSuffix
}

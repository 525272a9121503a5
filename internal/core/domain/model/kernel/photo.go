package kernel

import (
	"time"

	"forwarding/internal/pkg/errs"
)

// PhotoType enumerates the contexts a warehouse photo can be taken in.
type PhotoType string

const (
	// PhotoTypeIntake is a photo taken when the package arrives at the warehouse.
	PhotoTypeIntake PhotoType = "intake"
	// PhotoTypeUnpacked is a photo of the contents, taken on customer request.
	PhotoTypeUnpacked PhotoType = "unpacked"
	// PhotoTypeConsolidated is a photo of the repacked box after consolidation.
	PhotoTypeConsolidated PhotoType = "consolidated"
)

// PhotoRef is a value object referencing a stored warehouse photo.
// Photo lists on aggregates are ordered and append-only.
type PhotoRef struct {
	url        string
	photoType  PhotoType
	uploadedAt time.Time
}

// NewPhotoRef creates a PhotoRef. URL must be non-empty; an empty type
// defaults to intake.
func NewPhotoRef(url string, photoType PhotoType, uploadedAt time.Time) (PhotoRef, error) {
	if url == "" {
		return PhotoRef{}, errs.NewValueIsRequiredError("photo url")
	}
	if photoType == "" {
		photoType = PhotoTypeIntake
	}
	return PhotoRef{url: url, photoType: photoType, uploadedAt: uploadedAt}, nil
}

// URL returns the stored object URL.
func (p PhotoRef) URL() string { return p.url }

// Type returns the photo context.
func (p PhotoRef) Type() PhotoType { return p.photoType }

// UploadedAt returns when the photo was stored.
func (p PhotoRef) UploadedAt() time.Time { return p.uploadedAt }

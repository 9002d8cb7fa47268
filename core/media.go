package core

// Asset is a stored media object (profile pictures, certificates).
type Asset struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// MediaService stores and removes media assets on an external object store.
type MediaService interface {
	// Upload stores a base64 data-URL image and returns the stored asset.
	Upload(data string) (Asset, error)
	// Destroy removes a previously uploaded asset.
	Destroy(publicID string) error
}

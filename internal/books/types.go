package books

// VolumesResponse is the subset of the volumes listing the tool reads.
// Items is nil when the API omits the key (no matches).
type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items,omitempty"`
}

type Volume struct {
	ID         string     `json:"id,omitempty"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo keeps every field optional; callers decide the fallback.
type VolumeInfo struct {
	Title      *string     `json:"title,omitempty"`
	Authors    []string    `json:"authors,omitempty"`
	ImageLinks *ImageLinks `json:"imageLinks,omitempty"`
}

type ImageLinks struct {
	SmallThumbnail *string `json:"smallThumbnail,omitempty"`
	Thumbnail      *string `json:"thumbnail,omitempty"`
}

// ThumbnailURL returns the thumbnail link and whether one is present.
func (v VolumeInfo) ThumbnailURL() (string, bool) {
	if v.ImageLinks == nil || v.ImageLinks.Thumbnail == nil || *v.ImageLinks.Thumbnail == "" {
		return "", false
	}
	return *v.ImageLinks.Thumbnail, true
}

// TitleText returns the title and whether one is present.
func (v VolumeInfo) TitleText() (string, bool) {
	if v.Title == nil || *v.Title == "" {
		return "", false
	}
	return *v.Title, true
}

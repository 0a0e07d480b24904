package dto

// ProfilePatch carries a partial profile update. Pointer fields encode
// per-field optionality: nil means unchanged, a set pointer replaces
// the stored value. There is no way to clear a field back to null
// through this API.
type ProfilePatch struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (p ProfilePatch) Validate() map[string]string {
	errors := make(map[string]string)
	if p.FullName == nil && p.AvatarURL == nil {
		errors["patch"] = "At least one field is required"
	}
	return errors
}

type ProfileResponse struct {
	ID        string  `json:"id"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

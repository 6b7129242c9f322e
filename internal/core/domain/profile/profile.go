package profile

// MaxPosts caps the number of posts carried by a CanonicalProfile.
const MaxPosts = 12

// CanonicalProfile is the stable profile shape returned to callers regardless of
// which upstream payload shape produced it.
type CanonicalProfile struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Biography      string `json:"biography"`
	ProfilePicURL  string `json:"profile_pic_url"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	MediaCount     int    `json:"media_count"`
	IsPrivate      bool   `json:"is_private"`
	IsVerified     bool   `json:"is_verified"`
	Category       string `json:"category"`
	Posts          []Post `json:"posts"`
}

type Post struct {
	ID           string    `json:"id"`
	Thumbnail    string    `json:"thumbnail"`
	Caption      string    `json:"caption"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	MediaType    MediaType `json:"media_type"`
}

type MediaType string

const (
	MediaTypeUnknown  MediaType = ""
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeCarousel MediaType = "carousel"
)

// PhotoResult is the canonical shape of a phone-linked photo lookup.
type PhotoResult struct {
	URL       string `json:"url"`
	IsPrivate bool   `json:"is_private"`
}

// ProfileLookupRequest is the body accepted by the profile endpoint.
type ProfileLookupRequest struct {
	Username string `json:"username"`
}

// PhotoLookupRequest accepts both request variants used by clients:
// {"phone", "countryCode"} and {"phone_number"}.
type PhotoLookupRequest struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phone_number"`
}

// Number returns the phone number to look up; Phone wins over PhoneNumber.
func (r *PhotoLookupRequest) Number() string {
	if r.Phone != "" {
		return r.Phone
	}
	return r.PhoneNumber
}

// LookupResponse is the response envelope shared by every lookup endpoint.
type LookupResponse struct {
	Success        bool              `json:"success"`
	Profile        *CanonicalProfile `json:"profile,omitempty"`
	Result         string            `json:"result,omitempty"`
	IsPhotoPrivate *bool             `json:"is_photo_private,omitempty"`
	Error          string            `json:"error,omitempty"`
}

package normalizer

import (
	"encoding/json"
	"strings"

	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

var (
	usernamePaths       = []string{"username", "userName", "handle"}
	fullNamePaths       = []string{"full_name", "fullName", "name"}
	biographyPaths      = []string{"biography", "bio", "description"}
	profilePicPaths     = []string{"profile_pic_url", "hd_profile_pic_url_info.url", "profile_pic_url_wrapped", "profilePicUrl", "profilePic"}
	followerCountPaths  = []string{"follower_count", "followerCount", "followers", "edge_followed_by.count"}
	followingCountPaths = []string{"following_count", "followingCount", "following", "edge_follow.count"}
	mediaCountPaths     = []string{"media_count", "mediaCount", "edge_owner_to_timeline_media.count"}
	isPrivatePaths      = []string{"is_private", "isPrivate"}
	isVerifiedPaths     = []string{"is_verified", "isVerified"}
	categoryPaths       = []string{"category", "category_name", "categoryName", "business_category_name"}

	postIDPaths        = []string{"id", "pk", "code", "shortcode"}
	postThumbnailPaths = []string{"image_versions2.candidates[0].url", "display_url", "thumbnail_url", "thumbnail_src", "displayUrl"}
	postCaptionPaths   = []string{"caption.text", "caption", "edge_media_to_caption.edges[0].node.text"}
	postLikePaths      = []string{"like_count", "likeCount", "edge_liked_by.count", "edge_media_preview_like.count"}
	postCommentPaths   = []string{"comment_count", "commentCount", "edge_media_to_comment.count"}
)

// NormalizeProfile maps a provider payload onto a CanonicalProfile. requestedKey
// is the canonical handle and stands in for a missing username.
func NormalizeProfile(payload []byte, requestedKey string) (*profile.CanonicalProfile, error) {
	p, _, err := normalizeProfile(payload, requestedKey)
	return p, err
}

// NormalizeProfileWithShape is NormalizeProfile that also reports the detected shape.
func NormalizeProfileWithShape(payload []byte, requestedKey string) (*profile.CanonicalProfile, Shape, error) {
	return normalizeProfile(payload, requestedKey)
}

func normalizeProfile(payload []byte, requestedKey string) (*profile.CanonicalProfile, Shape, error) {
	root, err := decodeObject(payload)
	if err != nil {
		return nil, "", err
	}
	s := detectShape(root)
	if !s.anchored(root) {
		return nil, s.shape(), ports.NewLookupError(ports.LookupCodeNotFound, "profile not found", nil)
	}

	user := s.user(root)
	items := s.posts(root)

	p := &profile.CanonicalProfile{Posts: extractPosts(items)}
	var ok bool
	if p.Username, ok = firstString(user, usernamePaths...); !ok {
		p.Username = requestedKey
	}
	p.FullName, _ = firstString(user, fullNamePaths...)
	p.Biography, _ = firstString(user, biographyPaths...)
	p.ProfilePicURL, _ = firstString(user, profilePicPaths...)
	p.FollowerCount, _ = firstCount(user, followerCountPaths...)
	p.FollowingCount, _ = firstCount(user, followingCountPaths...)
	if p.MediaCount, ok = firstCount(user, mediaCountPaths...); !ok {
		p.MediaCount = len(items)
	}
	p.IsPrivate, _ = firstBool(user, isPrivatePaths...)
	p.IsVerified, _ = firstBool(user, isVerifiedPaths...)
	p.Category, _ = firstString(user, categoryPaths...)
	return p, s.shape(), nil
}

// extractPosts maps up to profile.MaxPosts object entries, unwrapping "node"
// envelopes. Non-object entries are skipped.
func extractPosts(items []any) []profile.Post {
	posts := make([]profile.Post, 0, min(len(items), profile.MaxPosts))
	for _, it := range items {
		if len(posts) == profile.MaxPosts {
			break
		}
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if node, ok := objectAt(obj, "node"); ok {
			obj = node
		}
		posts = append(posts, extractPost(obj))
	}
	return posts
}

func extractPost(item map[string]any) profile.Post {
	var p profile.Post
	p.ID, _ = firstString(item, postIDPaths...)
	p.Thumbnail, _ = firstString(item, postThumbnailPaths...)
	p.Caption, _ = firstString(item, postCaptionPaths...)
	p.LikeCount, _ = firstCount(item, postLikePaths...)
	p.CommentCount, _ = firstCount(item, postCommentPaths...)
	p.MediaType = mediaTypeOf(item)
	return p
}

func mediaTypeOf(item map[string]any) profile.MediaType {
	for _, path := range []string{"media_type", "mediaType", "__typename", "product_type"} {
		v, ok := lookupPath(item, path)
		if !ok {
			continue
		}
		if mt := parseMediaType(v); mt != profile.MediaTypeUnknown {
			return mt
		}
	}
	if video, ok := firstBool(item, "is_video", "isVideo"); ok {
		if video {
			return profile.MediaTypeVideo
		}
		return profile.MediaTypeImage
	}
	return profile.MediaTypeUnknown
}

func parseMediaType(v any) profile.MediaType {
	switch t := v.(type) {
	case json.Number:
		switch t.String() {
		case "1":
			return profile.MediaTypeImage
		case "2":
			return profile.MediaTypeVideo
		case "8":
			return profile.MediaTypeCarousel
		}
	case string:
		s := strings.ToLower(t)
		switch {
		case strings.Contains(s, "sidecar"), strings.Contains(s, "carousel"), strings.Contains(s, "album"):
			return profile.MediaTypeCarousel
		case strings.Contains(s, "video"), strings.Contains(s, "clips"), strings.Contains(s, "reel"):
			return profile.MediaTypeVideo
		case strings.Contains(s, "image"), strings.Contains(s, "photo"):
			return profile.MediaTypeImage
		case s == "1":
			return profile.MediaTypeImage
		case s == "2":
			return profile.MediaTypeVideo
		case s == "8":
			return profile.MediaTypeCarousel
		}
	}
	return profile.MediaTypeUnknown
}

package transfer

import "encoding/json"

type PublishContent struct {
	Text      string   `json:"text"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
	Link      string   `json:"link,omitempty"`
}

type PublishRequest struct {
	CompanyID         string         `json:"companyId"`
	Provider          string         `json:"provider"`
	Content           PublishContent `json:"content"`
	ContentCalendarID string         `json:"contentCalendarId,omitempty"`
	AccountID         int64          `json:"accountId,omitempty"`
}

// PublishResult is the canonical publish outcome every provider adapter
// returns, whatever the native response looked like.
type PublishResult struct {
	ProviderPostID string          `json:"providerPostId"`
	Raw            json.RawMessage `json:"raw"`
}

// Normalize extracts the canonical post id from the URN-shaped LinkedIn
// response.
func (r LinkedinPublishResponse) Normalize(raw []byte) PublishResult {
	return PublishResult{ProviderPostID: r.ID, Raw: raw}
}

// Normalize extracts the canonical post id from the flat Facebook response.
// post_id wins when present: the photos endpoint returns the photo id under
// "id" and the feed post under "post_id".
func (r FacebookPublishResponse) Normalize(raw []byte) PublishResult {
	postID := r.PostID
	if postID == "" {
		postID = r.ID
	}
	return PublishResult{ProviderPostID: postID, Raw: raw}
}

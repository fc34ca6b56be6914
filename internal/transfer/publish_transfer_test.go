package transfer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkedinPublishResponseNormalize(t *testing.T) {
	raw := []byte(`{"id":"urn:li:share:6871234567890"}`)

	var native LinkedinPublishResponse
	require.NoError(t, json.Unmarshal(raw, &native))

	result := native.Normalize(raw)
	assert.Equal(t, "urn:li:share:6871234567890", result.ProviderPostID)
	assert.JSONEq(t, string(raw), string(result.Raw))
}

func TestFacebookPublishResponseNormalizeFeed(t *testing.T) {
	raw := []byte(`{"id":"1234567890_987654321"}`)

	var native FacebookPublishResponse
	require.NoError(t, json.Unmarshal(raw, &native))

	result := native.Normalize(raw)
	assert.Equal(t, "1234567890_987654321", result.ProviderPostID)
}

func TestFacebookPublishResponseNormalizePhotoPrefersPostID(t *testing.T) {
	// The photos endpoint returns the photo id under "id" and the feed post
	// under "post_id"; the post id is the canonical one.
	raw := []byte(`{"id":"11111","post_id":"1234567890_987654321"}`)

	var native FacebookPublishResponse
	require.NoError(t, json.Unmarshal(raw, &native))

	result := native.Normalize(raw)
	assert.Equal(t, "1234567890_987654321", result.ProviderPostID)
}

func TestFacebookInsightsFlatten(t *testing.T) {
	raw := []byte(`{"data":[
		{"name":"post_impressions","period":"lifetime","values":[{"value":10},{"value":25}]},
		{"name":"post_engaged_users","period":"lifetime","values":[{"value":4}]},
		{"name":"post_clicks","period":"lifetime","values":[]}
	]}`)

	var insights FacebookInsightsResponse
	require.NoError(t, json.Unmarshal(raw, &insights))

	metrics := insights.Flatten()
	assert.Equal(t, float64(25), metrics["post_impressions"])
	assert.Equal(t, float64(4), metrics["post_engaged_users"])
	assert.NotContains(t, metrics, "post_clicks")
}

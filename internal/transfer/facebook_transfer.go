package transfer

type FacebookPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	Picture     struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

type FacebookPagesResponse struct {
	Data []FacebookPage `json:"data"`
}

// FacebookPublishResponse is Facebook's native publish shape: a flat post id.
// The photos endpoint additionally returns post_id for the containing post.
type FacebookPublishResponse struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type FacebookInsightsResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Period string `json:"period"`
		Values []struct {
			Value interface{} `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

// Flatten reduces the insights response to one value per metric, taking the
// latest reported value.
func (r *FacebookInsightsResponse) Flatten() map[string]interface{} {
	metrics := make(map[string]interface{}, len(r.Data))
	for _, metric := range r.Data {
		if len(metric.Values) == 0 {
			continue
		}
		metrics[metric.Name] = metric.Values[len(metric.Values)-1].Value
	}
	return metrics
}

type FacebookErrorResponse struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FbtraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

package transfer

type LinkedinProfile struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

// LinkedinPublishResponse is LinkedIn's native publish shape: the post id is
// an activity URN under "id".
type LinkedinPublishResponse struct {
	ID string `json:"id"`
}

type LinkedinErrorResponse struct {
	Message       string `json:"message"`
	ServiceError  int    `json:"serviceErrorCode"`
	Status        int    `json:"status"`
	RequestID     string `json:"requestId"`
	ErrorDetailed string `json:"error"`
}

package transfer

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ConnectState rides the provider `state` query parameter through the OAuth
// redirect round trip. It is never persisted; validity is the lifetime of the
// browser redirect.
type ConnectState struct {
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	Nonce     string `json:"nonce"`
}

// Encode serializes the state as base64(JSON).
func (s *ConnectState) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeConnectState fails closed: any malformed input is an error for the
// caller to turn into a redirect, never a panic or a 500.
func DecodeConnectState(encoded string) (*ConnectState, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	var state ConnectState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}

	if state.CompanyID == "" || state.UserID == "" {
		return nil, errors.New("incomplete oauth state")
	}

	return &state, nil
}

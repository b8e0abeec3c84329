package request

type SetCredentialRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

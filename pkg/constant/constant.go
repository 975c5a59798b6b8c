package constant

const (
	DefaultTokenType    = "Bearer"
	AuthorizationHeader = "Authorization"
	APIPrefix           = "/api/v1"
)

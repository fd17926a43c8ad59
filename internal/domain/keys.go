package domain

type CtxKey string

const (
	KeyAdminEmail CtxKey = "AdminEmail"
	KeyTokenID    CtxKey = "TokenID"
	KeyTokenExp   CtxKey = "TokenExpiresAt"
	KeyRequestID  CtxKey = "RequestID"
)

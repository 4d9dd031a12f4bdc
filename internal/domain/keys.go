package domain

type CtxKey string

const (
	KeyUserID CtxKey = "UserID"
	KeyUser   CtxKey = "User"
)

package domain

type CtxKey string

const (
	KeyRequestID  CtxKey = "RequestID"
	KeyLanguage   CtxKey = "Language"
	KeyTranslator CtxKey = "Translator"
	KeyVisitorID  CtxKey = "VisitorID"
)

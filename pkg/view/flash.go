package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message carried across a redirect in a signed cookie.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

func (f Flash) Role() string {
	if f.Kind == FlashError || f.Kind == FlashWarning {
		return "alert"
	}
	return "status"
}

package dto

import "time"

type RefreshResponse struct {
	Options  []SheetOptionResponse `json:"options"`
	LoadedAt time.Time             `json:"loaded_at"`
}

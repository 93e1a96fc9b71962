package model

import "github.com/vaultpass/passgen-go/internal/history"

// HistoryResponse lists the recent passwords of a session, most recent first.
type HistoryResponse struct {
	Capacity int             `json:"capacity"`
	Entries  []history.Entry `json:"entries"`
}

package dto

// SyncResult reports the outcome of one rate synchronization run.
// Skipped counts individual records that were malformed or failed to persist;
// they never fail the batch.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// NotificationOutcome reports per-recipient delivery counts for one dispatch run.
// It is ephemeral and never persisted.
type NotificationOutcome struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

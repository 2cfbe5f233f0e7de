// Package handlers serves the bot's ops endpoints: probes over plain Echo
// and the auction search over Huma.
package handlers

// StatusResponse is the body of the probe endpoints.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

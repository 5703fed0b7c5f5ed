package models

import "time"

// EmailMetrics is the input to the engagement scorer. It is computed by the
// email delivery pipeline and submitted over HTTP; it is never persisted
// here.
type EmailMetrics struct {
	OpenRate       float64    `json:"openRate"`
	ClickRate      float64    `json:"clickRate"`
	ResponseRate   float64    `json:"responseRate"`
	LastActivity   *time.Time `json:"lastActivity,omitempty"`
	Unsubscribed   bool       `json:"unsubscribed"`
	SpamComplaints int        `json:"spamComplaints"`
}

package model

import "time"

type Reminder struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserHint  string    `json:"user_hint"`
	NextDate  time.Time `json:"next_date"`
	Note      string    `json:"note"`
	Channel   string    `json:"channel"`
	Contact   string    `json:"contact"`
}

type UrgentNeed struct {
	Hospital    string `json:"hospital"`
	Status      string `json:"status"`
	Details     string `json:"details"`
	LocationURL string `json:"location_url"`
}

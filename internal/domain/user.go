package domain

// User identifies a requester. Its lifecycle lives outside this service;
// only the id takes part in authorization decisions here.
type User struct {
	ID string `json:"id"`
}

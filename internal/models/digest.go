package models

// DigestEntry groups a user's incomplete task titles for the reminder digest.
type DigestEntry struct {
	Email  string
	Titles []string
}

package domain

import "errors"

var ErrPostNotFound = errors.New("post not found")

// Post is the upstream resource shape, relayed as-is by the proxy.
type Post struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Package source defines the content source model shared by the registry client, the store and the dashboard.
package source

import "fmt"

// Source is a content feed registered with the backend.
type Source struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

// String returns the source name.
func (s Source) String() string {
	return s.Name
}

// Path returns the REST path of the source.
func (s Source) Path() string {
	return PathOf(s.ID)
}

// PathOf returns the REST path of the source with the given id.
func PathOf(id int) string {
	return fmt.Sprintf("/sources/%d", id)
}

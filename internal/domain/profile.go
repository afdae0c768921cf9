// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// UserProfile is a snapshot of a user's public account metadata.
// It is fetched once per query and never mutated afterwards.
type UserProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Blog        string `json:"blog,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// DisplayName returns the profile name, or the login when no name is set.
func (p UserProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// WebsiteURL returns the website as an absolute URL.
// Bare hosts such as "example.com" get an https scheme.
func (p UserProfile) WebsiteURL() string {
	if p.Blog == "" || strings.HasPrefix(p.Blog, "http") {
		return p.Blog
	}
	return "https://" + p.Blog
}

// Repository holds the listing metadata of a single repository.
// ID is the upstream-assigned identifier.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Language        string    `json:"language,omitempty"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	HTMLURL         string    `json:"html_url"`
	UpdatedAt       time.Time `json:"updated_at"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	LanguagesURL    string    `json:"languages_url"`
}

// DescriptionOrDefault returns the description, or a placeholder when it is empty.
func (r Repository) DescriptionOrDefault() string {
	if r.Description == "" {
		return "No description available"
	}
	return r.Description
}

package model

// ActivityNewBlogPost is the activity type of a freshly published post.
// It is the only type the notification filter rewrites.
const ActivityNewBlogPost = "new_blog_post"

// Activity is the subset of a host activity record the filter reads.
type Activity struct {
	// ID is the activity identifier in the host system.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// Type is the activity type, e.g. "new_blog_post".
	Type string `json:"type" yaml:"type"`

	// Component is the host component that produced the activity.
	Component string `json:"component,omitempty" yaml:"component,omitempty"`

	// ItemID is the identifier of the object the activity refers to.
	ItemID int64 `json:"item_id,omitempty" yaml:"item_id,omitempty"`

	// PrimaryLink is the canonical URL of the post.
	PrimaryLink string `json:"primary_link" yaml:"primary_link"`
}

// IsNewPost reports whether the activity announces a new post.
func (a *Activity) IsNewPost() bool {
	return a != nil && a.Type == ActivityNewBlogPost
}

// Group is the group a notification is sent on behalf of.
// The filter passes it through untouched.
type Group struct {
	ID     int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

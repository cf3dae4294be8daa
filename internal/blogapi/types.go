package blogapi

import (
	"strings"
	"time"
)

// naiveTimestampLayout matches the backend's timezone-less ISO timestamps
// (Python datetime.isoformat on a UTC value).
const naiveTimestampLayout = "2006-01-02T15:04:05.999999"

// Blog mirrors a record returned by /blogs and /blogs/{id}.
// Absent fields decode as zero values and render as empty.
type Blog struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	ImageURL  string   `json:"image_url"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

// ParsedCreatedAt returns CreatedAt as a time.Time, or the zero time when it
// cannot be parsed.
func (b Blog) ParsedCreatedAt() time.Time {
	return parseTime(b.CreatedAt)
}

// CleanTags returns the non-blank tags, trimmed.
func (b Blog) CleanTags() []string {
	out := make([]string, 0, len(b.Tags))
	for _, tag := range b.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// GenerateResponse mirrors the payload of POST /admin/generate-blog.
type GenerateResponse struct {
	Message string `json:"message"`
	BlogID  string `json:"blog_id"`
}

// HealthResponse mirrors GET /.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(naiveTimestampLayout, value, time.UTC); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(time.DateOnly, value, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}

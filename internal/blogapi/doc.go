// Package blogapi provides an HTTP client for the blog content service.
//
// # Overview
//
// The backend owns everything: article storage, the LLM generation pipeline
// and the admin key check. This package only speaks its JSON API:
//
//	GET  /                     health check
//	GET  /blogs                all published blogs
//	GET  /blogs/{id}           a single blog (404 when absent)
//	POST /admin/generate-blog  write a new blog now (X-Admin-Key header)
//
// # Client Usage
//
//	client, err := blogapi.NewClient("https://autoblog-x3m1.onrender.com")
//	if err != nil {
//		log.Fatalf("init client: %v", err)
//	}
//
//	blogs, err := client.ListBlogs(ctx)
//	if err != nil {
//		log.Printf("list failed: %v", err)
//	}
//
// # Error Handling
//
// Non-2xx responses become *StatusError carrying the backend's "detail"
// message when it sent one. GetBlog maps 404 to ErrNotFound so callers can
// use errors.Is. Transport and decode failures are wrapped with context.
//
// # Timeouts
//
// Requests without a deadline get a 15 second timeout. Generate gets three
// minutes because the backend runs the whole generation pipeline inline
// before answering.
//
// # Admin Key
//
// Generate forwards whatever secret it is given. Any check the client does
// before calling it is a UI affordance; the backend is the only place the key
// is actually enforced.
package blogapi

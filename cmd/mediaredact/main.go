// Package main provides the entry point for the mediaredact CLI.
//
// mediaredact rewrites HTML email notifications so that images hosted on
// non-public sites, and all audio and video, are replaced by links to the
// original post.
//
// Usage:
//
//	mediaredact redact --link https://example.org/post/ mail.html
//	cat mail.html | mediaredact redact --link https://example.org/post/
//	mediaredact sites add private.example --public -1
//
// See --help for all available options.
package main

// main is the entry point for mediaredact.
func main() {
	Execute()
}

// Package privacy decides whether a media URL points into a non-public site.
//
// A Resolver maps a host and path to the site that serves them. Resolution
// follows multisite rules: the host is tried as given and without a leading
// "www.", and the path is tried from its deepest directory up to "/", so a
// site registered at example.org/biology/ owns
// https://example.org/biology/files/2024/cell.png.
//
// The Checker built on top of a Resolver fails open: URLs without a host,
// hosts no site claims, and resolver errors all count as public. Only a
// resolved site with a negative visibility code is restricted.
package privacy

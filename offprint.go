// Package offprint converts the current issue of a web-served, paywalled
// weekly into a single offline EPUB. It extracts clean article bodies from
// noisy, frequently-changing HTML, resolves and deduplicates the images
// those bodies reference, and assembles the result into a section-ordered
// Edition aggregate consumed by the packaging writer.
//
// Page and image retrieval go through an authenticated browser session that
// a person has logged into; the core never handles credentials and only
// reads pages the session can already see.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, bluemonday/).
package offprint

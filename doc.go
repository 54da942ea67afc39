// Package wikidump is a library to understand the wikipedia xml dump format.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// In particular, I've worked mostly with the enwiki dumps from here:
//    http://dumps.wikimedia.org/enwiki/
//
// Only dumps carrying one revision per page are understood (the
// -pages-articles dumps, or Special:Export with "current revision
// only" enabled).  A page with a second revision is reported as an
// error, never silently merged.
//
// See the example programs in subpackages for an idea of how I've
// made use of these things.
package wikidump

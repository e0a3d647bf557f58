// Package hyphen inserts break marks into words.
//
// A Resolver hyphenates text runs word by word: the override Dictionary is
// consulted first, then the linguistic Service, and the result goes through a
// repair pass that removes any mark placed right after punctuation. A
// Collector uses the same Service to find words the Service does not know
// and records a best-effort guess for each in a Registry.
//
// Two Service implementations exist. Syllabifier is a rule-based Finnish
// syllabifier that needs nothing outside this module. Voikko binds libvoikko
// through cgo and is only compiled with the "voikko" build tag.
package hyphen

// Package documents defines uploaded academic documents, their verification
// lifecycle and the contracts of the services and repositories handling them.
//
// A document starts unverified. The owner may request verification, which makes it
// pending; a faculty member or admin then verifies or rejects it. A rejected document
// can be submitted again.
package documents

// Package connector implements storage.ObjectConnector against the local
// filesystem, Cloudinary and Google Cloud Storage.
package connector

package config

// LocalStorageProvider stores objects on the local filesystem
const LocalStorageProvider = "local"

// CloudinaryStorageProvider stores objects in Cloudinary
const CloudinaryStorageProvider = "cloudinary"

// GcpStorageProvider stores objects in a Google Cloud Storage bucket
const GcpStorageProvider = "gcp"

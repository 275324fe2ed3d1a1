// Package document provides structural ValueReader and ValueWriter
// implementations for common document shapes: map-shaped sources, JSON
// object documents (raw bytes, null.JSON, sqlboiler types.JSON) and
// json-tagged struct destinations.
package document

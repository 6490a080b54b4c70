package config

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/pkg/fileutil"
)

// CurrentSchemaVersion is the schema version this build reads and writes.
//
// History:
//
//	v1  flat document with a top-level "options" block
//	v2  options moved under "settings"
//	v3  scalar editor/ci fields became string lists
const CurrentSchemaVersion = 3

// Document is the on-disk unit for a scope. Its schemaVersion is
// monotonically non-decreasing over the document's lifetime.
type Document struct {
	SchemaVersion int            `json:"schemaVersion"`
	LastModified  time.Time      `json:"lastModified"`
	Settings      map[string]any `json:"settings"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		SchemaVersion: CurrentSchemaVersion,
		LastModified:  time.Now().UTC(),
		Settings:      make(map[string]any),
	}
}

// DetectSchemaVersion reads the schemaVersion field from raw document bytes
// without a full decode. Documents predating the field report version 1.
func DetectSchemaVersion(data []byte) int {
	v := gjson.GetBytes(data, "schemaVersion")
	if !v.Exists() {
		return 1
	}
	return int(v.Int())
}

// ParseDocument decodes raw document bytes. A document written by a newer
// build fails with ErrSchemaTooNew and is never silently accepted.
func ParseDocument(data []byte) (*Document, error) {
	if version := DetectSchemaVersion(data); version > CurrentSchemaVersion {
		return nil, errors.Wrapf(errors.ErrSchemaTooNew,
			"document is v%d, this build understands up to v%d", version, CurrentSchemaVersion)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = 1
	}
	if doc.Settings == nil {
		doc.Settings = make(map[string]any)
	}
	return &doc, nil
}

// Store converts the document's settings tree into a value store.
func (d *Document) Store() (*Store, error) {
	st, err := StoreFromTree(d.Settings)
	if err != nil {
		return nil, errors.Wrap(err, "converting document settings")
	}
	return st, nil
}

// DocumentFromStore snapshots a store into a document at the current schema
// version.
func DocumentFromStore(st *Store) *Document {
	doc := NewDocument()
	doc.Settings = st.Tree()
	return doc
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(path string) (*Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// SaveDocument stamps the document's lastModified and writes it atomically.
// The caller is responsible for ensuring the parent directory exists.
func SaveDocument(path string, doc *Document) error {
	doc.LastModified = time.Now().UTC()
	return fileutil.AtomicWriteJSON(path, doc)
}

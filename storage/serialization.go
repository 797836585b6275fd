// Copyright 2026 Tessier Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/hex"
	"fmt"

	"github.com/go-crypt/x/blake2b"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/tessierlabs/dossier/core"
)

// snapshotFormatVersion identifies the layout of the document-sequence
// blob. Bump whenever the serialized Document schema changes; readers
// reject versions they do not understand.
const snapshotFormatVersion = 1

// DocumentMUS is the mus-format serializer for core.Document.
// Field order is part of the persisted schema: source id, title,
// filename, original filename, tags, text. The Vector field is
// deliberately excluded; embeddings are recomputed at rebuild time,
// never restored.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (documentMUS) Marshal(doc core.Document, bs []byte) (n int) {
	n = varint.Int64.Marshal(doc.SourceID, bs)
	n += ord.String.Marshal(doc.Title, bs[n:])
	n += ord.String.Marshal(doc.Filename, bs[n:])
	n += ord.String.Marshal(doc.OriginalFilename, bs[n:])
	n += ord.String.Marshal(doc.Tags, bs[n:])
	n += ord.String.Marshal(doc.Text, bs[n:])
	return
}

func (documentMUS) Unmarshal(bs []byte) (doc core.Document, n int, err error) {
	var n1 int
	doc.SourceID, n, err = varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	doc.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.OriginalFilename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Tags, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentMUS) Size(doc core.Document) (size int) {
	size = varint.Int64.Size(doc.SourceID)
	size += ord.String.Size(doc.Title)
	size += ord.String.Size(doc.Filename)
	size += ord.String.Size(doc.OriginalFilename)
	size += ord.String.Size(doc.Tags)
	size += ord.String.Size(doc.Text)
	return
}

// MarshalDocuments serializes an ordered document sequence into the
// versioned snapshot blob.
func MarshalDocuments(docs []core.Document) []byte {
	size := varint.Int.Size(snapshotFormatVersion) + varint.Int.Size(len(docs))
	for i := range docs {
		size += DocumentMUS.Size(docs[i])
	}

	bs := make([]byte, size)
	n := varint.Int.Marshal(snapshotFormatVersion, bs)
	n += varint.Int.Marshal(len(docs), bs[n:])
	for i := range docs {
		n += DocumentMUS.Marshal(docs[i], bs[n:])
	}
	return bs
}

// UnmarshalDocuments deserializes a snapshot blob back into the ordered
// document sequence. Any decoding failure, unknown version, or trailing
// garbage yields ErrSerializationFailed.
func UnmarshalDocuments(bs []byte) ([]core.Document, error) {
	version, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if version != snapshotFormatVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot format version %d", ErrSerializationFailed, version)
	}

	count, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	// Each document occupies at least one byte; a larger count means the
	// length prefix is garbage.
	if count < 0 || count > len(bs) {
		return nil, fmt.Errorf("%w: implausible document count %d", ErrSerializationFailed, count)
	}

	docs := make([]core.Document, 0, count)
	for i := 0; i < count; i++ {
		doc, n2, err := DocumentMUS.Unmarshal(bs[n:])
		n += n2
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrSerializationFailed, i, err)
		}
		docs = append(docs, doc)
	}

	if n != len(bs) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(bs)-n)
	}
	return docs, nil
}

// ChecksumBlob computes the BLAKE2b checksum of a snapshot blob. It is
// stored in the metadata artifact and verified on restore so a torn or
// tampered pair is detected as corrupt.
func ChecksumBlob(blob []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(blob)
	return hex.EncodeToString(h.Sum(nil))
}
